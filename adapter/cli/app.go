package cli

import (
	"errors"

	internalApp "github.com/felixgeelhaar/todolist/internal/app"
	"github.com/felixgeelhaar/todolist/internal/identity/application/users"
	identity "github.com/felixgeelhaar/todolist/internal/identity/domain"
	"github.com/felixgeelhaar/todolist/internal/productivity/application/services"
	"github.com/felixgeelhaar/todolist/pkg/config"
)

// ErrNotInitialized is returned by commands run before SetApp.
var ErrNotInitialized = errors.New("application not initialized - database connection required")

// App holds the CLI application dependencies.
type App struct {
	Container *internalApp.Container
	Config    *config.Config

	Tasks *services.TaskService
	Users *users.Service

	// DefaultUser acts as the principal when --user is not given.
	DefaultUser string
}

// NewApp creates a new CLI application backed by the container.
func NewApp(container *internalApp.Container) *App {
	a := &App{
		Container: container,
		Config:    container.Config,
		Tasks:     container.TaskService,
		Users:     container.UserService,
	}
	if a.Config != nil {
		a.DefaultUser = a.Config.CLIUsername
	}
	return a
}

// Principal resolves the acting user: the explicit name when set, else the
// configured default. It may be anonymous; the task service rejects it.
func (a *App) Principal(username string) identity.Principal {
	if username == "" {
		username = a.DefaultUser
	}
	return identity.NewPrincipal(username)
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
