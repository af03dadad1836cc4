// Package api serves the todolist HTML pages and the JSON API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	identity "github.com/felixgeelhaar/todolist/internal/identity/domain"
	"github.com/felixgeelhaar/todolist/internal/productivity/application/services"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/todolist/pkg/observability"
)

// TaskService is the task ownership service as seen by the handlers.
type TaskService interface {
	ListAll(ctx context.Context) ([]*task.Task, error)
	ListForUser(ctx context.Context, principal identity.Principal) ([]*task.Task, error)
	Search(ctx context.Context, principal identity.Principal, q string) ([]*task.Task, error)
	GetByID(ctx context.Context, id int64) (*task.Task, error)
	FilterByPriority(ctx context.Context, priority value_objects.Priority) ([]*task.Task, error)
	Save(ctx context.Context, principal identity.Principal, t *task.Task) (*task.Task, error)
	Update(ctx context.Context, principal identity.Principal, id int64, changes services.TaskChanges) (*task.Task, error)
	Delete(ctx context.Context, principal identity.Principal, id int64) error
}

// Authenticator resolves sessions and bearer tokens into principals.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, sessionToken string) error
	PrincipalFromSession(ctx context.Context, sessionToken string) (identity.Principal, error)
	IssueToken(ctx context.Context, username, password string) (string, error)
	PrincipalFromToken(token string) (identity.Principal, error)
	TokenTTLSeconds() int64
}

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) error

// Server is the HTTP server for the HTML pages and the JSON API.
type Server struct {
	mux    *http.ServeMux
	server *http.Server
	logger *slog.Logger

	tasks  TaskService
	auth   Authenticator
	health HealthChecker
	pages  *pages

	secureCookies bool
	now           func() time.Time
}

// ServerConfig holds configuration for the server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// SecureCookies marks the session cookie Secure. Enable behind TLS.
	SecureCookies bool
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates the server. health may be nil.
func NewServer(cfg ServerConfig, tasks TaskService, auth Authenticator, health HealthChecker, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := loadPages()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		tasks:         tasks,
		auth:          auth,
		health:        health,
		pages:         tmpl,
		secureCookies: cfg.SecureCookies,
		now:           time.Now,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s, nil
}

// registerRoutes sets up the routes.
func (s *Server) registerRoutes() {
	// Health check
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Session
	s.mux.HandleFunc("GET /login", s.loginPage)
	s.mux.HandleFunc("POST /login", s.login)
	s.mux.HandleFunc("POST /logout", s.logout)

	// HTML pages
	s.mux.Handle("GET /{$}", s.requireSession(s.listPage))
	s.mux.Handle("POST /{$}", s.requireSession(s.createTask))
	s.mux.Handle("GET /tasks/create", s.requireSession(s.createPage))
	s.mux.Handle("GET /{id}", s.requireSession(s.detailPage))
	s.mux.Handle("GET /{id}/edit", s.requireSession(s.editPage))
	s.mux.Handle("POST /{id}", s.requireSession(s.updateTask))
	s.mux.Handle("POST /{id}/delete", s.requireSession(s.deleteTask))

	// JSON API v1
	s.mux.HandleFunc("POST /api/v1/token", s.issueToken)
	s.mux.Handle("GET /api/v1/tasks", s.requireToken(s.apiListTasks))
	s.mux.Handle("GET /api/v1/tasks/all", s.requireToken(s.apiListAll))
	s.mux.Handle("GET /api/v1/tasks/priority/{priority}", s.requireToken(s.apiFilterByPriority))
	s.mux.Handle("GET /api/v1/tasks/{id}", s.requireToken(s.apiGetTask))
	s.mux.Handle("POST /api/v1/tasks", s.requireToken(s.apiCreateTask))
	s.mux.Handle("PUT /api/v1/tasks/{id}", s.requireToken(s.apiUpdateTask))
	s.mux.Handle("DELETE /api/v1/tasks/{id}", s.requireToken(s.apiDeleteTask))
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return observability.RequestLogger(s.logger, s.mux)
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	body := map[string]string{
		"time": time.Now().UTC().Format(time.RFC3339),
	}
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.WarnContext(r.Context(), "health check failed", "error", err)
			status, code = "unhealthy", http.StatusServiceUnavailable
			body["error"] = err.Error()
		}
	}
	body["status"] = status
	writeJSON(w, code, body)
}

// Start starts the server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server",
		"addr", s.server.Addr,
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
