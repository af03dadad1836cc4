// Package mcp exposes the task ownership service as MCP tools.
package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/mcp-go"

	identity "github.com/felixgeelhaar/todolist/internal/identity/domain"
	"github.com/felixgeelhaar/todolist/internal/productivity/application/services"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
)

// TaskService is the task ownership service as seen by the tools.
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

// ErrNoPrincipal is returned by user-scoped tools when no username is configured.
var ErrNoPrincipal = errors.New("no MCP user configured; set MCP_USERNAME")

// ToolDependencies provides the service and the acting user for MCP tools.
type ToolDependencies struct {
	Tasks     TaskService
	Principal identity.Principal
	// Now defaults to time.Now.
	Now func() time.Time
}

// RegisterTools registers the task tools.
func RegisterTools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.Tasks == nil {
		return errors.New("task service is required")
	}

	registerTaskTools(srv, newToolset(deps))
	return nil
}
