package task

import (
	"context"
	"time"

	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
)

// Repository defines the interface for task persistence.
type Repository interface {
	// Insert stores a new task created at createdAt and returns the generated id.
	Insert(ctx context.Context, task *Task, createdAt time.Time) (int64, error)
	// Update overwrites title, description, priority, deadline and owner.
	// It never touches created_at. ErrTaskNotFound when the row is missing.
	Update(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id int64) (*Task, error)
	FindAll(ctx context.Context) ([]*Task, error)
	FindByOwnerUsername(ctx context.Context, username string) ([]*Task, error)
	FindByPriority(ctx context.Context, priority value_objects.Priority) ([]*Task, error)
	Delete(ctx context.Context, id int64) error
}
