// Package services holds the task ownership service: every read and write of
// tasks on behalf of a user goes through it.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	identity "github.com/felixgeelhaar/todolist/internal/identity/domain"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/todolist/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/todolist/internal/shared/domain"
)

// EventPublisher receives task events after the transaction commits.
type EventPublisher interface {
	Publish(ctx context.Context, events ...sharedDomain.DomainEvent) error
}

// TaskChanges lists the fields an edit may change. Nil fields are kept.
type TaskChanges struct {
	Title       *string
	Description *string
	Priority    *value_objects.Priority
}

// TaskService enforces per-user task ownership.
type TaskService struct {
	tasks     task.Repository
	users     identity.UserRepository
	uow       application.UnitOfWork
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a TaskService.
type Option func(*TaskService)

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) { s.now = now }
}

// NewTaskService creates a TaskService. publisher may be nil.
func NewTaskService(
	tasks task.Repository,
	users identity.UserRepository,
	uow application.UnitOfWork,
	publisher EventPublisher,
	logger *slog.Logger,
	opts ...Option,
) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &TaskService{
		tasks:     tasks,
		users:     users,
		uow:       uow,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListAll returns every task of every user.
func (s *TaskService) ListAll(ctx context.Context) ([]*task.Task, error) {
	return s.tasks.FindAll(ctx)
}

// ListForUser returns the principal's tasks. No tasks is an empty slice, not an error.
func (s *TaskService) ListForUser(ctx context.Context, principal identity.Principal) ([]*task.Task, error) {
	tasks, err := s.tasks.FindByOwnerUsername(ctx, principal.Username)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*task.Task{}
	}
	return tasks, nil
}

// Search narrows ListForUser to tasks matching q. See task.Task.Matches.
func (s *TaskService) Search(ctx context.Context, principal identity.Principal, q string) ([]*task.Task, error) {
	tasks, err := s.ListForUser(ctx, principal)
	if err != nil {
		return nil, err
	}
	return task.Filter(tasks, q), nil
}

// GetByID returns task.ErrTaskNotFound for unknown ids. It does not check ownership.
func (s *TaskService) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

// FilterByPriority returns tasks of every user with the given priority.
func (s *TaskService) FilterByPriority(ctx context.Context, priority value_objects.Priority) ([]*task.Task, error) {
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: ordinal %d", value_objects.ErrInvalidPriority, priority.Ordinal())
	}
	return s.tasks.FindByPriority(ctx, priority)
}

// Save persists t on behalf of principal, who becomes its owner whatever
// owner t carried. A zero id inserts; any other id overwrites that row.
// A new task only takes its id once the transaction has committed.
func (s *TaskService) Save(ctx context.Context, principal identity.Principal, t *task.Task) (*task.Task, error) {
	var (
		saved    *task.Task
		inserted *insertion
	)
	err := application.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		var err error
		saved, inserted, err = s.save(txCtx, principal, t)
		return err
	})
	if err != nil {
		return nil, err
	}
	if inserted != nil {
		saved.MarkCreated(inserted.id, inserted.createdAt)
	}

	s.publish(ctx, principal, saved)
	return saved, nil
}

// insertion is the row identity a new task receives on commit.
type insertion struct {
	id        int64
	createdAt time.Time
}

func (s *TaskService) save(ctx context.Context, principal identity.Principal, t *task.Task) (*task.Task, *insertion, error) {
	owner, err := s.resolveOwner(ctx, principal)
	if err != nil {
		return nil, nil, err
	}
	t.AssignOwner(owner)

	if t.IsNew() {
		createdAt := s.now().UTC()
		id, err := s.tasks.Insert(ctx, t, createdAt)
		if err != nil {
			return nil, nil, err
		}
		s.logger.InfoContext(ctx, "task created", "task_id", id, "owner", owner.Username)
		return t, &insertion{id: id, createdAt: createdAt}, nil
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, nil, err
	}
	stored, err := s.tasks.FindByID(ctx, t.ID())
	if err != nil {
		return nil, nil, err
	}
	stored.MarkUpdated()
	s.logger.InfoContext(ctx, "task updated", "task_id", stored.ID(), "owner", owner.Username)
	return stored, nil, nil
}

// Update loads task id, applies changes and saves it under principal.
// Deadline and createdAt are left as stored.
func (s *TaskService) Update(ctx context.Context, principal identity.Principal, id int64, changes TaskChanges) (*task.Task, error) {
	var saved *task.Task
	err := application.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		t, err := s.tasks.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if changes.Title != nil {
			t.SetTitle(*changes.Title)
		}
		if changes.Description != nil {
			t.SetDescription(*changes.Description)
		}
		if changes.Priority != nil {
			if err := t.SetPriority(*changes.Priority); err != nil {
				return err
			}
		}
		saved, _, err = s.save(txCtx, principal, t)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, principal, saved)
	return saved, nil
}

// Delete removes task id if principal owns it. When someone else owns it
// nothing happens and no error is returned.
func (s *TaskService) Delete(ctx context.Context, principal identity.Principal, id int64) error {
	var deleted *task.Task
	err := application.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		owner, err := s.resolveOwner(txCtx, principal)
		if err != nil {
			return err
		}
		t, err := s.tasks.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if !t.IsOwnedBy(owner) {
			s.logger.InfoContext(txCtx, "delete ignored for non-owner",
				"task_id", id,
				"owner_id", t.Owner().ID,
				"principal", principal.Username,
			)
			return nil
		}
		if err := s.tasks.Delete(txCtx, id); err != nil {
			return err
		}
		t.MarkDeleted()
		deleted = t
		return nil
	})
	if err != nil {
		return err
	}

	if deleted != nil {
		s.logger.InfoContext(ctx, "task deleted", "task_id", id, "owner", principal.Username)
		s.publish(ctx, principal, deleted)
	}
	return nil
}

func (s *TaskService) resolveOwner(ctx context.Context, principal identity.Principal) (task.Owner, error) {
	user, err := s.users.FindByUsername(ctx, principal.Username)
	if err != nil {
		if errors.Is(err, identity.ErrUserRecordNotFound) {
			return task.Owner{}, task.ErrUserNotFound
		}
		return task.Owner{}, fmt.Errorf("resolve user %q: %w", principal.Username, err)
	}
	return task.Owner{ID: user.ID(), Username: user.Username().String()}, nil
}

// publish runs after commit. Failures are logged and never reach the caller.
func (s *TaskService) publish(ctx context.Context, principal identity.Principal, t *task.Task) {
	events := t.DomainEvents()
	t.ClearDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}

	application.ApplyEventMetadata(events, application.NewEventMetadata(ctx, principal.Username))
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.WarnContext(ctx, "failed to publish task events",
			"task_id", t.ID(),
			"error", err,
		)
	}
}
