package task

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/todolist/internal/shared/domain"
)

var (
	// ErrTaskNotFound is returned when no task has the requested id.
	ErrTaskNotFound = fmt.Errorf("task %w", domain.ErrNotFound)
	// ErrUserNotFound is returned when the principal has no user record.
	ErrUserNotFound = fmt.Errorf("current user not found: %w", domain.ErrInvalidState)
)

// Owner references the user a task belongs to.
type Owner struct {
	ID       int64
	Username string
}

// Is compares owners by user id.
func (o Owner) Is(other Owner) bool {
	return o.ID != 0 && o.ID == other.ID
}

// IsZero reports whether no owner is set.
func (o Owner) IsZero() bool {
	return o.ID == 0
}

// Task is a to-do item owned by exactly one user once persisted.
type Task struct {
	id          int64
	title       string
	description string
	priority    value_objects.Priority
	deadline    *value_objects.Deadline
	createdAt   time.Time
	owner       Owner
	events      []domain.DomainEvent
}

// NewTask creates an unsaved task with the default priority.
func NewTask(title, description string) *Task {
	return &Task{
		title:       title,
		description: description,
		priority:    value_objects.DefaultPriority,
	}
}

// Rehydrate rebuilds a task from storage.
func Rehydrate(
	id int64,
	title, description string,
	priority value_objects.Priority,
	deadline *value_objects.Deadline,
	createdAt time.Time,
	owner Owner,
) *Task {
	return &Task{
		id:          id,
		title:       title,
		description: description,
		priority:    priority,
		deadline:    deadline,
		createdAt:   createdAt,
		owner:       owner,
	}
}

func (t *Task) ID() int64                         { return t.id }
func (t *Task) Title() string                     { return t.title }
func (t *Task) Description() string               { return t.description }
func (t *Task) Priority() value_objects.Priority  { return t.priority }
func (t *Task) Deadline() *value_objects.Deadline { return t.deadline }
func (t *Task) CreatedAt() time.Time              { return t.createdAt }
func (t *Task) Owner() Owner                      { return t.owner }

// IsNew reports whether the task has not been inserted yet.
func (t *Task) IsNew() bool {
	return t.id == 0
}

// WithID returns t with its id set, for callers that target an existing row.
func (t *Task) WithID(id int64) *Task {
	t.id = id
	return t
}

func (t *Task) SetTitle(title string) {
	t.title = title
}

func (t *Task) SetDescription(description string) {
	t.description = description
}

// SetPriority rejects values outside LOW..HIGH.
func (t *Task) SetPriority(p value_objects.Priority) error {
	if !p.IsValid() {
		return fmt.Errorf("%w: ordinal %d", value_objects.ErrInvalidPriority, p.Ordinal())
	}
	t.priority = p
	return nil
}

// SetDeadline sets or, with nil, clears the deadline.
func (t *Task) SetDeadline(d *value_objects.Deadline) {
	t.deadline = d
}

// AssignOwner sets the owner, replacing any previous one.
func (t *Task) AssignOwner(owner Owner) {
	t.owner = owner
}

// IsOwnedBy compares the owner by user id.
func (t *Task) IsOwnedBy(owner Owner) bool {
	return t.owner.Is(owner)
}

// MarkCreated records the identity and timestamp produced by the first insert.
func (t *Task) MarkCreated(id int64, createdAt time.Time) {
	t.id = id
	t.createdAt = createdAt
	t.record(NewTaskCreated(t))
}

// MarkUpdated records that the stored row was overwritten.
func (t *Task) MarkUpdated() {
	t.record(NewTaskUpdated(t))
}

// MarkDeleted records that the stored row was removed.
func (t *Task) MarkDeleted() {
	t.record(NewTaskDeleted(t))
}

// DaysUntilDeadline is 0 without a deadline or once it has passed.
func (t *Task) DaysUntilDeadline(now time.Time) int {
	if t.deadline == nil {
		return 0
	}
	return t.deadline.DaysUntil(now)
}

// DomainEvents returns the events raised since the last clear.
func (t *Task) DomainEvents() []domain.DomainEvent {
	return t.events
}

// ClearDomainEvents drops the recorded events.
func (t *Task) ClearDomainEvents() {
	t.events = nil
}

func (t *Task) record(e domain.DomainEvent) {
	t.events = append(t.events, e)
}
