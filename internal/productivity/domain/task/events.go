package task

import (
	"github.com/felixgeelhaar/todolist/internal/shared/domain"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated = "todolist.task.created"
	RoutingKeyUpdated = "todolist.task.updated"
	RoutingKeyDeleted = "todolist.task.deleted"
)

// Snapshot is the task state carried by events.
type Snapshot struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Deadline string `json:"deadline,omitempty"`
	OwnerID  int64  `json:"owner_id"`
	Owner    string `json:"owner"`
}

func snapshotOf(t *Task) Snapshot {
	s := Snapshot{
		Title:    t.title,
		Priority: t.priority.String(),
		OwnerID:  t.owner.ID,
		Owner:    t.owner.Username,
	}
	if t.deadline != nil {
		s.Deadline = t.deadline.String()
	}
	return s
}

// TaskCreated is emitted after a task is inserted.
type TaskCreated struct {
	domain.BaseEvent
	Task Snapshot `json:"task"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(t *Task) *TaskCreated {
	return &TaskCreated{
		BaseEvent: domain.NewBaseEvent(t.id, AggregateType, RoutingKeyCreated),
		Task:      snapshotOf(t),
	}
}

// TaskUpdated is emitted after a task row is overwritten.
type TaskUpdated struct {
	domain.BaseEvent
	Task Snapshot `json:"task"`
}

// NewTaskUpdated creates a TaskUpdated event.
func NewTaskUpdated(t *Task) *TaskUpdated {
	return &TaskUpdated{
		BaseEvent: domain.NewBaseEvent(t.id, AggregateType, RoutingKeyUpdated),
		Task:      snapshotOf(t),
	}
}

// TaskDeleted is emitted after the owner deletes a task.
type TaskDeleted struct {
	domain.BaseEvent
	OwnerID int64 `json:"owner_id"`
}

// NewTaskDeleted creates a TaskDeleted event.
func NewTaskDeleted(t *Task) *TaskDeleted {
	return &TaskDeleted{
		BaseEvent: domain.NewBaseEvent(t.id, AggregateType, RoutingKeyDeleted),
		OwnerID:   t.owner.ID,
	}
}
