package mcp

import (
	"errors"
	"time"

	identity "github.com/felixgeelhaar/todolist/internal/identity/domain"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
)

// taskOutput is the tool result form of a task.
type taskOutput struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Priority          string    `json:"priority"`
	Deadline          string    `json:"deadline,omitempty"`
	DaysUntilDeadline int       `json:"days_until_deadline"`
	CreatedAt         time.Time `json:"created_at"`
	Owner             string    `json:"owner"`
}

// toolset binds the tool handlers to their dependencies.
type toolset struct {
	tasks     TaskService
	principal identity.Principal
	now       func() time.Time
}

func newToolset(deps ToolDependencies) *toolset {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &toolset{tasks: deps.Tasks, principal: deps.Principal, now: now}
}

func (ts *toolset) actor() (identity.Principal, error) {
	if ts.principal.IsAnonymous() {
		return identity.Principal{}, ErrNoPrincipal
	}
	return ts.principal, nil
}

func (ts *toolset) output(t *task.Task) taskOutput {
	out := taskOutput{
		ID:                t.ID(),
		Title:             t.Title(),
		Description:       t.Description(),
		Priority:          t.Priority().String(),
		DaysUntilDeadline: t.DaysUntilDeadline(ts.now()),
		CreatedAt:         t.CreatedAt(),
		Owner:             t.Owner().Username,
	}
	if d := t.Deadline(); d != nil {
		out.Deadline = d.String()
	}
	return out
}

func (ts *toolset) outputs(tasks []*task.Task) []taskOutput {
	out := make([]taskOutput, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ts.output(t))
	}
	return out
}

func requireID(id int64) error {
	if id <= 0 {
		return errors.New("task_id is required")
	}
	return nil
}

func requireTitle(title string) error {
	if title == "" {
		return errors.New("title is required")
	}
	return nil
}
