package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/todolist/internal/productivity/application/services"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
)

type taskSearchInput struct {
	Query string `json:"query,omitempty"`
}

type taskIDInput struct {
	TaskID int64 `json:"task_id" jsonschema:"required"`
}

type taskCreateInput struct {
	Title       string `json:"title" jsonschema:"required"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

type taskUpdateInput struct {
	TaskID      int64   `json:"task_id" jsonschema:"required"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

type taskFilterInput struct {
	Priority string `json:"priority" jsonschema:"required"`
}

type deleteOutput struct {
	TaskID int64 `json:"task_id"`
	Status string `json:"status"`
}

func registerTaskTools(srv *mcp.Server, ts *toolset) {
	srv.Tool("task.list").
		Description("List the current user's tasks").
		Handler(ts.list)

	srv.Tool("task.search").
		Description("Search the current user's tasks by title, description or id").
		Handler(ts.search)

	srv.Tool("task.get").
		Description("Get a task by id").
		Handler(ts.get)

	srv.Tool("task.create").
		Description("Create a task owned by the current user. Priority is LOW, MEDIUM or HIGH; deadline is YYYY-MM-DD").
		Handler(ts.create)

	srv.Tool("task.update").
		Description("Change the title, description or priority of a task. The current user becomes its owner").
		Handler(ts.update)

	srv.Tool("task.delete").
		Description("Delete a task. Tasks owned by someone else are left untouched").
		Handler(ts.delete)

	srv.Tool("task.filter").
		Description("List tasks of every user with the given priority").
		Handler(ts.filter)

	srv.Tool("task.list_all").
		Description("List tasks of every user").
		Handler(ts.listAll)
}

func (ts *toolset) list(ctx context.Context, _ struct{}) ([]taskOutput, error) {
	principal, err := ts.actor()
	if err != nil {
		return nil, err
	}
	tasks, err := ts.tasks.ListForUser(ctx, principal)
	if err != nil {
		return nil, err
	}
	return ts.outputs(tasks), nil
}

func (ts *toolset) search(ctx context.Context, input taskSearchInput) ([]taskOutput, error) {
	principal, err := ts.actor()
	if err != nil {
		return nil, err
	}
	tasks, err := ts.tasks.Search(ctx, principal, input.Query)
	if err != nil {
		return nil, err
	}
	return ts.outputs(tasks), nil
}

func (ts *toolset) get(ctx context.Context, input taskIDInput) (*taskOutput, error) {
	if err := requireID(input.TaskID); err != nil {
		return nil, err
	}
	t, err := ts.tasks.GetByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	out := ts.output(t)
	return &out, nil
}

func (ts *toolset) create(ctx context.Context, input taskCreateInput) (*taskOutput, error) {
	principal, err := ts.actor()
	if err != nil {
		return nil, err
	}
	if err := requireTitle(input.Title); err != nil {
		return nil, err
	}

	priority, err := value_objects.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}
	deadline, err := value_objects.ParseOptionalDeadline(input.Deadline)
	if err != nil {
		return nil, err
	}

	t := task.NewTask(input.Title, input.Description)
	if err := t.SetPriority(priority); err != nil {
		return nil, err
	}
	t.SetDeadline(deadline)

	saved, err := ts.tasks.Save(ctx, principal, t)
	if err != nil {
		return nil, err
	}
	out := ts.output(saved)
	return &out, nil
}

func (ts *toolset) update(ctx context.Context, input taskUpdateInput) (*taskOutput, error) {
	principal, err := ts.actor()
	if err != nil {
		return nil, err
	}
	if err := requireID(input.TaskID); err != nil {
		return nil, err
	}

	changes := services.TaskChanges{Title: input.Title, Description: input.Description}
	if input.Priority != nil {
		p, err := value_objects.ParsePriority(*input.Priority)
		if err != nil {
			return nil, err
		}
		changes.Priority = &p
	}

	saved, err := ts.tasks.Update(ctx, principal, input.TaskID, changes)
	if err != nil {
		return nil, err
	}
	out := ts.output(saved)
	return &out, nil
}

func (ts *toolset) delete(ctx context.Context, input taskIDInput) (*deleteOutput, error) {
	principal, err := ts.actor()
	if err != nil {
		return nil, err
	}
	if err := requireID(input.TaskID); err != nil {
		return nil, err
	}
	if err := ts.tasks.Delete(ctx, principal, input.TaskID); err != nil {
		return nil, err
	}
	return &deleteOutput{TaskID: input.TaskID, Status: "ok"}, nil
}

func (ts *toolset) filter(ctx context.Context, input taskFilterInput) ([]taskOutput, error) {
	priority, err := value_objects.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}
	tasks, err := ts.tasks.FilterByPriority(ctx, priority)
	if err != nil {
		return nil, err
	}
	return ts.outputs(tasks), nil
}

func (ts *toolset) listAll(ctx context.Context, _ struct{}) ([]taskOutput, error) {
	tasks, err := ts.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ts.outputs(tasks), nil
}
