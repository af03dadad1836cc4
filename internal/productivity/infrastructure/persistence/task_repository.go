// Package persistence stores tasks through the driver-agnostic database connection.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/todolist/internal/shared/infrastructure/database"
)

const tasksTable = "tasks"

var taskColumns = []string{
	"tasks.id",
	"tasks.title",
	"tasks.description",
	"tasks.priority",
	"tasks.deadline",
	"tasks.created_at",
	"tasks.owner_id",
	"users.username",
}

// TaskRepository implements task.Repository for SQLite and PostgreSQL.
type TaskRepository struct {
	conn database.Connection
	sb   squirrel.StatementBuilderType
}

// NewTaskRepository creates a TaskRepository.
func NewTaskRepository(conn database.Connection) *TaskRepository {
	return &TaskRepository{conn: conn, sb: conn.Driver().StatementBuilder()}
}

func (r *TaskRepository) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *TaskRepository) selectTasks() squirrel.SelectBuilder {
	return r.sb.Select(taskColumns...).
		From(tasksTable).
		Join("users ON users.id = tasks.owner_id")
}

// Insert writes a new row and returns its id.
func (r *TaskRepository) Insert(ctx context.Context, t *task.Task, createdAt time.Time) (int64, error) {
	q := r.sb.Insert(tasksTable).
		Columns("title", "description", "priority", "deadline", "created_at", "owner_id").
		Values(t.Title(), t.Description(), t.Priority().String(), deadlineValue(t.Deadline()), createdAt, t.Owner().ID).
		Suffix("RETURNING id")

	row, err := database.QueryRowBuilder(ctx, r.executor(ctx), q)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return id, nil
}

// Update overwrites the mutable columns. created_at is never written.
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	q := r.sb.Update(tasksTable).
		Set("title", t.Title()).
		Set("description", t.Description()).
		Set("priority", t.Priority().String()).
		Set("deadline", deadlineValue(t.Deadline())).
		Set("owner_id", t.Owner().ID).
		Where(squirrel.Eq{"id": t.ID()})

	res, err := database.ExecBuilder(ctx, r.executor(ctx), q)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireAffected(res, "update task")
}

// FindByID returns task.ErrTaskNotFound when no row matches.
func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*task.Task, error) {
	row, err := database.QueryRowBuilder(ctx, r.executor(ctx), r.selectTasks().Where(squirrel.Eq{"tasks.id": id}))
	if err != nil {
		return nil, err
	}

	t, err := scanTask(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, task.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task %d: %w", id, err)
	}
	return t, nil
}

// FindAll returns every task ordered by id.
func (r *TaskRepository) FindAll(ctx context.Context) ([]*task.Task, error) {
	return r.list(ctx, r.selectTasks())
}

// FindByOwnerUsername returns the tasks of one user.
func (r *TaskRepository) FindByOwnerUsername(ctx context.Context, username string) ([]*task.Task, error) {
	return r.list(ctx, r.selectTasks().Where(squirrel.Eq{"users.username": username}))
}

// FindByPriority returns tasks of every user with that priority.
func (r *TaskRepository) FindByPriority(ctx context.Context, priority value_objects.Priority) ([]*task.Task, error) {
	return r.list(ctx, r.selectTasks().Where(squirrel.Eq{"tasks.priority": priority.String()}))
}

// Delete removes the row. task.ErrTaskNotFound when it is already gone.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := database.ExecBuilder(ctx, r.executor(ctx), r.sb.Delete(tasksTable).Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(res, "delete task")
}

func (r *TaskRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*task.Task, error) {
	rows, err := database.QueryBuilder(ctx, r.executor(ctx), q.OrderBy("tasks.id"))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func requireAffected(res database.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func deadlineValue(d *value_objects.Deadline) any {
	if d == nil {
		return nil
	}
	return d.Time()
}

func scanTask(row database.Row) (*task.Task, error) {
	var (
		id           int64
		title        string
		description  string
		priorityName string
		deadlineRaw  any
		createdAtRaw any
		ownerID      int64
		ownerName    string
	)
	if err := row.Scan(&id, &title, &description, &priorityName, &deadlineRaw, &createdAtRaw, &ownerID, &ownerName); err != nil {
		return nil, err
	}

	priority, err := value_objects.ParsePriority(priorityName)
	if err != nil {
		return nil, err
	}
	createdAt, err := database.ParseTime(createdAtRaw)
	if err != nil {
		return nil, err
	}
	deadlineTime, err := database.ParseNullableTime(deadlineRaw)
	if err != nil {
		return nil, err
	}
	var deadline *value_objects.Deadline
	if deadlineTime != nil {
		d := value_objects.NewDeadline(*deadlineTime)
		deadline = &d
	}

	return task.Rehydrate(id, title, description, priority, deadline, createdAt,
		task.Owner{ID: ownerID, Username: ownerName}), nil
}
