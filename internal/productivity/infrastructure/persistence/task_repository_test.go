package persistence

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/todolist/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/todolist/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/todolist/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/todolist/pkg/observability"
)

func setupSQLite(t *testing.T) database.Connection {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: sqlite.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = migrations.Run(ctx, conn, observability.Discard())
	require.NoError(t, err)
	return conn
}

func createUser(t *testing.T, conn database.Connection, username string) task.Owner {
	t.Helper()
	var id int64
	err := conn.QueryRow(context.Background(),
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?) RETURNING id`,
		username, "hash", time.Now().UTC()).Scan(&id)
	require.NoError(t, err)
	return task.Owner{ID: id, Username: username}
}

func insertTask(t *testing.T, repo *TaskRepository, owner task.Owner, title string, p value_objects.Priority) *task.Task {
	t.Helper()
	tk := task.NewTask(title, "desc "+title)
	require.NoError(t, tk.SetPriority(p))
	tk.AssignOwner(owner)

	now := time.Now().UTC()
	id, err := repo.Insert(context.Background(), tk, now)
	require.NoError(t, err)
	tk.MarkCreated(id, now)
	return tk
}

func TestTaskRepository_InsertAndFindByID(t *testing.T) {
	conn := setupSQLite(t)
	repo := NewTaskRepository(conn)
	admin := createUser(t, conn, "admin")
	ctx := context.Background()

	tk := task.NewTask("Buy milk", "two litres")
	deadline, _ := value_objects.ParseDeadline("2026-12-24")
	tk.SetDeadline(&deadline)
	tk.AssignOwner(admin)

	createdAt := time.Date(2026, 3, 1, 10, 30, 0, 123000000, time.UTC)
	id, err := repo.Insert(ctx, tk, createdAt)
	require.NoError(t, err)
	require.NotZero(t, id)

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", found.Title())
	assert.Equal(t, "two litres", found.Description())
	assert.Equal(t, value_objects.PriorityMedium, found.Priority())
	require.NotNil(t, found.Deadline())
	assert.Equal(t, "2026-12-24", found.Deadline().String())
	assert.True(t, createdAt.Equal(found.CreatedAt()))
	assert.Equal(t, admin, found.Owner())
}

func TestTaskRepository_FindByIDMissing(t *testing.T) {
	repo := NewTaskRepository(setupSQLite(t))

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestTaskRepository_UpdateKeepsCreatedAt(t *testing.T) {
	conn := setupSQLite(t)
	repo := NewTaskRepository(conn)
	admin := createUser(t, conn, "admin")
	bob := createUser(t, conn, "bob")
	ctx := context.Background()

	tk := insertTask(t, repo, admin, "original", value_objects.PriorityLow)
	before, err := repo.FindByID(ctx, tk.ID())
	require.NoError(t, err)

	tk.SetTitle("renamed")
	require.NoError(t, tk.SetPriority(value_objects.PriorityHigh))
	tk.AssignOwner(bob)
	require.NoError(t, repo.Update(ctx, tk))

	after, err := repo.FindByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, "renamed", after.Title())
	assert.Equal(t, value_objects.PriorityHigh, after.Priority())
	assert.Equal(t, bob, after.Owner())
	assert.True(t, before.CreatedAt().Equal(after.CreatedAt()))
	assert.Nil(t, after.Deadline())
}

func TestTaskRepository_UpdateMissing(t *testing.T) {
	conn := setupSQLite(t)
	repo := NewTaskRepository(conn)
	admin := createUser(t, conn, "admin")

	tk := task.NewTask("ghost", "").WithID(404)
	tk.AssignOwner(admin)
	assert.ErrorIs(t, repo.Update(context.Background(), tk), task.ErrTaskNotFound)
}

func TestTaskRepository_Queries(t *testing.T) {
	conn := setupSQLite(t)
	repo := NewTaskRepository(conn)
	admin := createUser(t, conn, "admin")
	bob := createUser(t, conn, "bob")
	ctx := context.Background()

	insertTask(t, repo, admin, "a1", value_objects.PriorityHigh)
	insertTask(t, repo, admin, "a2", value_objects.PriorityLow)
	insertTask(t, repo, bob, "b1", value_objects.PriorityHigh)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.FindByOwnerUsername(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, tk := range mine {
		assert.Equal(t, "admin", tk.Owner().Username)
	}

	none, err := repo.FindByOwnerUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	high, err := repo.FindByPriority(ctx, value_objects.PriorityHigh)
	require.NoError(t, err)
	require.Len(t, high, 2)
	for _, tk := range high {
		assert.Equal(t, value_objects.PriorityHigh, tk.Priority())
	}
}

func TestTaskRepository_Delete(t *testing.T) {
	conn := setupSQLite(t)
	repo := NewTaskRepository(conn)
	admin := createUser(t, conn, "admin")
	ctx := context.Background()

	tk := insertTask(t, repo, admin, "gone", value_objects.PriorityLow)
	require.NoError(t, repo.Delete(ctx, tk.ID()))

	_, err := repo.FindByID(ctx, tk.ID())
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, tk.ID()), task.ErrTaskNotFound)
}

func TestTaskRepository_DeletingUserCascades(t *testing.T) {
	conn := setupSQLite(t)
	repo := NewTaskRepository(conn)
	bob := createUser(t, conn, "bob")
	ctx := context.Background()

	insertTask(t, repo, bob, "b1", value_objects.PriorityLow)
	_, err := conn.Exec(ctx, `DELETE FROM users WHERE id = ?`, bob.ID)
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTaskRepository_InsideTransaction(t *testing.T) {
	conn := setupSQLite(t)
	repo := NewTaskRepository(conn)
	admin := createUser(t, conn, "admin")
	ctx := context.Background()

	uow := database.NewUnitOfWork(conn)
	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)

	tk := task.NewTask("rolled back", "")
	tk.AssignOwner(admin)
	_, err = repo.Insert(txCtx, tk, time.Now())
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(txCtx))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTaskRepository_PostgresDialect(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTaskRepository(database.NewSQLConnection(db, database.DriverPostgres))
	ctx := context.Background()

	columns := []string{"id", "title", "description", "priority", "deadline", "created_at", "owner_id", "username"}
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	deadline := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT tasks.id, tasks.title, tasks.description, tasks.priority, tasks.deadline, tasks.created_at, tasks.owner_id, users.username " +
			"FROM tasks JOIN users ON users.id = tasks.owner_id WHERE tasks.priority = $1 ORDER BY tasks.id")).
		WithArgs("HIGH").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "t1", "", "HIGH", deadline, created, int64(1), "admin").
			AddRow(int64(2), "t2", "", "HIGH", nil, created, int64(2), "bob"))

	high, err := repo.FindByPriority(ctx, value_objects.PriorityHigh)
	require.NoError(t, err)
	require.Len(t, high, 2)
	assert.Equal(t, "2026-02-01", high[0].Deadline().String())
	assert.Nil(t, high[1].Deadline())
	assert.Equal(t, "bob", high[1].Owner().Username)

	tk := task.NewTask("t", "d")
	tk.AssignOwner(task.Owner{ID: 1, Username: "admin"})
	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO tasks (title,description,priority,deadline,created_at,owner_id) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id")).
		WithArgs("t", "d", "MEDIUM", nil, created, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Insert(ctx, tk, created)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	tk.MarkCreated(id, created)
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE tasks SET title = $1, description = $2, priority = $3, deadline = $4, owner_id = $5 WHERE id = $6")).
		WithArgs("t", "d", "MEDIUM", nil, int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(ctx, tk))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, 7), task.ErrTaskNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
