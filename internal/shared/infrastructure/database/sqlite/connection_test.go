package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/todolist/internal/shared/infrastructure/database"
)

func TestNewConnection_CreatesFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "todolist.db")

	conn, err := database.NewConnection(ctx, database.Config{SQLitePath: path})
	require.NoError(t, err)
	defer conn.Close()

	assert.NoError(t, conn.Ping(ctx))
	assert.Equal(t, database.DriverSQLite, conn.Driver())
	assert.FileExists(t, path)
}

func TestConnection_ExecAndQuery(t *testing.T) {
	ctx := context.Background()

	conn, err := NewConnection(ctx, database.Config{SQLitePath: MemoryPath})
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(ctx, `CREATE TABLE probe (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)`)
	require.NoError(t, err)

	var id int64
	require.NoError(t, conn.QueryRow(ctx, `INSERT INTO probe (name) VALUES (?) RETURNING id`, "alice").Scan(&id))
	assert.Equal(t, int64(1), id)

	result, err := conn.Exec(ctx, `INSERT INTO probe (name) VALUES (?)`, "bob")
	require.NoError(t, err)
	affected, err := result.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rows, err := conn.Query(ctx, `SELECT name FROM probe ORDER BY id`)
	require.NoError(t, err)
	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())
	assert.Equal(t, []string{"alice", "bob"}, names)
}

func TestConnection_TransactionRollback(t *testing.T) {
	ctx := context.Background()

	conn, err := NewConnection(ctx, database.Config{SQLitePath: MemoryPath})
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(ctx, `CREATE TABLE probe (name TEXT)`)
	require.NoError(t, err)

	uow := database.NewUnitOfWork(conn)
	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)

	_, err = database.ExecutorFromContext(txCtx, conn).Exec(txCtx, `INSERT INTO probe (name) VALUES (?)`, "ghost")
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(txCtx))

	var count int
	require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM probe`).Scan(&count))
	assert.Zero(t, count)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "/tmp/a.db?"+dsnParams, dsn("/tmp/a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&"+dsnParams, dsn("file:a.db?mode=rwc"))
}
