// Package persistence stores users through the driver-agnostic database connection.
package persistence

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/felixgeelhaar/todolist/internal/identity/domain"
	"github.com/felixgeelhaar/todolist/internal/shared/infrastructure/database"
)

const usersTable = "users"

var userColumns = []string{"id", "username", "password_hash", "created_at"}

// UserRepository implements domain.UserRepository for SQLite and PostgreSQL.
type UserRepository struct {
	conn database.Connection
	sb   squirrel.StatementBuilderType
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(conn database.Connection) *UserRepository {
	return &UserRepository{conn: conn, sb: conn.Driver().StatementBuilder()}
}

func (r *UserRepository) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

// Save inserts new users and updates the password hash of existing ones.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	if user.IsNew() {
		return r.insert(ctx, user)
	}

	q := r.sb.Update(usersTable).
		Set("password_hash", user.PasswordHash()).
		Where(squirrel.Eq{"id": user.ID()})
	res, err := database.ExecBuilder(ctx, r.executor(ctx), q)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return domain.ErrUserRecordNotFound
	}
	return nil
}

func (r *UserRepository) insert(ctx context.Context, user *domain.User) error {
	q := r.sb.Insert(usersTable).
		Columns("username", "password_hash", "created_at").
		Values(user.Username().String(), user.PasswordHash(), user.CreatedAt()).
		Suffix("RETURNING id")

	row, err := database.QueryRowBuilder(ctx, r.executor(ctx), q)
	if err != nil {
		return err
	}

	var id int64
	if err := row.Scan(&id); err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.AssignID(id)
	return nil
}

// FindByID returns domain.ErrUserRecordNotFound when no row matches.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

// FindByUsername matches case-sensitively.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, squirrel.Eq{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	q := r.sb.Select(userColumns...).From(usersTable).Where(where)
	row, err := database.QueryRowBuilder(ctx, r.executor(ctx), q)
	if err != nil {
		return nil, err
	}

	user, err := scanUser(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrUserRecordNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// List returns all users ordered by username.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	q := r.sb.Select(userColumns...).From(usersTable).OrderBy("username")
	rows, err := database.QueryBuilder(ctx, r.executor(ctx), q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Delete removes the user. Their tasks go with them through ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	q := r.sb.Delete(usersTable).Where(squirrel.Eq{"id": id})
	res, err := database.ExecBuilder(ctx, r.executor(ctx), q)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return domain.ErrUserRecordNotFound
	}
	return nil
}

func scanUser(row database.Row) (*domain.User, error) {
	var (
		id           int64
		username     string
		passwordHash string
		createdAtRaw any
	)
	if err := row.Scan(&id, &username, &passwordHash, &createdAtRaw); err != nil {
		return nil, err
	}

	createdAt, err := database.ParseTime(createdAtRaw)
	if err != nil {
		return nil, err
	}
	name, err := domain.NewUsername(username)
	if err != nil {
		return nil, fmt.Errorf("stored username %q: %w", username, err)
	}
	return domain.RehydrateUser(id, name, passwordHash, createdAt), nil
}
