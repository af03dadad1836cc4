package database

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNoTransaction is returned when commit or rollback runs without a transaction in context.
	ErrNoTransaction = errors.New("no transaction in context")
	// ErrUnsupportedDriver is returned by NewConnection for unknown or unregistered drivers.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

const pgUniqueViolation = "23505"

// IsNoRows reports whether err means a single-row query found nothing,
// for both pgx and database/sql.
func IsNoRows(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports whether err is a unique constraint failure.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
