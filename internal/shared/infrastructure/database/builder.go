package database

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// ExecBuilder renders a squirrel statement and executes it.
func ExecBuilder(ctx context.Context, exec Executor, b squirrel.Sqlizer) (Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return exec.Exec(ctx, query, args...)
}

// QueryBuilder renders a squirrel statement and runs it as a multi-row query.
func QueryBuilder(ctx context.Context, exec Executor, b squirrel.Sqlizer) (Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return exec.Query(ctx, query, args...)
}

// QueryRowBuilder renders a squirrel statement and runs it as a single-row query.
func QueryRowBuilder(ctx context.Context, exec Executor, b squirrel.Sqlizer) (Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return exec.QueryRow(ctx, query, args...), nil
}
