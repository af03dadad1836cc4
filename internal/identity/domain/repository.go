package domain

import "context"

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Save inserts a new user, assigning its id, or updates an existing one.
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id int64) error
}
