package domain

import (
	"fmt"
	"time"

	sharedDomain "github.com/felixgeelhaar/todolist/internal/shared/domain"
)

var (
	// ErrUserRecordNotFound is returned by repositories when no user matches.
	ErrUserRecordNotFound = fmt.Errorf("user %w", sharedDomain.ErrNotFound)
	// ErrUsernameTaken is returned when saving a user whose username already exists.
	ErrUsernameTaken = fmt.Errorf("username already taken: %w", sharedDomain.ErrInvalidState)
)

// User is an account that can own tasks.
type User struct {
	id           int64
	username     Username
	passwordHash string
	createdAt    time.Time
	events       []sharedDomain.DomainEvent
}

// NewUser creates an unsaved user. The id is assigned on insert.
func NewUser(username Username, passwordHash string) *User {
	return &User{
		username:     username,
		passwordHash: passwordHash,
		createdAt:    time.Now().UTC(),
	}
}

// RehydrateUser rebuilds a user from storage.
func RehydrateUser(id int64, username Username, passwordHash string, createdAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}

func (u *User) ID() int64            { return u.id }
func (u *User) Username() Username   { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// IsNew reports whether the user has not been inserted yet.
func (u *User) IsNew() bool {
	return u.id == 0
}

// AssignID records the identity generated on insert and raises UserCreated.
func (u *User) AssignID(id int64) {
	u.id = id
	u.events = append(u.events, NewUserCreated(id, u.username.String()))
}

// ChangePassword replaces the stored hash.
func (u *User) ChangePassword(hash string) {
	u.passwordHash = hash
}

// SameAs compares users by id.
func (u *User) SameAs(other *User) bool {
	if u == nil || other == nil {
		return false
	}
	return u.id != 0 && u.id == other.id
}

// DomainEvents returns the events raised since the last clear.
func (u *User) DomainEvents() []sharedDomain.DomainEvent {
	return u.events
}

// ClearDomainEvents drops the recorded events.
func (u *User) ClearDomainEvents() {
	u.events = nil
}
