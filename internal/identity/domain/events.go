package domain

import (
	sharedDomain "github.com/felixgeelhaar/todolist/internal/shared/domain"
)

const (
	AggregateType = "User"

	RoutingKeyUserCreated = "todolist.user.created"
	RoutingKeyUserDeleted = "todolist.user.deleted"
)

// UserCreated is emitted when a new user is inserted.
type UserCreated struct {
	sharedDomain.BaseEvent
	Username string `json:"username"`
}

// NewUserCreated creates a UserCreated event.
func NewUserCreated(userID int64, username string) *UserCreated {
	return &UserCreated{
		BaseEvent: sharedDomain.NewBaseEvent(userID, AggregateType, RoutingKeyUserCreated),
		Username:  username,
	}
}

// UserDeleted is emitted when a user and their tasks are removed.
type UserDeleted struct {
	sharedDomain.BaseEvent
	Username string `json:"username"`
}

// NewUserDeleted creates a UserDeleted event.
func NewUserDeleted(userID int64, username string) *UserDeleted {
	return &UserDeleted{
		BaseEvent: sharedDomain.NewBaseEvent(userID, AggregateType, RoutingKeyUserDeleted),
		Username:  username,
	}
}
