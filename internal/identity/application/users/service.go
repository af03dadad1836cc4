// Package users manages user accounts from the command line.
package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/todolist/internal/identity/domain"
	"github.com/felixgeelhaar/todolist/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/todolist/internal/shared/domain"
)

// PasswordHasher hashes new passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// EventPublisher receives user events after commit.
type EventPublisher interface {
	Publish(ctx context.Context, events ...sharedDomain.DomainEvent) error
}

// Service creates, lists and deletes users.
type Service struct {
	repo      domain.UserRepository
	hasher    PasswordHasher
	uow       application.UnitOfWork
	publisher EventPublisher
	logger    *slog.Logger
}

// NewService creates a users Service. publisher may be nil.
func NewService(
	repo domain.UserRepository,
	hasher PasswordHasher,
	uow application.UnitOfWork,
	publisher EventPublisher,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, hasher: hasher, uow: uow, publisher: publisher, logger: logger}
}

// Add creates a user with the given password.
func (s *Service) Add(ctx context.Context, username, password string) (*domain.User, error) {
	name, err := domain.NewUsername(username)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.NewUser(name, hash)
	err = application.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		return s.repo.Save(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, user.DomainEvents()...)
	user.ClearDomainEvents()

	s.logger.InfoContext(ctx, "user created", "user_id", user.ID(), "username", name.String())
	return user, nil
}

// SetPassword replaces the password of an existing user.
func (s *Service) SetPassword(ctx context.Context, username, password string) error {
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return application.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		user, err := s.repo.FindByUsername(txCtx, username)
		if err != nil {
			return err
		}
		user.ChangePassword(hash)
		return s.repo.Save(txCtx, user)
	})
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// Delete removes a user and, through the schema, every task they own.
func (s *Service) Delete(ctx context.Context, username string) error {
	var deleted *domain.User
	err := application.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		user, err := s.repo.FindByUsername(txCtx, username)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(txCtx, user.ID()); err != nil {
			return err
		}
		deleted = user
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, domain.NewUserDeleted(deleted.ID(), username))
	s.logger.InfoContext(ctx, "user deleted", "user_id", deleted.ID(), "username", username)
	return nil
}

func (s *Service) publish(ctx context.Context, events ...sharedDomain.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	application.ApplyEventMetadata(events, application.NewEventMetadata(ctx, ""))
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.WarnContext(ctx, "failed to publish user events", "error", err)
	}
}
