// Package auth verifies credentials and resolves the principal of a request
// from a session cookie or a bearer token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/todolist/internal/identity/domain"
)

// ErrInvalidCredentials is returned when the username or password is wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Authenticator ties together users, password hashes, sessions and API tokens.
type Authenticator struct {
	users    domain.UserRepository
	hasher   *PasswordHasher
	sessions SessionStore
	tokens   *TokenManager
	logger   *slog.Logger

	// dummyHash keeps the cost of a lookup miss close to a wrong password.
	dummyHash string
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(
	users domain.UserRepository,
	hasher *PasswordHasher,
	sessions SessionStore,
	tokens *TokenManager,
	logger *slog.Logger,
) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	dummy, _ := hasher.Hash("todolist-dummy-password")
	return &Authenticator{
		users:     users,
		hasher:    hasher,
		sessions:  sessions,
		tokens:    tokens,
		logger:    logger,
		dummyHash: dummy,
	}
}

// Authenticate checks username and password.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserRecordNotFound) {
			a.hasher.Verify(password, a.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !a.hasher.Verify(password, user.PasswordHash()) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and opens a session, returning its token.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	user, err := a.Authenticate(ctx, username, password)
	if err != nil {
		a.logger.InfoContext(ctx, "login failed", "username", username)
		return "", err
	}
	token, err := a.sessions.Create(ctx, user.Username().String())
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	a.logger.InfoContext(ctx, "user logged in", "username", user.Username().String())
	return token, nil
}

// Logout ends the session.
func (a *Authenticator) Logout(ctx context.Context, sessionToken string) error {
	return a.sessions.Delete(ctx, sessionToken)
}

// PrincipalFromSession resolves a session token.
func (a *Authenticator) PrincipalFromSession(ctx context.Context, sessionToken string) (domain.Principal, error) {
	if sessionToken == "" {
		return domain.Principal{}, ErrSessionNotFound
	}
	username, err := a.sessions.Lookup(ctx, sessionToken)
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.NewPrincipal(username), nil
}

// IssueToken authenticates and returns a bearer token for the JSON API.
func (a *Authenticator) IssueToken(ctx context.Context, username, password string) (string, error) {
	user, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return a.tokens.Issue(user.Username().String())
}

// PrincipalFromToken validates a bearer token.
func (a *Authenticator) PrincipalFromToken(tokenString string) (domain.Principal, error) {
	claims, err := a.tokens.Validate(tokenString)
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.NewPrincipal(claims.Username), nil
}

// TokenTTLSeconds is reported to API clients as expires_in.
func (a *Authenticator) TokenTTLSeconds() int64 {
	return int64(a.tokens.TTL().Seconds())
}
