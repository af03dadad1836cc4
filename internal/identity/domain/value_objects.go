package domain

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrUsernameTooLong  = errors.New("username exceeds maximum length")
	ErrUsernameInvalid  = errors.New("username cannot contain whitespace")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
)

const (
	// MaxUsernameLength is the maximum allowed username length.
	MaxUsernameLength = 64
	// MinPasswordLength applies to new passwords only.
	MinPasswordLength = 4
	// MaxPasswordLength is bcrypt's input limit.
	MaxPasswordLength = 72
)

// Username is a validated, case-sensitive login name.
type Username struct {
	value string
}

// NewUsername trims surrounding space and validates the result.
func NewUsername(value string) (Username, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Username{}, ErrEmptyUsername
	}
	if len(value) > MaxUsernameLength {
		return Username{}, ErrUsernameTooLong
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return Username{}, ErrUsernameInvalid
	}
	return Username{value: value}, nil
}

func (u Username) String() string {
	return u.value
}

// Equals compares case-sensitively.
func (u Username) Equals(other Username) bool {
	return u.value == other.value
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	Username string
}

// NewPrincipal returns the principal for username.
func NewPrincipal(username string) Principal {
	return Principal{Username: username}
}

// IsAnonymous reports whether no user is authenticated.
func (p Principal) IsAnonymous() bool {
	return p.Username == ""
}

func (p Principal) String() string {
	return p.Username
}
