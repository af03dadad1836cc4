package domain

import "errors"

// Error kinds shared by every bounded context. Package-level sentinels wrap
// one of these so callers at the edges can classify failures with errors.Is.
var (
	// ErrNotFound means no record exists for the requested identity.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState means the operation cannot run against the current state,
	// such as saving on behalf of a principal that has no user record.
	ErrInvalidState = errors.New("invalid state")
)
