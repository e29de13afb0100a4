// Package shared defines sentinel errors used across the Microstory server
// layers. Callers should use errors.Is to match these values; the HTTP layer
// maps them to status codes in one place.
package shared

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Service-level errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternal           = errors.New("internal error")

	// Auth errors (missing, malformed, expired or forged token).
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid or expired token")

	// Ownership errors (acting on another user's resource).
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports a client-fixable input problem tied to a single
// field. Match it with errors.As.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Msg)
}

// NewValidationError builds a field-tagged validation error.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}
