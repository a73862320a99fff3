package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the flows. Handlers map these to transport status
// codes at the boundary; nothing below the API layer knows about HTTP.
var (
	// ErrConflict is returned when a unique constraint (username, email)
	// is violated on create.
	ErrConflict = errors.New("resource already exists")

	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken covers malformed tokens, bad signatures, and expired
	// tokens alike. The cause is deliberately not distinguished.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
