package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by the store when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDataUnavailable marks an upstream fetch that failed or returned nothing.
// Analytics components catch it at the boundary and degrade to empty results
// instead of propagating a hard failure.
var ErrDataUnavailable = errors.New("data unavailable")

// ValidationError is a malformed ad-hoc expense or request field. Surfaced to
// the caller immediately, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError naming the offending field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
