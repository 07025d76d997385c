package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a feedback record does not exist within the
// caller's hospital scope. Lookups for another hospital's record return the
// same error so cross-tenant existence never leaks.
var ErrNotFound = errors.New("feedback not found")

// ValidationError reports a malformed or out-of-domain input field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
