package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when an insert or update would violate
	// identifier uniqueness.
	ErrDuplicateID = errors.New("id already exists")
)

// ValidationError reports a malformed field on input. It is recoverable:
// the caller is expected to correct the field and retry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
