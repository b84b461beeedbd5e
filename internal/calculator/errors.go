package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or contradictory input. It is permanent
	// for the same input.
	ErrValidation = errors.New("validation fault")

	// ErrReference marks a record pointing at an entity missing from the
	// supplied record set.
	ErrReference = errors.New("referential fault")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ReferenceError describes a dangling reference.
type ReferenceError struct {
	// Kind is the kind of the missing entity ("account", "friend", ...).
	Kind string
	// ID is the missing entity's ID.
	ID string
	// Referrer identifies the record holding the reference (e.g., "statement 42").
	Referrer string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s references unknown %s %q", e.Referrer, e.Kind, e.ID)
}

// Is makes errors.Is(err, ErrReference) match.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}
