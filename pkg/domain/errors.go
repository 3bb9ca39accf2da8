package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidDocument is matched (via errors.Is) by every input validation failure.
var ErrInvalidDocument = errors.New("invalid document")

// ErrNoSegments is returned when there is nothing to sequence.
var ErrNoSegments = errors.New("no line segments")

// ErrPinOutOfRange is returned when a segment references a pin outside the board.
var ErrPinOutOfRange = errors.New("pin out of range")

// ErrInvalidWidth is returned when a physical width is not a positive number.
var ErrInvalidWidth = errors.New("physical width must be positive")

// ErrStepOutOfRange is returned when a label is requested for a step index the encoder does not cover.
var ErrStepOutOfRange = errors.New("step index out of range")

// ErrCacheMiss is returned by plan caches when no entry exists for a key.
var ErrCacheMiss = errors.New("plan not cached")

// ValidationError describes a single precondition the input document failed.
type ValidationError struct {
	Field  string
	Reason string
	Value  any
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Reason, e.Value)
}

// Is makes every ValidationError match ErrInvalidDocument.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// Invalid builds a ValidationError.
func Invalid(field, reason string, value any) error {
	return &ValidationError{Field: field, Reason: reason, Value: value}
}
