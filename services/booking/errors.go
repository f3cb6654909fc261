package booking

import "fmt"

// Service error taxonomy. Every failure here is locally recoverable and maps
// to a 4xx response at the HTTP boundary; only unexpected persistence/IO
// errors propagate untyped.

// ValidationError indicates malformed input: bad time format, past date,
// duration out of range, missing fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Message)
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError indicates the proposed interval overlaps an existing active
// reservation, detected by the pre-check or by the persistence layer's
// unique-index violation. Retryable: the caller should choose another time.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

func NewConflictError(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates the referenced court or booking does not exist or
// is inactive.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Message)
}

func NewNotFoundError(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// StateError indicates the operation is invalid for the booking's current
// status, e.g. cancelling a non-confirmed booking or double-rating.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("invalid state: %s", e.Message)
}

func NewStateError(format string, args ...interface{}) error {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}
