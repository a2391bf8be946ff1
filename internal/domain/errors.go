package domain

import (
	"errors"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when input fails validation.
	// Use errors.Is(err, ErrValidation) to detect any validation failure,
	// and errors.As with *ValidationError to access the field errors.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a task ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid task ID")
)

// FieldError describes a single validation violation on a named input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates all validation violations for one input.
// Validators collect every violation rather than stopping at the first,
// so the caller can report the complete list to the client.
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates a ValidationError from the given field errors.
func NewValidationError(errs ...FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return ErrValidation.Error()
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// Is reports whether the target matches ErrValidation, so callers can use
// errors.Is(err, domain.ErrValidation) without knowing the concrete type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
