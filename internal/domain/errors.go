// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrTaskNotAssigned is returned when a task is completed without
	// having been assigned first.
	ErrTaskNotAssigned = errors.New("task has not been assigned")

	// ErrTaskAlreadyAssigned is returned when a task that already has an
	// assignee is assigned again.
	ErrTaskAlreadyAssigned = errors.New("task already assigned")
)

// ValidationError describes a single invalid field. It wraps ErrValidation
// so callers can match the whole category with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message, Err: ErrValidation}
}
