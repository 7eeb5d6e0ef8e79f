package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for patient lifecycle conflicts.
var (
	// ErrPatientAlreadyInactive is returned when deactivating a patient
	// whose record is already inactive.
	ErrPatientAlreadyInactive = errors.New("patient is already inactive")

	// ErrPatientAlreadyActive is returned when reactivating a patient
	// whose record is already active.
	ErrPatientAlreadyActive = errors.New("patient is already active")
)

// TaskServiceError is a custom error type for task service errors.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// PatientServiceError is a custom error type for patient service errors.
type PatientServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for PatientServiceError.
func (e *PatientServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("patient service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("patient service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PatientServiceError) Unwrap() error {
	return e.Err
}

// NewPatientServiceError creates a new PatientServiceError.
func NewPatientServiceError(operation, message string, err error) *PatientServiceError {
	return &PatientServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
