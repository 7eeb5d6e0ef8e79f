package api

import (
	"errors"
	"net/http"

	"github.com/careboard/careboard-api/internal/domain"
	"github.com/careboard/careboard-api/internal/service"
	"github.com/careboard/careboard-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrPatientNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, domain.ErrTaskAlreadyAssigned),
		errors.Is(err, domain.ErrTaskNotAssigned),
		errors.Is(err, store.ErrDuplicateDocument),
		errors.Is(err, service.ErrPatientAlreadyInactive),
		errors.Is(err, service.ErrPatientAlreadyActive):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrPatientNotFound):
		return "Patient not found"
	case errors.Is(err, domain.ErrTaskAlreadyAssigned):
		return "Task is already assigned"
	case errors.Is(err, domain.ErrTaskNotAssigned):
		return "Task has not been assigned"
	case errors.Is(err, store.ErrDuplicateDocument):
		return "A patient with this document number already exists"
	case errors.Is(err, service.ErrPatientAlreadyInactive):
		return "Patient is already inactive"
	case errors.Is(err, service.ErrPatientAlreadyActive):
		return "Patient is already active"
	case errors.Is(err, domain.ErrValidation):
		// Validation messages are produced by the domain and carry no
		// internals, so the concrete field message is safe to show.
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr.Error()
		}
		return "Invalid request data"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"
	default:
		return "An unexpected error occurred"
	}
}
