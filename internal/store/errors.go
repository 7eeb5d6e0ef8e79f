// Package store defines the persistence and gateway ports the use cases
// depend on, together with the sentinel errors adapters must return.
package store

import "errors"

// Sentinel errors returned by store and gateway implementations. Callers
// check them with errors.Is; the API layer maps them to status codes.
var (
	// ErrTaskNotFound is returned when a task lookup finds nothing.
	ErrTaskNotFound = errors.New("indicated task not found")

	// ErrUserNotFound is returned when the external user service has no
	// user with the given ID.
	ErrUserNotFound = errors.New("indicated user does not exist")

	// ErrPatientNotFound is returned when a patient lookup finds nothing.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrDuplicateDocument is returned when saving a patient whose document
	// number already exists.
	ErrDuplicateDocument = errors.New("document number already exists")

	// ErrInvalidEntity is returned when an entity violates a storage-level
	// constraint not covered by domain validation.
	ErrInvalidEntity = errors.New("invalid entity data")
)

// IsNotFoundError reports whether err is any of the not-found sentinels.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrPatientNotFound)
}
