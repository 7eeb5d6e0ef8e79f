package store

import (
	"context"

	"github.com/careboard/careboard-api/internal/domain"
)

// PatientStore defines the interface for patient persistence.
type PatientStore interface {
	// Save inserts a new patient record and returns the stored value.
	// Returns ErrDuplicateDocument when the document number is taken.
	Save(ctx context.Context, patient domain.Patient) (domain.Patient, error)

	// Update overwrites an existing patient record.
	// Returns ErrPatientNotFound if no record exists.
	Update(ctx context.Context, patient domain.Patient) (domain.Patient, error)

	// FindByID retrieves a patient by ID.
	// Returns ErrPatientNotFound if the patient does not exist.
	FindByID(ctx context.Context, id string) (domain.Patient, error)

	// FindAll retrieves every patient record.
	FindAll(ctx context.Context) ([]domain.Patient, error)

	// FindByActive retrieves patients filtered by the active flag.
	FindByActive(ctx context.Context, active bool) ([]domain.Patient, error)

	// FindByDocumentNumber retrieves patients with the given document number.
	FindByDocumentNumber(ctx context.Context, documentNumber string) ([]domain.Patient, error)

	// FindByCity retrieves patients living in the given city.
	FindByCity(ctx context.Context, city string) ([]domain.Patient, error)

	// DeleteByID removes a patient record.
	// Returns ErrPatientNotFound if the patient does not exist.
	DeleteByID(ctx context.Context, id string) error
}
