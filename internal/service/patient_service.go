package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careboard/careboard-api/internal/domain"
	"github.com/careboard/careboard-api/internal/events"
	"github.com/careboard/careboard-api/internal/jobs"
	"github.com/careboard/careboard-api/internal/store"
	"github.com/careboard/careboard-api/internal/weather"
)

// JobRunner accepts background jobs for asynchronous execution.
type JobRunner interface {
	// Submit enqueues the job. Returns an error when the queue is full.
	Submit(job jobs.Job) error
}

// PatientExporter renders a patient collection into a downloadable file.
type PatientExporter interface {
	Export(ctx context.Context, patients []domain.Patient) ([]byte, error)
}

// CreatePatientInput carries the raw fields for a new patient record.
// BirthDate uses the YYYY-MM-DD layout.
type CreatePatientInput struct {
	FirstName      string
	LastName       string
	DocumentNumber string
	DocumentType   string
	BirthDate      string
	Address        string
	Phone          string
	Email          string
	City           string
	State          string
}

// UpdatePatientInput carries a partial patient update. Empty fields keep
// their stored values.
type UpdatePatientInput struct {
	FirstName string
	LastName  string
	Address   string
	Phone     string
	Email     string
	City      string
	State     string
}

// PatientQuery narrows a patient listing. Zero value means all patients;
// filters combine left to right with the first set one winning.
type PatientQuery struct {
	Active         *bool
	City           string
	DocumentNumber string
}

// PatientWeather pairs a patient with the current weather at their city.
type PatientWeather struct {
	Patient domain.Patient
	Weather weather.Info
}

// PatientService provides patient-related operations
type PatientService interface {
	// CreatePatient validates and stores a new patient record and announces
	// it. The announcement is best effort.
	CreatePatient(ctx context.Context, input CreatePatientInput) (domain.Patient, error)

	// GetPatientByID retrieves a single patient record.
	GetPatientByID(ctx context.Context, id string) (domain.Patient, error)

	// QueryPatients lists patients matching the query.
	QueryPatients(ctx context.Context, query PatientQuery) ([]domain.Patient, error)

	// UpdatePatient merges the non-empty input fields into the stored record.
	UpdatePatient(ctx context.Context, id string, input UpdatePatientInput) (domain.Patient, error)

	// DeletePatient removes the patient record.
	DeletePatient(ctx context.Context, id string) error

	// DeactivatePatient clears the active flag.
	// Returns ErrPatientAlreadyInactive when the record is already inactive.
	DeactivatePatient(ctx context.Context, id string) (domain.Patient, error)

	// ReactivatePatient sets the active flag.
	// Returns ErrPatientAlreadyActive when the record is already active.
	ReactivatePatient(ctx context.Context, id string) (domain.Patient, error)

	// GetPatientWeather returns the patient together with the weather at
	// their registered city. The weather side never fails the call.
	GetPatientWeather(ctx context.Context, id string) (PatientWeather, error)

	// ExportPatients renders the patient collection as an XLSX workbook.
	// Generation runs on the background job pool.
	ExportPatients(ctx context.Context, activeOnly bool) ([]byte, error)
}

// patientServiceImpl implements the PatientService interface
type patientServiceImpl struct {
	patients store.PatientStore
	events   events.Gateway
	weather  weather.Gateway
	runner   JobRunner
	exporter PatientExporter
	logger   *slog.Logger
}

// NewPatientService creates a new PatientService.
// It returns an error if any of the required dependencies are nil.
func NewPatientService(
	patients store.PatientStore,
	eventGateway events.Gateway,
	weatherGateway weather.Gateway,
	runner JobRunner,
	exporter PatientExporter,
	logger *slog.Logger,
) (PatientService, error) {
	if patients == nil {
		return nil, domain.NewValidationError("patients", "cannot be nil")
	}
	if eventGateway == nil {
		return nil, domain.NewValidationError("eventGateway", "cannot be nil")
	}
	if weatherGateway == nil {
		return nil, domain.NewValidationError("weatherGateway", "cannot be nil")
	}
	if runner == nil {
		return nil, domain.NewValidationError("runner", "cannot be nil")
	}
	if exporter == nil {
		return nil, domain.NewValidationError("exporter", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &patientServiceImpl{
		patients: patients,
		events:   eventGateway,
		weather:  weatherGateway,
		runner:   runner,
		exporter: exporter,
		logger:   logger.With(slog.String("component", "patient_service")),
	}, nil
}

// CreatePatient implements PatientService.CreatePatient
func (s *patientServiceImpl) CreatePatient(
	ctx context.Context,
	input CreatePatientInput,
) (domain.Patient, error) {
	patient, err := domain.NewPatient(
		uuid.New().String(),
		input.FirstName,
		input.LastName,
		input.DocumentNumber,
		input.DocumentType,
		input.BirthDate,
		input.Address,
		input.Phone,
		input.Email,
		input.City,
		input.State,
	)
	if err != nil {
		return domain.Patient{}, err
	}

	saved, err := s.patients.Save(ctx, patient)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateDocument) {
			return domain.Patient{}, err
		}
		return domain.Patient{}, NewPatientServiceError("create", "failed to save patient", err)
	}

	// Unlike task creation, the record is the product here and the event is
	// a courtesy to downstream listeners. Emission failure only logs.
	event := events.PatientCreated{Patient: saved, At: time.Now().UTC()}
	if err := s.events.Emit(ctx, event); err != nil {
		s.logger.Error("failed to emit patient created event",
			"patient_id", saved.ID,
			"error", err)
	}

	s.logger.Info("patient created", "patient_id", saved.ID)
	return saved, nil
}

// GetPatientByID implements PatientService.GetPatientByID
func (s *patientServiceImpl) GetPatientByID(ctx context.Context, id string) (domain.Patient, error) {
	patient, err := s.patients.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.Patient{}, err
		}
		return domain.Patient{}, NewPatientServiceError("get", "failed to load patient", err)
	}
	return patient, nil
}

// QueryPatients implements PatientService.QueryPatients
func (s *patientServiceImpl) QueryPatients(
	ctx context.Context,
	query PatientQuery,
) ([]domain.Patient, error) {
	var (
		patients []domain.Patient
		err      error
	)
	switch {
	case query.Active != nil:
		patients, err = s.patients.FindByActive(ctx, *query.Active)
	case query.City != "":
		patients, err = s.patients.FindByCity(ctx, query.City)
	case query.DocumentNumber != "":
		patients, err = s.patients.FindByDocumentNumber(ctx, query.DocumentNumber)
	default:
		patients, err = s.patients.FindAll(ctx)
	}
	if err != nil {
		return nil, NewPatientServiceError("query", "failed to load patients", err)
	}
	return patients, nil
}

// UpdatePatient implements PatientService.UpdatePatient
func (s *patientServiceImpl) UpdatePatient(
	ctx context.Context,
	id string,
	input UpdatePatientInput,
) (domain.Patient, error) {
	patient, err := s.patients.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.Patient{}, err
		}
		return domain.Patient{}, NewPatientServiceError("update", "failed to load patient", err)
	}

	if strings.TrimSpace(input.FirstName) != "" {
		patient.FirstName = input.FirstName
	}
	if strings.TrimSpace(input.LastName) != "" {
		patient.LastName = input.LastName
	}
	if strings.TrimSpace(input.Address) != "" {
		patient.Address = input.Address
	}
	if strings.TrimSpace(input.Phone) != "" {
		if err := domain.ValidatePhone(input.Phone); err != nil {
			return domain.Patient{}, err
		}
		patient.Phone = input.Phone
	}
	if strings.TrimSpace(input.Email) != "" {
		if err := domain.ValidateEmail(input.Email); err != nil {
			return domain.Patient{}, err
		}
		patient.Email = input.Email
	}
	if strings.TrimSpace(input.City) != "" {
		patient.City = input.City
	}
	if strings.TrimSpace(input.State) != "" {
		patient.State = input.State
	}

	updated, err := s.patients.Update(ctx, patient)
	if err != nil {
		return domain.Patient{}, NewPatientServiceError("update", "failed to save patient", err)
	}

	s.logger.Info("patient updated", "patient_id", updated.ID)
	return updated, nil
}

// DeletePatient implements PatientService.DeletePatient
func (s *patientServiceImpl) DeletePatient(ctx context.Context, id string) error {
	if err := s.patients.DeleteByID(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return NewPatientServiceError("delete", "failed to delete patient", err)
	}

	s.logger.Info("patient deleted", "patient_id", id)
	return nil
}

// DeactivatePatient implements PatientService.DeactivatePatient
func (s *patientServiceImpl) DeactivatePatient(
	ctx context.Context,
	id string,
) (domain.Patient, error) {
	patient, err := s.patients.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.Patient{}, err
		}
		return domain.Patient{}, NewPatientServiceError("deactivate", "failed to load patient", err)
	}
	if !patient.Active {
		return domain.Patient{}, ErrPatientAlreadyInactive
	}

	updated, err := s.patients.Update(ctx, patient.Deactivated())
	if err != nil {
		return domain.Patient{}, NewPatientServiceError("deactivate", "failed to save patient", err)
	}

	s.logger.Info("patient deactivated", "patient_id", updated.ID)
	return updated, nil
}

// ReactivatePatient implements PatientService.ReactivatePatient
func (s *patientServiceImpl) ReactivatePatient(
	ctx context.Context,
	id string,
) (domain.Patient, error) {
	patient, err := s.patients.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.Patient{}, err
		}
		return domain.Patient{}, NewPatientServiceError("reactivate", "failed to load patient", err)
	}
	if patient.Active {
		return domain.Patient{}, ErrPatientAlreadyActive
	}

	updated, err := s.patients.Update(ctx, patient.Reactivated())
	if err != nil {
		return domain.Patient{}, NewPatientServiceError("reactivate", "failed to save patient", err)
	}

	s.logger.Info("patient reactivated", "patient_id", updated.ID)
	return updated, nil
}

// GetPatientWeather implements PatientService.GetPatientWeather
func (s *patientServiceImpl) GetPatientWeather(
	ctx context.Context,
	id string,
) (PatientWeather, error) {
	patient, err := s.patients.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return PatientWeather{}, err
		}
		return PatientWeather{}, NewPatientServiceError("weather", "failed to load patient", err)
	}

	info, err := s.weather.ByLocation(ctx, patient.City, patient.State)
	if err != nil {
		// Adapters already fall back, so an error here is unexpected. Still
		// degrade instead of failing the lookup.
		s.logger.Warn("weather lookup failed, using fallback",
			"patient_id", patient.ID,
			"city", patient.City,
			"error", err)
		info = weather.Default(patient.City, patient.State)
	}

	return PatientWeather{Patient: patient, Weather: info}, nil
}

// exportResult carries a finished export back from the job pool.
type exportResult struct {
	data []byte
	err  error
}

// ExportPatients implements PatientService.ExportPatients
func (s *patientServiceImpl) ExportPatients(
	ctx context.Context,
	activeOnly bool,
) ([]byte, error) {
	var (
		patients []domain.Patient
		err      error
	)
	if activeOnly {
		patients, err = s.patients.FindByActive(ctx, true)
	} else {
		patients, err = s.patients.FindAll(ctx)
	}
	if err != nil {
		return nil, NewPatientServiceError("export", "failed to load patients", err)
	}

	results := make(chan exportResult, 1)
	job := jobs.NewJobFunc(jobs.JobTypePatientExport, func(jobCtx context.Context) error {
		data, exportErr := s.exporter.Export(jobCtx, patients)
		results <- exportResult{data: data, err: exportErr}
		return exportErr
	})
	if err := s.runner.Submit(job); err != nil {
		return nil, NewPatientServiceError("export", "failed to enqueue export job", err)
	}

	select {
	case res := <-results:
		if res.err != nil {
			return nil, NewPatientServiceError("export", "failed to generate spreadsheet", res.err)
		}
		s.logger.Info("patients exported", "count", len(patients), "bytes", len(res.data))
		return res.data, nil
	case <-ctx.Done():
		return nil, NewPatientServiceError("export", "export cancelled", ctx.Err())
	}
}
