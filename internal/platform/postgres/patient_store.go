package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/careboard/careboard-api/internal/domain"
	"github.com/careboard/careboard-api/internal/platform/logger"
	"github.com/careboard/careboard-api/internal/store"
)

// PostgreSQL error codes
const pgUniqueViolationCode = "23505"

const patientColumns = `
	id, first_name, last_name, document_number, document_type, birth_date,
	address, phone, email, city, state, admission_date, active
`

// PostgresPatientStore implements the store.PatientStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPatientStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPatientStore creates a new PostgreSQL implementation of the
// PatientStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPatientStore(db store.DBTX, logger *slog.Logger) *PostgresPatientStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPatientStore{
		db:     db,
		logger: logger.With(slog.String("component", "patient_store")),
	}
}

// Ensure PostgresPatientStore implements store.PatientStore interface
var _ store.PatientStore = (*PostgresPatientStore)(nil)

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, raised here when a document number is taken.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

// Save implements store.PatientStore.Save
// Returns store.ErrDuplicateDocument when the document number is taken.
func (s *PostgresPatientStore) Save(
	ctx context.Context,
	patient domain.Patient,
) (domain.Patient, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO patients (` + patientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		patient.ID,
		patient.FirstName,
		patient.LastName,
		patient.DocumentNumber,
		patient.DocumentType,
		patient.BirthDate,
		patient.Address,
		patient.Phone,
		patient.Email,
		patient.City,
		patient.State,
		patient.AdmissionDate,
		patient.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate document number during patient creation",
				slog.String("patient_id", patient.ID),
				slog.String("document_number", patient.DocumentNumber))
			return domain.Patient{}, fmt.Errorf("%w: document number %s",
				store.ErrDuplicateDocument, patient.DocumentNumber)
		}
		log.Error("failed to insert patient",
			slog.String("patient_id", patient.ID),
			slog.String("error", err.Error()))
		return domain.Patient{}, fmt.Errorf("failed to insert patient: %w", err)
	}

	return patient, nil
}

// Update implements store.PatientStore.Update
// Returns store.ErrPatientNotFound if no record exists.
func (s *PostgresPatientStore) Update(
	ctx context.Context,
	patient domain.Patient,
) (domain.Patient, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE patients
		SET first_name = $2, last_name = $3, document_number = $4,
			document_type = $5, birth_date = $6, address = $7, phone = $8,
			email = $9, city = $10, state = $11, admission_date = $12,
			active = $13
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		patient.ID,
		patient.FirstName,
		patient.LastName,
		patient.DocumentNumber,
		patient.DocumentType,
		patient.BirthDate,
		patient.Address,
		patient.Phone,
		patient.Email,
		patient.City,
		patient.State,
		patient.AdmissionDate,
		patient.Active,
	)
	if err != nil {
		log.Error("failed to update patient",
			slog.String("patient_id", patient.ID),
			slog.String("error", err.Error()))
		return domain.Patient{}, fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.Patient{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return domain.Patient{}, store.ErrPatientNotFound
	}

	return patient, nil
}

// FindByID implements store.PatientStore.FindByID
// Returns store.ErrPatientNotFound if the patient does not exist.
func (s *PostgresPatientStore) FindByID(ctx context.Context, id string) (domain.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`

	patient, err := scanPatient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Patient{}, store.ErrPatientNotFound
		}
		return domain.Patient{}, fmt.Errorf("failed to query patient: %w", err)
	}
	return patient, nil
}

// FindAll implements store.PatientStore.FindAll
func (s *PostgresPatientStore) FindAll(ctx context.Context) ([]domain.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY admission_date, id`
	return s.queryPatients(ctx, query)
}

// FindByActive implements store.PatientStore.FindByActive
func (s *PostgresPatientStore) FindByActive(
	ctx context.Context,
	active bool,
) ([]domain.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE active = $1 ORDER BY admission_date, id`
	return s.queryPatients(ctx, query, active)
}

// FindByDocumentNumber implements store.PatientStore.FindByDocumentNumber
func (s *PostgresPatientStore) FindByDocumentNumber(
	ctx context.Context,
	documentNumber string,
) ([]domain.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE document_number = $1 ORDER BY id`
	return s.queryPatients(ctx, query, documentNumber)
}

// FindByCity implements store.PatientStore.FindByCity
func (s *PostgresPatientStore) FindByCity(
	ctx context.Context,
	city string,
) ([]domain.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE city = $1 ORDER BY admission_date, id`
	return s.queryPatients(ctx, query, city)
}

// DeleteByID implements store.PatientStore.DeleteByID
// Returns store.ErrPatientNotFound if the patient does not exist.
func (s *PostgresPatientStore) DeleteByID(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete patient",
			slog.String("patient_id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return store.ErrPatientNotFound
	}

	return nil
}

func (s *PostgresPatientStore) queryPatients(
	ctx context.Context,
	query string,
	args ...interface{},
) ([]domain.Patient, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var patients []domain.Patient
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient row: %w", err)
		}
		patients = append(patients, patient)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patient rows: %w", err)
	}

	return patients, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(row rowScanner) (domain.Patient, error) {
	var p domain.Patient
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.DocumentNumber,
		&p.DocumentType,
		&p.BirthDate,
		&p.Address,
		&p.Phone,
		&p.Email,
		&p.City,
		&p.State,
		&p.AdmissionDate,
		&p.Active,
	)
	if err != nil {
		return domain.Patient{}, err
	}
	return p, nil
}
