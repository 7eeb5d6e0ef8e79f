package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careboard/careboard-api/internal/domain"
	"github.com/careboard/careboard-api/internal/store"
)

var patientRowColumns = []string{
	"id", "first_name", "last_name", "document_number", "document_type",
	"birth_date", "address", "phone", "email", "city", "state",
	"admission_date", "active",
}

func testPatient(id string) domain.Patient {
	return domain.Patient{
		ID:             id,
		FirstName:      "Ana",
		LastName:       "Diaz",
		DocumentNumber: "1001",
		DocumentType:   "CC",
		BirthDate:      time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
		Address:        "Cra 1 # 2-3",
		Phone:          "+573001112233",
		Email:          "ana@example.com",
		City:           "Medellin",
		State:          "Antioquia",
		AdmissionDate:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Active:         true,
	}
}

func patientRow(p domain.Patient) *sqlmock.Rows {
	return sqlmock.NewRows(patientRowColumns).AddRow(
		p.ID, p.FirstName, p.LastName, p.DocumentNumber, p.DocumentType,
		p.BirthDate, p.Address, p.Phone, p.Email, p.City, p.State,
		p.AdmissionDate, p.Active,
	)
}

func newStoreWithMock(t *testing.T) (*PostgresPatientStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewPostgresPatientStore(db, nil), mock
}

func TestPatientStoreSave(t *testing.T) {
	t.Run("inserts the record", func(t *testing.T) {
		s, mock := newStoreWithMock(t)
		p := testPatient("p1")

		mock.ExpectExec("INSERT INTO patients").
			WithArgs(p.ID, p.FirstName, p.LastName, p.DocumentNumber, p.DocumentType,
				p.BirthDate, p.Address, p.Phone, p.Email, p.City, p.State,
				p.AdmissionDate, p.Active).
			WillReturnResult(sqlmock.NewResult(0, 1))

		saved, err := s.Save(context.Background(), p)

		require.NoError(t, err)
		assert.Equal(t, p, saved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps unique violations to ErrDuplicateDocument", func(t *testing.T) {
		s, mock := newStoreWithMock(t)
		p := testPatient("p1")

		mock.ExpectExec("INSERT INTO patients").
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolationCode})

		_, err := s.Save(context.Background(), p)

		assert.ErrorIs(t, err, store.ErrDuplicateDocument)
	})
}

func TestPatientStoreUpdate(t *testing.T) {
	t.Run("updates the record", func(t *testing.T) {
		s, mock := newStoreWithMock(t)
		p := testPatient("p1")

		mock.ExpectExec("UPDATE patients").
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := s.Update(context.Background(), p)

		require.NoError(t, err)
		assert.Equal(t, p, updated)
	})

	t.Run("missing record", func(t *testing.T) {
		s, mock := newStoreWithMock(t)

		mock.ExpectExec("UPDATE patients").
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := s.Update(context.Background(), testPatient("missing"))

		assert.ErrorIs(t, err, store.ErrPatientNotFound)
	})
}

func TestPatientStoreFindByID(t *testing.T) {
	t.Run("returns the record", func(t *testing.T) {
		s, mock := newStoreWithMock(t)
		p := testPatient("p1")

		mock.ExpectQuery("SELECT (.+) FROM patients WHERE id").
			WithArgs("p1").
			WillReturnRows(patientRow(p))

		found, err := s.FindByID(context.Background(), "p1")

		require.NoError(t, err)
		assert.Equal(t, p.ID, found.ID)
		assert.Equal(t, p.DocumentNumber, found.DocumentNumber)
		assert.True(t, found.Active)
	})

	t.Run("missing record", func(t *testing.T) {
		s, mock := newStoreWithMock(t)

		mock.ExpectQuery("SELECT (.+) FROM patients WHERE id").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(patientRowColumns))

		_, err := s.FindByID(context.Background(), "missing")

		assert.ErrorIs(t, err, store.ErrPatientNotFound)
	})
}

func TestPatientStoreQueries(t *testing.T) {
	t.Run("find all", func(t *testing.T) {
		s, mock := newStoreWithMock(t)
		rows := patientRow(testPatient("p1")).AddRow(
			"p2", "Luis", "Rojas", "1002", "CC",
			time.Date(1985, 2, 1, 0, 0, 0, 0, time.UTC), "", "", "",
			"Bogota", "Cundinamarca",
			time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC), true,
		)

		mock.ExpectQuery("SELECT (.+) FROM patients ORDER BY").
			WillReturnRows(rows)

		patients, err := s.FindAll(context.Background())

		require.NoError(t, err)
		require.Len(t, patients, 2)
		assert.Equal(t, "p1", patients[0].ID)
		assert.Equal(t, "Luis", patients[1].FirstName)
	})

	t.Run("find by active", func(t *testing.T) {
		s, mock := newStoreWithMock(t)

		mock.ExpectQuery("SELECT (.+) FROM patients WHERE active").
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows(patientRowColumns))

		patients, err := s.FindByActive(context.Background(), false)

		require.NoError(t, err)
		assert.Empty(t, patients)
	})

	t.Run("find by city", func(t *testing.T) {
		s, mock := newStoreWithMock(t)

		mock.ExpectQuery("SELECT (.+) FROM patients WHERE city").
			WithArgs("Medellin").
			WillReturnRows(patientRow(testPatient("p1")))

		patients, err := s.FindByCity(context.Background(), "Medellin")

		require.NoError(t, err)
		require.Len(t, patients, 1)
	})

	t.Run("find by document number", func(t *testing.T) {
		s, mock := newStoreWithMock(t)

		mock.ExpectQuery("SELECT (.+) FROM patients WHERE document_number").
			WithArgs("1001").
			WillReturnRows(patientRow(testPatient("p1")))

		patients, err := s.FindByDocumentNumber(context.Background(), "1001")

		require.NoError(t, err)
		require.Len(t, patients, 1)
		assert.Equal(t, "1001", patients[0].DocumentNumber)
	})
}

func TestPatientStoreDeleteByID(t *testing.T) {
	t.Run("deletes the record", func(t *testing.T) {
		s, mock := newStoreWithMock(t)

		mock.ExpectExec("DELETE FROM patients").
			WithArgs("p1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.DeleteByID(context.Background(), "p1"))
	})

	t.Run("missing record", func(t *testing.T) {
		s, mock := newStoreWithMock(t)

		mock.ExpectExec("DELETE FROM patients").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.DeleteByID(context.Background(), "missing")

		assert.ErrorIs(t, err, store.ErrPatientNotFound)
	})
}
