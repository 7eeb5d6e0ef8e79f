package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/careboard/careboard-api/internal/domain"
	"github.com/careboard/careboard-api/internal/events"
	"github.com/careboard/careboard-api/internal/jobs"
	"github.com/careboard/careboard-api/internal/weather"
)

// MockTaskStore mocks the store.TaskStore interface
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Save(ctx context.Context, task domain.Task) (domain.Task, error) {
	args := m.Called(ctx, task)
	// Allow tests to echo the stored value back without knowing it upfront.
	if fn, ok := args.Get(0).(func(context.Context, domain.Task) domain.Task); ok {
		return fn(ctx, task), args.Error(1)
	}
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskStore) SaveAll(ctx context.Context, tasks []domain.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockTaskStore) FindByID(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskStore) FindAllOpenTasksForUser(
	ctx context.Context,
	userID string,
) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

// MockUserGateway mocks the store.UserGateway interface
type MockUserGateway struct {
	mock.Mock
}

func (m *MockUserGateway) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

// MockUserScoreGateway mocks the store.UserScoreGateway interface
type MockUserScoreGateway struct {
	mock.Mock
}

func (m *MockUserScoreGateway) AddPoints(ctx context.Context, userID string, points int) error {
	args := m.Called(ctx, userID, points)
	return args.Error(0)
}

// MockEventGateway mocks the events.Gateway interface
type MockEventGateway struct {
	mock.Mock
}

func (m *MockEventGateway) Emit(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockPatientStore mocks the store.PatientStore interface
type MockPatientStore struct {
	mock.Mock
}

func (m *MockPatientStore) Save(ctx context.Context, patient domain.Patient) (domain.Patient, error) {
	args := m.Called(ctx, patient)
	if fn, ok := args.Get(0).(func(context.Context, domain.Patient) domain.Patient); ok {
		return fn(ctx, patient), args.Error(1)
	}
	return args.Get(0).(domain.Patient), args.Error(1)
}

func (m *MockPatientStore) Update(ctx context.Context, patient domain.Patient) (domain.Patient, error) {
	args := m.Called(ctx, patient)
	if fn, ok := args.Get(0).(func(context.Context, domain.Patient) domain.Patient); ok {
		return fn(ctx, patient), args.Error(1)
	}
	return args.Get(0).(domain.Patient), args.Error(1)
}

func (m *MockPatientStore) FindByID(ctx context.Context, id string) (domain.Patient, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Patient), args.Error(1)
}

func (m *MockPatientStore) FindAll(ctx context.Context) ([]domain.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Patient), args.Error(1)
}

func (m *MockPatientStore) FindByActive(ctx context.Context, active bool) ([]domain.Patient, error) {
	args := m.Called(ctx, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Patient), args.Error(1)
}

func (m *MockPatientStore) FindByDocumentNumber(
	ctx context.Context,
	documentNumber string,
) ([]domain.Patient, error) {
	args := m.Called(ctx, documentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Patient), args.Error(1)
}

func (m *MockPatientStore) FindByCity(ctx context.Context, city string) ([]domain.Patient, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Patient), args.Error(1)
}

func (m *MockPatientStore) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWeatherGateway mocks the weather.Gateway interface
type MockWeatherGateway struct {
	mock.Mock
}

func (m *MockWeatherGateway) ByLocation(
	ctx context.Context,
	city, state string,
) (weather.Info, error) {
	args := m.Called(ctx, city, state)
	return args.Get(0).(weather.Info), args.Error(1)
}

// MockJobRunner mocks the JobRunner interface
type MockJobRunner struct {
	mock.Mock

	// RunInline executes submitted jobs synchronously when set, which keeps
	// export tests single-goroutine.
	RunInline bool
}

func (m *MockJobRunner) Submit(job jobs.Job) error {
	args := m.Called(job)
	if args.Error(0) == nil && m.RunInline {
		_ = job.Execute(context.Background())
	}
	return args.Error(0)
}

// MockPatientExporter mocks the PatientExporter interface
type MockPatientExporter struct {
	mock.Mock
}

func (m *MockPatientExporter) Export(
	ctx context.Context,
	patients []domain.Patient,
) ([]byte, error) {
	args := m.Called(ctx, patients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
