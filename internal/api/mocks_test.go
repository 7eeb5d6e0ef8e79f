package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/careboard/careboard-api/internal/domain"
	"github.com/careboard/careboard-api/internal/service"
)

// MockTaskService mocks the service.TaskService interface
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(
	ctx context.Context,
	name, description string,
) (domain.Task, error) {
	args := m.Called(ctx, name, description)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskService) AssignTask(
	ctx context.Context,
	taskID, userID string,
) (domain.Task, error) {
	args := m.Called(ctx, taskID, userID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskService) CompleteTask(ctx context.Context, taskID string) (domain.Task, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskService) ReassignUserTasks(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskService) FindAllTasks(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskService) FindTaskWithDetails(
	ctx context.Context,
	taskID string,
) (service.TaskDetails, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(service.TaskDetails), args.Error(1)
}

// MockPatientService mocks the service.PatientService interface
type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) CreatePatient(
	ctx context.Context,
	input service.CreatePatientInput,
) (domain.Patient, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Patient), args.Error(1)
}

func (m *MockPatientService) GetPatientByID(ctx context.Context, id string) (domain.Patient, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Patient), args.Error(1)
}

func (m *MockPatientService) QueryPatients(
	ctx context.Context,
	query service.PatientQuery,
) ([]domain.Patient, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Patient), args.Error(1)
}

func (m *MockPatientService) UpdatePatient(
	ctx context.Context,
	id string,
	input service.UpdatePatientInput,
) (domain.Patient, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.Patient), args.Error(1)
}

func (m *MockPatientService) DeletePatient(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPatientService) DeactivatePatient(
	ctx context.Context,
	id string,
) (domain.Patient, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Patient), args.Error(1)
}

func (m *MockPatientService) ReactivatePatient(
	ctx context.Context,
	id string,
) (domain.Patient, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Patient), args.Error(1)
}

func (m *MockPatientService) GetPatientWeather(
	ctx context.Context,
	id string,
) (service.PatientWeather, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(service.PatientWeather), args.Error(1)
}

func (m *MockPatientService) ExportPatients(
	ctx context.Context,
	activeOnly bool,
) ([]byte, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
