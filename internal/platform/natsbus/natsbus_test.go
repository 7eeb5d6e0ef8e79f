package natsbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/careboard/careboard-api/internal/domain"
	"github.com/careboard/careboard-api/internal/events"
	"github.com/careboard/careboard-api/internal/service"
)

// fakeConn records published messages.
type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subj)
	f.payloads = append(f.payloads, data)
	return nil
}

func TestPublisherEmit(t *testing.T) {
	t.Run("publishes the event as JSON on its topic", func(t *testing.T) {
		conn := &fakeConn{}
		p := NewPublisher(conn, "", nil)

		task, err := domain.NewTask("t1", "check vitals", "morning round")
		require.NoError(t, err)
		event := events.TaskCreated{Task: task, At: time.Now().UTC()}

		require.NoError(t, p.Emit(context.Background(), event))

		require.Len(t, conn.subjects, 1)
		assert.Equal(t, events.TaskCreatedName, conn.subjects[0])

		var decoded events.TaskCreated
		require.NoError(t, json.Unmarshal(conn.payloads[0], &decoded))
		assert.Equal(t, "t1", decoded.Task.ID)
	})

	t.Run("prepends the subject prefix", func(t *testing.T) {
		conn := &fakeConn{}
		p := NewPublisher(conn, "careboard", nil)

		event := events.PatientCreated{At: time.Now().UTC()}
		require.NoError(t, p.Emit(context.Background(), event))

		require.Len(t, conn.subjects, 1)
		assert.Equal(t, "careboard.PATIENT_CREATED", conn.subjects[0])
	})

	t.Run("surfaces transport failures", func(t *testing.T) {
		conn := &fakeConn{err: errors.New("connection closed")}
		p := NewPublisher(conn, "", nil)

		err := p.Emit(context.Background(), events.TaskCompleted{})
		assert.Error(t, err)
	})

	t.Run("honors a cancelled context", func(t *testing.T) {
		conn := &fakeConn{}
		p := NewPublisher(conn, "", nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := p.Emit(ctx, events.TaskCompleted{})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, conn.subjects)
	})
}

// mockTaskService implements service.TaskService for subscriber tests.
type mockTaskService struct {
	mock.Mock
}

func (m *mockTaskService) CreateTask(ctx context.Context, name, description string) (domain.Task, error) {
	args := m.Called(ctx, name, description)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *mockTaskService) AssignTask(ctx context.Context, taskID, userID string) (domain.Task, error) {
	args := m.Called(ctx, taskID, userID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *mockTaskService) CompleteTask(ctx context.Context, taskID string) (domain.Task, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *mockTaskService) ReassignUserTasks(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockTaskService) FindAllTasks(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *mockTaskService) FindTaskWithDetails(ctx context.Context, taskID string) (service.TaskDetails, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(service.TaskDetails), args.Error(1)
}

func TestReassignSubscriberHandleMessage(t *testing.T) {
	t.Run("triggers reassignment with the event task ID", func(t *testing.T) {
		tasks := new(mockTaskService)
		sub := NewReassignSubscriber(nil, tasks, "", nil)

		task, err := domain.NewTask("t1", "check vitals", "morning round")
		require.NoError(t, err)
		payload, err := json.Marshal(events.TaskCreated{Task: task, At: time.Now().UTC()})
		require.NoError(t, err)

		tasks.On("ReassignUserTasks", mock.Anything, "t1").Return(2, nil)

		require.NoError(t, sub.handleMessage(context.Background(), payload))
		tasks.AssertCalled(t, "ReassignUserTasks", mock.Anything, "t1")
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		tasks := new(mockTaskService)
		sub := NewReassignSubscriber(nil, tasks, "", nil)

		err := sub.handleMessage(context.Background(), []byte("{not json"))
		assert.Error(t, err)
		tasks.AssertNotCalled(t, "ReassignUserTasks")
	})

	t.Run("rejects payloads without a task ID", func(t *testing.T) {
		tasks := new(mockTaskService)
		sub := NewReassignSubscriber(nil, tasks, "", nil)

		err := sub.handleMessage(context.Background(), []byte(`{"task":{},"date":"2024-01-01T00:00:00Z"}`))
		assert.Error(t, err)
		tasks.AssertNotCalled(t, "ReassignUserTasks")
	})

	t.Run("surfaces service failures", func(t *testing.T) {
		tasks := new(mockTaskService)
		sub := NewReassignSubscriber(nil, tasks, "", nil)

		task, err := domain.NewTask("t1", "check vitals", "morning round")
		require.NoError(t, err)
		payload, err := json.Marshal(events.TaskCreated{Task: task, At: time.Now().UTC()})
		require.NoError(t, err)

		tasks.On("ReassignUserTasks", mock.Anything, "t1").
			Return(0, errors.New("store down"))

		assert.Error(t, sub.handleMessage(context.Background(), payload))
	})
}
