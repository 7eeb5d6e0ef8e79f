package events

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/careboard/careboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBusDispatchesByName(t *testing.T) {
	t.Parallel()
	bus := NewInMemoryBus(slog.Default())

	var created, assigned int
	bus.Subscribe(TaskCreatedName, HandlerFunc(func(ctx context.Context, e Event) error {
		created++
		return nil
	}))
	bus.Subscribe(TaskAssignedName, HandlerFunc(func(ctx context.Context, e Event) error {
		assigned++
		return nil
	}))

	event := TaskCreated{Task: domain.Task{ID: "task-1"}, At: time.Now()}
	require.NoError(t, bus.Emit(context.Background(), event))

	assert.Equal(t, 1, created)
	assert.Equal(t, 0, assigned, "handler for a different topic must not fire")
}

func TestInMemoryBusNoHandlers(t *testing.T) {
	t.Parallel()
	bus := NewInMemoryBus(slog.Default())
	assert.NoError(t, bus.Emit(context.Background(), TaskCompleted{At: time.Now()}))
}

func TestInMemoryBusReturnsFirstErrorButRunsAll(t *testing.T) {
	t.Parallel()
	bus := NewInMemoryBus(slog.Default())

	firstErr := errors.New("first handler failed")
	var secondRan bool
	bus.Subscribe(TaskCreatedName, HandlerFunc(func(ctx context.Context, e Event) error {
		return firstErr
	}))
	bus.Subscribe(TaskCreatedName, HandlerFunc(func(ctx context.Context, e Event) error {
		secondRan = true
		return errors.New("second handler failed")
	}))

	err := bus.Emit(context.Background(), TaskCreated{At: time.Now()})
	assert.Equal(t, firstErr, err)
	assert.True(t, secondRan, "all handlers must run even when one fails")
}

func TestEventNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "todoTasks.task.created", TaskCreated{}.Name())
	assert.Equal(t, "todoTasks.task.assigned", TaskAssigned{}.Name())
	assert.Equal(t, "todoTasks.task.completed", TaskCompleted{}.Name())
	assert.Equal(t, "PATIENT_CREATED", PatientCreated{}.Name())
}
