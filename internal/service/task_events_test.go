package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careboard/careboard-api/internal/events"
	"github.com/careboard/careboard-api/internal/platform/memory"
)

// These tests wire the task service against the real in-memory store and
// in-process event bus instead of mocks, covering the handler path that the
// NATS subscriber takes in production.

func TestCreateTaskDispatchesOverInMemoryBus(t *testing.T) {
	t.Parallel()

	bus := events.NewInMemoryBus(slog.Default())
	store := memory.NewTaskStore()
	svc, err := NewTaskService(store, &MockUserGateway{}, &MockUserScoreGateway{}, bus, slog.Default())
	require.NoError(t, err)

	var received []events.TaskCreated
	bus.Subscribe(events.TaskCreatedName, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		ev, ok := e.(events.TaskCreated)
		require.True(t, ok)
		received = append(received, ev)
		return nil
	}))

	task, err := svc.CreateTask(context.Background(), "Check vitals", "Room 12, morning round")
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, task, received[0].Task)

	stored, err := store.FindByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, stored)
}

func TestCreateTaskFailsWhenBusHandlerFails(t *testing.T) {
	t.Parallel()

	bus := events.NewInMemoryBus(slog.Default())
	store := memory.NewTaskStore()
	svc, err := NewTaskService(store, &MockUserGateway{}, &MockUserScoreGateway{}, bus, slog.Default())
	require.NoError(t, err)

	handlerErr := errors.New("downstream projection unavailable")
	bus.Subscribe(events.TaskCreatedName, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		return handlerErr
	}))

	_, err = svc.CreateTask(context.Background(), "Check vitals", "Room 12")
	require.Error(t, err)
	assert.ErrorIs(t, err, handlerErr)

	var svcErr *TaskServiceError
	assert.ErrorAs(t, err, &svcErr)
}
