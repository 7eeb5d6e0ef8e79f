// Package events defines the typed domain events emitted by the use cases
// and the gateway through which they leave the core. Events are immutable
// snapshots; the core never persists them.
package events

import (
	"context"
	"time"

	"github.com/careboard/careboard-api/internal/domain"
)

// Event topic names. They double as routing keys on the message bus.
const (
	TaskCreatedName    = "todoTasks.task.created"
	TaskAssignedName   = "todoTasks.task.assigned"
	TaskCompletedName  = "todoTasks.task.completed"
	PatientCreatedName = "PATIENT_CREATED"
)

// Event is a notification of a committed state change. Name is a stable
// topic string used for routing.
type Event interface {
	Name() string
}

// Gateway publishes events to whatever transport is wired in.
type Gateway interface {
	// Emit publishes the given event. Returns an error if the event cannot
	// be delivered to the transport.
	Emit(ctx context.Context, event Event) error
}

// Handler processes events dispatched by the in-memory bus.
type Handler interface {
	// Handle processes the given event within the provided context.
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// TaskCreated is emitted after a task has been persisted for the first time.
type TaskCreated struct {
	Task domain.Task `json:"task"`
	At   time.Time   `json:"date"`
}

// Name implements Event.
func (TaskCreated) Name() string { return TaskCreatedName }

// TaskAssigned is emitted after a task has been assigned to a user.
type TaskAssigned struct {
	Task domain.Task `json:"task"`
	At   time.Time   `json:"date"`
}

// Name implements Event.
func (TaskAssigned) Name() string { return TaskAssignedName }

// TaskCompleted is emitted after a task has been marked as done.
type TaskCompleted struct {
	Task domain.Task `json:"task"`
	At   time.Time   `json:"date"`
}

// Name implements Event.
func (TaskCompleted) Name() string { return TaskCompletedName }

// PatientCreated is emitted after a patient record has been created.
type PatientCreated struct {
	Patient domain.Patient `json:"patient"`
	At      time.Time      `json:"created_at"`
}

// Name implements Event.
func (PatientCreated) Name() string { return PatientCreatedName }
