package store

import (
	"context"

	"github.com/careboard/careboard-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Save persists the task, inserting or replacing by ID, and returns
	// the stored value.
	Save(ctx context.Context, task domain.Task) (domain.Task, error)

	// SaveAll persists the whole collection as a single bulk operation.
	SaveAll(ctx context.Context, tasks []domain.Task) error

	// FindByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	FindByID(ctx context.Context, id string) (domain.Task, error)

	// FindAll retrieves the full task collection.
	FindAll(ctx context.Context) ([]domain.Task, error)

	// FindAllOpenTasksForUser retrieves the not-yet-done tasks currently
	// assigned to the given user.
	FindAllOpenTasksForUser(ctx context.Context, userID string) ([]domain.Task, error)
}
