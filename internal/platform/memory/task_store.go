// Package memory provides in-memory store implementations. The task
// collection is a demo-scale dataset that never outlives the process, so a
// guarded map beats dragging a table through migrations.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/careboard/careboard-api/internal/domain"
	"github.com/careboard/careboard-api/internal/store"
)

// TaskStore keeps tasks in a mutex-guarded map keyed by task ID.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

// Compile-time check that TaskStore satisfies store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]domain.Task),
	}
}

// Save implements store.TaskStore.
func (s *TaskStore) Save(ctx context.Context, task domain.Task) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
	return task, nil
}

// SaveAll implements store.TaskStore.
func (s *TaskStore) SaveAll(ctx context.Context, tasks []domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, task := range tasks {
		s.tasks[task.ID] = task
	}
	return nil
}

// FindByID implements store.TaskStore.
func (s *TaskStore) FindByID(ctx context.Context, id string) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}
	return task, nil
}

// FindAll implements store.TaskStore. Tasks come back ordered by ID so
// listings are stable across calls.
func (s *TaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindAllOpenTasksForUser implements store.TaskStore.
func (s *TaskStore) FindAllOpenTasksForUser(
	ctx context.Context,
	userID string,
) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Task
	for _, task := range s.tasks {
		if task.AssignedUserID == userID && !task.Done {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
