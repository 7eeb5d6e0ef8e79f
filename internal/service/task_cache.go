package service

import (
	"context"
	"sync"

	"github.com/careboard/careboard-api/internal/domain"
)

// taskListCache memoizes the full task listing for the lifetime of a
// service instance. The loader runs at most once; every later call replays
// the first result, terminal error included.
type taskListCache struct {
	once  sync.Once
	tasks []domain.Task
	err   error
}

func (c *taskListCache) get(
	ctx context.Context,
	load func(ctx context.Context) ([]domain.Task, error),
) ([]domain.Task, error) {
	c.once.Do(func() {
		c.tasks, c.err = load(ctx)
	})
	if c.err != nil {
		return nil, c.err
	}

	// Hand out a copy so callers cannot corrupt the memoized slice.
	out := make([]domain.Task, len(c.tasks))
	copy(out, c.tasks)
	return out, nil
}
