package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/careboard/careboard-api/internal/domain"
	"github.com/careboard/careboard-api/internal/events"
	"github.com/careboard/careboard-api/internal/store"
)

// CompletionPoints is the score awarded to a user for completing a task.
const CompletionPoints = 15

// Score award retry policy: four retries on an exponential backoff starting
// at half a second. Exhaustion is logged and swallowed; completing a task
// never fails because the score backend is down.
const (
	scoreRetryAttempts = 4
	scoreRetryBase     = 500 * time.Millisecond
)

// TaskDetails pairs a task with its assignee. User is domain.EmptyUser()
// when the task has no assignee or the user record cannot be resolved.
type TaskDetails struct {
	Task domain.Task
	User domain.User
}

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask creates a new task in PENDING_ASSIGNMENT status and
	// announces it on the event gateway.
	CreateTask(ctx context.Context, name, description string) (domain.Task, error)

	// AssignTask assigns the task to the user and announces the assignment.
	AssignTask(ctx context.Context, taskID, userID string) (domain.Task, error)

	// CompleteTask marks the task done, awards completion points to the
	// assignee (best effort) and announces the completion.
	CompleteTask(ctx context.Context, taskID string) (domain.Task, error)

	// ReassignUserTasks flags every open task of the user for reassignment
	// and returns how many tasks were flagged.
	ReassignUserTasks(ctx context.Context, userID string) (int, error)

	// FindAllTasks returns the full task collection. The underlying store
	// query runs at most once per service instance.
	FindAllTasks(ctx context.Context) ([]domain.Task, error)

	// FindTaskWithDetails returns the task together with its assignee.
	FindTaskWithDetails(ctx context.Context, taskID string) (TaskDetails, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks     store.TaskStore
	users     store.UserGateway
	scores    store.UserScoreGateway
	events    events.Gateway
	logger    *slog.Logger
	listCache *taskListCache

	// newScoreBackoff builds a fresh backoff per award attempt. Tests
	// shorten it; production uses the package defaults.
	newScoreBackoff func() retry.Backoff
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	tasks store.TaskStore,
	users store.UserGateway,
	scores store.UserScoreGateway,
	eventGateway events.Gateway,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil")
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil")
	}
	if scores == nil {
		return nil, domain.NewValidationError("scores", "cannot be nil")
	}
	if eventGateway == nil {
		return nil, domain.NewValidationError("eventGateway", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:     tasks,
		users:     users,
		scores:    scores,
		events:    eventGateway,
		logger:    logger.With(slog.String("component", "task_service")),
		listCache: &taskListCache{},
		newScoreBackoff: func() retry.Backoff {
			return retry.WithMaxRetries(scoreRetryAttempts, retry.NewExponential(scoreRetryBase))
		},
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	name, description string,
) (domain.Task, error) {
	task, err := domain.NewTask(uuid.New().String(), name, description)
	if err != nil {
		return domain.Task{}, err
	}

	saved, err := s.tasks.Save(ctx, task)
	if err != nil {
		return domain.Task{}, NewTaskServiceError("create", "failed to save task", err)
	}

	// Announcing the creation is part of the operation's contract: a task
	// nobody hears about never gets picked up, so emission failure fails
	// the call even though the row is already stored.
	event := events.TaskCreated{Task: saved, At: time.Now().UTC()}
	if err := s.events.Emit(ctx, event); err != nil {
		return domain.Task{}, NewTaskServiceError("create", "failed to emit task created event", err)
	}

	s.logger.Info("task created", "task_id", saved.ID)
	return saved, nil
}

// AssignTask implements TaskService.AssignTask
func (s *taskServiceImpl) AssignTask(
	ctx context.Context,
	taskID, userID string,
) (domain.Task, error) {
	var (
		task domain.Task
		user domain.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		task, err = s.tasks.FindByID(gctx, taskID)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = s.users.FindByID(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		if store.IsNotFoundError(err) {
			return domain.Task{}, err
		}
		return domain.Task{}, NewTaskServiceError("assign", "failed to load task or user", err)
	}

	assigned, err := task.AssignToUser(user)
	if err != nil {
		return domain.Task{}, err
	}

	saved, err := s.tasks.Save(ctx, assigned)
	if err != nil {
		return domain.Task{}, NewTaskServiceError("assign", "failed to save task", err)
	}

	event := events.TaskAssigned{Task: saved, At: time.Now().UTC()}
	if err := s.events.Emit(ctx, event); err != nil {
		return domain.Task{}, NewTaskServiceError("assign", "failed to emit task assigned event", err)
	}

	s.logger.Info("task assigned", "task_id", saved.ID, "user_id", user.ID)
	return saved, nil
}

// CompleteTask implements TaskService.CompleteTask
func (s *taskServiceImpl) CompleteTask(ctx context.Context, taskID string) (domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.Task{}, err
		}
		return domain.Task{}, NewTaskServiceError("complete", "failed to load task", err)
	}

	done, err := task.MarkAsDone(time.Now().UTC())
	if err != nil {
		return domain.Task{}, err
	}

	saved, err := s.tasks.Save(ctx, done)
	if err != nil {
		return domain.Task{}, NewTaskServiceError("complete", "failed to save task", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Best effort on the caller's context, not the group's: a failed
		// emission must not cancel the award mid-retry.
		s.awardCompletionPoints(ctx, saved.AssignedUserID)
		return nil
	})
	g.Go(func() error {
		event := events.TaskCompleted{Task: saved, At: time.Now().UTC()}
		if err := s.events.Emit(gctx, event); err != nil {
			return NewTaskServiceError("complete", "failed to emit task completed event", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Task{}, err
	}

	s.logger.Info("task completed", "task_id", saved.ID, "user_id", saved.AssignedUserID)
	return saved, nil
}

// awardCompletionPoints adds CompletionPoints to the user's score, retrying
// transient failures. Exhausting the retries only logs.
func (s *taskServiceImpl) awardCompletionPoints(ctx context.Context, userID string) {
	err := retry.Do(ctx, s.newScoreBackoff(), func(ctx context.Context) error {
		if err := s.scores.AddPoints(ctx, userID, CompletionPoints); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to award completion points",
			"user_id", userID,
			"points", CompletionPoints,
			"error", err)
		return
	}

	s.logger.Info("completion points awarded", "user_id", userID, "points", CompletionPoints)
}

// ReassignUserTasks implements TaskService.ReassignUserTasks
func (s *taskServiceImpl) ReassignUserTasks(ctx context.Context, userID string) (int, error) {
	open, err := s.tasks.FindAllOpenTasksForUser(ctx, userID)
	if err != nil {
		return 0, NewTaskServiceError("reassign", "failed to load open tasks", err)
	}
	if len(open) == 0 {
		return 0, nil
	}

	pending := make([]domain.Task, len(open))
	for i, task := range open {
		pending[i] = task.SetPendingToReassign()
	}

	if err := s.tasks.SaveAll(ctx, pending); err != nil {
		return 0, NewTaskServiceError("reassign", "failed to save tasks", err)
	}

	s.logger.Info("tasks flagged for reassignment", "user_id", userID, "count", len(pending))
	return len(pending), nil
}

// FindAllTasks implements TaskService.FindAllTasks
func (s *taskServiceImpl) FindAllTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.listCache.get(ctx, s.tasks.FindAll)
	if err != nil {
		return nil, NewTaskServiceError("list", "failed to load tasks", err)
	}
	return tasks, nil
}

// FindTaskWithDetails implements TaskService.FindTaskWithDetails
func (s *taskServiceImpl) FindTaskWithDetails(
	ctx context.Context,
	taskID string,
) (TaskDetails, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return TaskDetails{}, err
		}
		return TaskDetails{}, NewTaskServiceError("details", "failed to load task", err)
	}

	user := domain.EmptyUser()
	if task.AssignedUserID != "" {
		found, err := s.users.FindByID(ctx, task.AssignedUserID)
		switch {
		case err == nil:
			user = found
		case store.IsNotFoundError(err):
			// Keep the empty placeholder; a vanished assignee must not
			// hide the task itself.
			s.logger.Warn("assignee not found, returning empty user",
				"task_id", task.ID,
				"user_id", task.AssignedUserID)
		default:
			return TaskDetails{}, NewTaskServiceError("details", "failed to load assignee", err)
		}
	}

	return TaskDetails{Task: task, User: user}, nil
}
