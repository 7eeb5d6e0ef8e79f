package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/careboard/careboard-api/internal/events"
	"github.com/careboard/careboard-api/internal/service"
)

// ReassignSubscriber listens for task-created events and flags the open
// tasks of the event's task ID for reassignment. The trigger mirrors the
// demo wiring of the original system: creation is the signal that the
// board changed and stale assignments should be revisited.
type ReassignSubscriber struct {
	conn   *nats.Conn
	tasks  service.TaskService
	prefix string
	logger *slog.Logger
	sub    *nats.Subscription
}

// NewReassignSubscriber creates a ReassignSubscriber bound to the given
// task service. The prefix must match the publisher's.
func NewReassignSubscriber(
	conn *nats.Conn,
	tasks service.TaskService,
	prefix string,
	logger *slog.Logger,
) *ReassignSubscriber {
	if logger == nil {
		logger = slog.Default()
	}

	return &ReassignSubscriber{
		conn:   conn,
		tasks:  tasks,
		prefix: prefix,
		logger: logger.With(slog.String("component", "reassign_subscriber")),
	}
}

// Start subscribes to the task-created subject. Message handling runs on
// the NATS delivery goroutine.
func (s *ReassignSubscriber) Start(ctx context.Context) error {
	subject := events.TaskCreatedName
	if s.prefix != "" {
		subject = s.prefix + "." + subject
	}

	sub, err := s.conn.Subscribe(subject, func(msg *nats.Msg) {
		if err := s.handleMessage(ctx, msg.Data); err != nil {
			s.logger.Error("failed to handle task created event", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	s.sub = sub
	s.logger.Info("subscribed", "subject", subject)
	return nil
}

// Stop drains the subscription.
func (s *ReassignSubscriber) Stop() error {
	if s.sub == nil {
		return nil
	}
	if err := s.sub.Drain(); err != nil {
		return fmt.Errorf("failed to drain subscription: %w", err)
	}
	return nil
}

// handleMessage decodes a task-created payload and triggers reassignment
// for the created task's ID.
func (s *ReassignSubscriber) handleMessage(ctx context.Context, data []byte) error {
	var event events.TaskCreated
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("failed to decode task created event: %w", err)
	}
	if event.Task.ID == "" {
		return fmt.Errorf("task created event carries no task ID")
	}

	count, err := s.tasks.ReassignUserTasks(ctx, event.Task.ID)
	if err != nil {
		return fmt.Errorf("failed to reassign tasks: %w", err)
	}

	s.logger.Info("reassignment triggered",
		"task_id", event.Task.ID,
		"flagged", count)
	return nil
}
