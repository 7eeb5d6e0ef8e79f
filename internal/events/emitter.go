package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryBus is a simple Gateway implementation that dispatches events to
// handlers registered by topic name within the same process.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewInMemoryBus creates a new instance of InMemoryBus.
func NewInMemoryBus(logger *slog.Logger) *InMemoryBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		logger:   logger.With("component", "in_memory_event_bus"),
	}
}

// Subscribe registers a handler for the given topic name.
func (b *InMemoryBus) Subscribe(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
	b.logger.Debug("registered event handler",
		"event_name", name,
		"handler_count", len(b.handlers[name]))
}

// Emit dispatches the event to every handler subscribed to its name. All
// handlers run even when one fails; the first error encountered is returned.
func (b *InMemoryBus) Emit(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Name()]))
	copy(handlers, b.handlers[event.Name()])
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug("no handlers registered for event", "event_name", event.Name())
		return nil
	}

	var firstErr error
	for i, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			b.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_name", event.Name())
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// Ensure InMemoryBus implements Gateway
var _ Gateway = (*InMemoryBus)(nil)
