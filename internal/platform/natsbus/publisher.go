// Package natsbus bridges the domain event gateway onto a NATS connection.
// Events are fire-and-forget JSON messages on core NATS subjects; nothing
// here requires JetStream.
package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/careboard/careboard-api/internal/events"
)

// rawPublisher is the slice of *nats.Conn the publisher needs. Tests swap
// in a recording fake.
type rawPublisher interface {
	Publish(subj string, data []byte) error
}

// Publisher implements events.Gateway on top of a NATS connection.
type Publisher struct {
	conn   rawPublisher
	prefix string
	logger *slog.Logger
}

// Compile-time check that Publisher satisfies events.Gateway.
var _ events.Gateway = (*Publisher)(nil)

// NewPublisher creates a Publisher. The optional prefix is prepended to
// every subject, separated with a dot.
func NewPublisher(conn rawPublisher, prefix string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Publisher{
		conn:   conn,
		prefix: prefix,
		logger: logger.With(slog.String("component", "nats_publisher")),
	}
}

// Emit implements events.Gateway.
func (p *Publisher) Emit(ctx context.Context, event events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Name(), err)
	}

	subject := p.subject(event.Name())
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Name(), err)
	}

	p.logger.Debug("event published", "subject", subject, "bytes", len(data))
	return nil
}

func (p *Publisher) subject(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "." + name
}

// Connect dials the NATS server with retrying reconnect options suitable
// for a long-lived service process.
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return conn, nil
}
