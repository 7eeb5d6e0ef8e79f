// Package redisscore awards user points against a Redis counter. The score
// board is a plain INCRBY per user key; reads belong to the user service,
// not to this API.
package redisscore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/careboard/careboard-api/internal/store"
)

const keyPrefix = "careboard:score:"

// ScoreGateway implements store.UserScoreGateway on a Redis client.
type ScoreGateway struct {
	client *redis.Client
	logger *slog.Logger
}

// Compile-time check that ScoreGateway satisfies store.UserScoreGateway.
var _ store.UserScoreGateway = (*ScoreGateway)(nil)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewScoreGateway creates a ScoreGateway with its own Redis client.
func NewScoreGateway(opts Options, logger *slog.Logger) *ScoreGateway {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewScoreGatewayWithClient(client, logger)
}

// NewScoreGatewayWithClient creates a ScoreGateway over an existing client.
func NewScoreGatewayWithClient(client *redis.Client, logger *slog.Logger) *ScoreGateway {
	if logger == nil {
		logger = slog.Default()
	}

	return &ScoreGateway{
		client: client,
		logger: logger.With(slog.String("component", "score_gateway")),
	}
}

// AddPoints implements store.UserScoreGateway.
func (g *ScoreGateway) AddPoints(ctx context.Context, userID string, points int) error {
	key := keyPrefix + userID

	total, err := g.client.IncrBy(ctx, key, int64(points)).Result()
	if err != nil {
		return fmt.Errorf("failed to add %d points for user %s: %w", points, userID, err)
	}

	g.logger.Debug("points added", "user_id", userID, "points", points, "total", total)
	return nil
}

// Ping verifies the Redis connection, used at startup.
func (g *ScoreGateway) Ping(ctx context.Context) error {
	if err := g.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (g *ScoreGateway) Close() error {
	return g.client.Close()
}
