package store

import (
	"context"

	"github.com/careboard/careboard-api/internal/domain"
)

// UserGateway looks up users in the external user service. Users are
// read-only from this core's perspective.
type UserGateway interface {
	// FindByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id string) (domain.User, error)
}

// UserScoreGateway awards gamification points to users. Implementations may
// fail; the caller decides whether the failure is critical.
type UserScoreGateway interface {
	// AddPoints adds the given number of points to the user's score.
	AddPoints(ctx context.Context, userID string, points int) error
}
