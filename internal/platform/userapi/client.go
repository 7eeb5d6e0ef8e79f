// Package userapi is the HTTP client for the external user service. Users
// are owned by that service; this API only reads them.
package userapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/careboard/careboard-api/internal/domain"
	"github.com/careboard/careboard-api/internal/store"
)

// Client implements store.UserGateway over the user service REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Compile-time check that Client satisfies store.UserGateway.
var _ store.UserGateway = (*Client)(nil)

// userResponse is the wire shape of a user record.
type userResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

// NewClient creates a Client for the user service at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "user_client")),
	}
}

// FindByID implements store.UserGateway.
// Returns store.ErrUserNotFound when the service answers 404.
func (c *Client) FindByID(ctx context.Context, id string) (domain.User, error) {
	endpoint := fmt.Sprintf("%s/api/users/%s", c.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to build user request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to call user service: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound:
		return domain.User{}, store.ErrUserNotFound
	default:
		c.logger.Warn("unexpected user service status",
			"status", resp.StatusCode,
			"user_id", id)
		return domain.User{}, fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.User{}, fmt.Errorf("failed to decode user response: %w", err)
	}

	return domain.User{
		ID:       body.ID,
		Name:     body.Name,
		LastName: body.LastName,
	}, nil
}
