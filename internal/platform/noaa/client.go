// Package noaa looks up weather through the NOAA/NWS public API. The API is
// a two-step dance: resolve a coordinate to a forecast grid, then fetch the
// grid's forecast. Patients carry a city, not a coordinate, so a small
// gazetteer maps known cities; anything unknown gets the fallback value.
package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/careboard/careboard-api/internal/weather"
)

// coordinates is a lat/lon pair in decimal degrees.
type coordinates struct {
	Lat float64
	Lon float64
}

// cityCoordinates maps the cities the care system operates in. Lookup is
// case-sensitive on purpose: patient records normalize city names upstream.
var cityCoordinates = map[string]coordinates{
	"New York":    {40.7128, -74.0060},
	"Los Angeles": {34.0522, -118.2437},
	"Chicago":     {41.8781, -87.6298},
	"Houston":     {29.7604, -95.3698},
	"Phoenix":     {33.4484, -112.0740},
	"Miami":       {25.7617, -80.1918},
	"Seattle":     {47.6062, -122.3321},
	"Denver":      {39.7392, -104.9903},
	"Boston":      {42.3601, -71.0589},
	"Atlanta":     {33.7490, -84.3880},
}

// pointsResponse carries the forecast URL for a coordinate.
type pointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

// forecastResponse carries the forecast periods for a grid.
type forecastResponse struct {
	Properties struct {
		Periods []struct {
			Name             string  `json:"name"`
			Temperature      float64 `json:"temperature"`
			TemperatureUnit  string  `json:"temperatureUnit"`
			WindSpeed        string  `json:"windSpeed"`
			ShortForecast    string  `json:"shortForecast"`
			DetailedForecast string  `json:"detailedForecast"`
			RelativeHumidity struct {
				Value *float64 `json:"value"`
			} `json:"relativeHumidity"`
		} `json:"periods"`
	} `json:"properties"`
}

// Client implements weather.Gateway against the NOAA API. Upstream failures
// never escape: every path degrades to weather.Default.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// Compile-time check that Client satisfies weather.Gateway.
var _ weather.Gateway = (*Client)(nil)

// NewClient creates a Client for the NOAA API at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "weather_client"))

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "noaa",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	})

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
		logger:     log,
	}
}

// ByLocation implements weather.Gateway. It never returns an error: any
// failure along the lookup chain yields weather.Default for the location.
func (c *Client) ByLocation(ctx context.Context, city, state string) (weather.Info, error) {
	coords, ok := cityCoordinates[city]
	if !ok {
		c.logger.Debug("city not in gazetteer, using fallback", "city", city)
		return weather.Default(city, state), nil
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetchForecast(ctx, coords)
	})
	if err != nil {
		c.logger.Warn("weather lookup failed, using fallback",
			"city", city,
			"error", err)
		return weather.Default(city, state), nil
	}

	info := result.(weather.Info)
	info.City = city
	info.State = state
	return info, nil
}

// fetchForecast runs the two NOAA calls for the coordinate.
func (c *Client) fetchForecast(ctx context.Context, coords coordinates) (weather.Info, error) {
	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, coords.Lat, coords.Lon)

	var points pointsResponse
	if err := c.getJSON(ctx, pointsURL, &points); err != nil {
		return weather.Info{}, fmt.Errorf("points lookup failed: %w", err)
	}
	if points.Properties.Forecast == "" {
		return weather.Info{}, fmt.Errorf("points response carries no forecast URL")
	}

	var forecast forecastResponse
	if err := c.getJSON(ctx, points.Properties.Forecast, &forecast); err != nil {
		return weather.Info{}, fmt.Errorf("forecast lookup failed: %w", err)
	}
	periods := forecast.Properties.Periods
	if len(periods) == 0 {
		return weather.Info{}, fmt.Errorf("forecast response carries no periods")
	}

	now := periods[0]
	humidity := "N/A"
	if now.RelativeHumidity.Value != nil {
		humidity = fmt.Sprintf("%.0f%%", *now.RelativeHumidity.Value)
	}

	return weather.Info{
		Temperature: fmt.Sprintf("%.0f%s", now.Temperature, now.TemperatureUnit),
		Condition:   now.ShortForecast,
		Humidity:    humidity,
		WindSpeed:   now.WindSpeed,
		Forecast:    now.DetailedForecast,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json")
	req.Header.Set("User-Agent", "careboard-api (ops@careboard.example)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
