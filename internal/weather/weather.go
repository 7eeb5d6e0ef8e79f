// Package weather defines the port for the external weather lookup and the
// fallback value adapters return when the lookup cannot be served.
package weather

import "context"

// Info is a point-in-time weather snapshot for a location. All fields are
// display strings; the core never computes on them.
type Info struct {
	City        string `json:"city"`
	State       string `json:"state"`
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"wind_speed"`
	Forecast    string `json:"forecast"`
}

// Gateway looks up weather for a location. Implementations guarantee a
// usable value: on any upstream failure they return Default rather than an
// error, so callers treat an error here as exceptional.
type Gateway interface {
	ByLocation(ctx context.Context, city, state string) (Info, error)
}

// Default returns the placeholder used when no weather data is available.
func Default(city, state string) Info {
	return Info{
		City:        city,
		State:       state,
		Temperature: "N/A",
		Condition:   "not available",
		Humidity:    "N/A",
		WindSpeed:   "N/A",
		Forecast:    "forecast not available",
	}
}
