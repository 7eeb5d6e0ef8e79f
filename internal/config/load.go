package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// CAREBOARD_ prefix with underscores for nesting (CAREBOARD_SERVER_PORT)
// and take precedence over file values. Returns a populated Config or an
// error when loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CAREBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10)

	// Required keys with no sensible default still need to be known to
	// viper for AutomaticEnv to bind them; validation rejects the empty
	// values when nothing is provided.
	v.SetDefault("database.url", "")
	v.SetDefault("users.base_url", "")
	v.SetDefault("score.redis_password", "")

	v.SetDefault("events.url", "nats://localhost:4222")
	v.SetDefault("events.subject_prefix", "")

	v.SetDefault("score.redis_addr", "localhost:6379")
	v.SetDefault("score.redis_db", 0)

	v.SetDefault("users.timeout", 5)

	v.SetDefault("weather.base_url", "https://api.weather.gov")
	v.SetDefault("weather.timeout", 10)

	v.SetDefault("jobs.worker_count", 4)
	v.SetDefault("jobs.queue_size", 64)
}
