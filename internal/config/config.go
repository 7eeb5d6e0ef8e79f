package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Events   EventsConfig   `mapstructure:"events" validate:"required"`
	Score    ScoreConfig    `mapstructure:"score" validate:"required"`
	Users    UsersConfig    `mapstructure:"users" validate:"required"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
}

// ServerConfig contains all HTTP server related configuration settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// EventsConfig contains the NATS event bus settings.
type EventsConfig struct {
	URL           string `mapstructure:"url" validate:"required"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

// ScoreConfig contains the Redis score backend settings.
type ScoreConfig struct {
	RedisAddr     string `mapstructure:"redis_addr" validate:"required"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
}

// UsersConfig contains the external user service settings.
type UsersConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Timeout int    `mapstructure:"timeout" validate:"gt=0"`
}

// WeatherConfig contains the external weather provider settings.
type WeatherConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout int    `mapstructure:"timeout" validate:"gt=0"`
}

// JobsConfig contains the background job runner settings.
type JobsConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"gt=0"`
	QueueSize   int `mapstructure:"queue_size" validate:"gt=0"`
}
