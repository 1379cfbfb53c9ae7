package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Planner  PlannerConfig  `mapstructure:"planner" validate:"required"`
	Retry    RetryConfig    `mapstructure:"retry"`
	Task     TaskConfig     `mapstructure:"task"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// PlannerConfig contains settings for the external itinerary service.
type PlannerConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// RetryConfig controls the write-retry policy applied around every
// persistence write. The defaults tolerate a live database failover:
// 5 attempts with 300ms * 5^n backoff capped at 30s.
type RetryConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	MaxAttempts       int     `mapstructure:"max_attempts" validate:"gte=1"`
	InitialIntervalMs int     `mapstructure:"initial_interval_ms" validate:"gte=1"`
	Multiplier        float64 `mapstructure:"multiplier" validate:"gt=0"`
	MaxIntervalMs     int     `mapstructure:"max_interval_ms" validate:"gte=1"`
}

// TaskConfig controls the background job pipeline. QueueWarnDepth is the
// queue length above which submissions are logged at warning level, a
// signal that the single worker has fallen behind; zero disables the
// warning.
type TaskConfig struct {
	QueueWarnDepth int `mapstructure:"queue_warn_depth" validate:"gte=0"`
}
