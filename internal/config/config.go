package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"
	DriverPostgres DatabaseDriver = "postgres"
	DriverMongo    DatabaseDriver = "mongo"
)

var ErrSecretKeyRequired = errors.New("AUTH_SECRET_KEY must be set")

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Audit
		Tasks
	}

	HTTP struct {
		Port    int32
		Host    string
		GinMode string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   DatabaseDriver
		URL      string // File path for sqlite, DSN for postgres, URI for mongo
		Name     string // Database name (mongo only)
		LogLevel string // gorm logger level: silent, error, warn, info
	}
	Auth struct {
		SecretKey   string
		TokenExpiry time.Duration
		BcryptCost  int

		// Credential lockout for login/unsubscribe
		MaxLoginAttempts int
		RateLimitWindow  time.Duration
		LockoutDuration  time.Duration

		// Per-client request rate on the users routes
		RequestsPerSecond float64
		RequestBurst      int
	}
	Audit struct {
		Enabled         bool
		RetentionDays   int
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Enabled         bool
		DatabasePath    string
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 5000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	// Database defaults
	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_url", DefaultDatabasePath)
	v.SetDefault("database_name", DefaultMongoDatabase)
	v.SetDefault("database_log_level", "warn")

	// Auth defaults
	v.SetDefault("auth_secret_key", "")
	v.SetDefault("auth_token_expiry", "1h")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")
	v.SetDefault("auth_requests_per_second", 5)
	v.SetDefault("auth_request_burst", 10)

	// Audit defaults
	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_database_path", DefaultTasksDatabasePath)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port:    v.GetInt32("PORT"),
			Host:    v.GetString("HOST"),
			GinMode: v.GetString("GIN_MODE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			URL:      v.GetString("DATABASE_URL"),
			Name:     v.GetString("DATABASE_NAME"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Auth: Auth{
			SecretKey:         v.GetString("AUTH_SECRET_KEY"),
			TokenExpiry:       v.GetDuration("AUTH_TOKEN_EXPIRY"),
			BcryptCost:        v.GetInt("AUTH_BCRYPT_COST"),
			MaxLoginAttempts:  v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:   v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:   v.GetDuration("AUTH_LOCKOUT_DURATION"),
			RequestsPerSecond: v.GetFloat64("AUTH_REQUESTS_PER_SECOND"),
			RequestBurst:      v.GetInt("AUTH_REQUEST_BURST"),
		},
		Audit: Audit{
			Enabled:         v.GetBool("AUDIT_ENABLED"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DatabasePath:    v.GetString("TASKS_DATABASE_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.SecretKey == "" {
		return ErrSecretKeyRequired
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMongo:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL must be set")
	}
	if c.Auth.TokenExpiry <= 0 {
		return errors.New("AUTH_TOKEN_EXPIRY must be positive")
	}
	return nil
}
