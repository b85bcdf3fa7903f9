package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	State     StateConfig     `mapstructure:"state"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Link      LinkConfig      `mapstructure:"link"`
	Logs      LogsConfig      `mapstructure:"logs"`
	Reminders RemindersConfig `mapstructure:"reminders"`
}

// ServerConfig points the client at the dashboard backend
type ServerConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout is a Go duration string ("30s"). Empty disables the client
	// timeout entirely.
	Timeout string `mapstructure:"timeout"`
}

// StateConfig holds the local store settings (one-time login feedback,
// saved log-browser filters)
type StateConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
	Output string `mapstructure:"output"` // stderr or file path
}

// RateLimitConfig holds client-side request pacing
type RateLimitConfig struct {
	BackendRequestsPerSecond float64 `mapstructure:"backend_requests_per_second"`
	QuoteRequestsPerSecond   float64 `mapstructure:"quote_requests_per_second"`
}

// LinkConfig holds the account-linking callback settings
type LinkConfig struct {
	CallbackPort int `mapstructure:"callback_port"`
}

// LogsConfig holds log-browser defaults
type LogsConfig struct {
	PageSize int `mapstructure:"page_size"`
	// RecentLimit is the embedded feed length on dashboard/module panels.
	RecentLimit int `mapstructure:"recent_limit"`
}

// RemindersConfig holds reminder form defaults
type RemindersConfig struct {
	DefaultTime string `mapstructure:"default_time"` // "HH:MM" for the reset form
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Load .env file if present (ignore errors if not found)
	_ = godotenv.Load()
	_ = godotenv.Load(".env.local")

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in current directory and configs folder
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		// Also check user's home directory
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".notidash"))
		}
	}

	// Environment variables
	v.SetEnvPrefix("NOTIDASH")
	v.AutomaticEnv()

	// Explicit bindings for nested keys (Viper doesn't auto-bind underscored nested keys)
	v.BindEnv("server.base_url", "NOTIDASH_SERVER_BASE_URL")
	v.BindEnv("server.timeout", "NOTIDASH_SERVER_TIMEOUT")
	v.BindEnv("state.dsn", "NOTIDASH_STATE_DSN")
	v.BindEnv("logging.level", "NOTIDASH_LOGGING_LEVEL")
	v.BindEnv("logging.format", "NOTIDASH_LOGGING_FORMAT")
	v.BindEnv("logging.output", "NOTIDASH_LOGGING_OUTPUT")
	v.BindEnv("link.callback_port", "NOTIDASH_LINK_CALLBACK_PORT")
	v.BindEnv("logs.page_size", "NOTIDASH_LOGS_PAGE_SIZE")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("server.timeout", "30s")

	// State defaults
	home, err := os.UserHomeDir()
	dsn := "./data/notidash.db"
	if err == nil {
		dsn = filepath.Join(home, ".notidash", "state.db")
	}
	v.SetDefault("state.dsn", dsn)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	// Rate limit defaults
	v.SetDefault("rate_limit.backend_requests_per_second", 20.0)
	v.SetDefault("rate_limit.quote_requests_per_second", 2.0)

	// Link defaults
	v.SetDefault("link.callback_port", 8099)

	// Logs defaults
	v.SetDefault("logs.page_size", 50)
	v.SetDefault("logs.recent_limit", 20)

	// Reminder defaults
	v.SetDefault("reminders.default_time", "09:00")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url is required")
	}
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.base_url %q is not an absolute URL", c.Server.BaseURL)
	}
	if c.Logs.PageSize <= 0 {
		return fmt.Errorf("logs.page_size must be positive")
	}
	return nil
}
