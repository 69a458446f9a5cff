// Package config manages environment variables.
//
// It reads variables from the `.env` file,
// loads them into structured Go types (struct), and
// validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (pool tuning, observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before anything below reads env vars.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix SHOPLIST_.

	Keys are normalized (lowercased, prefix removed) and a double underscore
	marks nesting, so the names stay valid in every shell:

	  SHOPLIST_DATABASE__URL        -> database.url       -> Config.Database.URL
	  SHOPLIST_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level
*/

const (
	// EnvPrefix is the prefix every application env var carries.
	EnvPrefix = "SHOPLIST_"

	// LegacyDatabaseURLEnv is the unprefixed connection-string variable older
	// deployments set. It is used only when SHOPLIST_DATABASE__URL is unset.
	LegacyDatabaseURLEnv = "DB_URL"

	// ServiceName tags logs and traces.
	ServiceName = "shopping-list"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// DatabaseConfig holds the PostgreSQL connection string and pool tuning.
//
// URL is the only required value. The pool settings fall back to
// DefaultDatabaseConfig when left at zero.
type DatabaseConfig struct {
	URL             string        `koanf:"url" validate:"required"`
	MaxConns        int32         `koanf:"max_conns" validate:"gte=0"`
	MinConns        int32         `koanf:"min_conns" validate:"gte=0"`
	MaxConnLifetime time.Duration `koanf:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `koanf:"max_conn_idle_time"`
}

// DefaultDatabaseConfig returns the pool settings used when none are configured.
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		MaxConns:        10,
		MinConns:        0,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults, validates it and returns the result.
//
// Unlike a fail-fast loader it never exits the process; the caller decides
// what to do with the error.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Legacy DB_URL first, so the prefixed variable overrides it.
	err := k.Load(env.Provider(LegacyDatabaseURLEnv, ".", func(s string) string {
		if s != LegacyDatabaseURLEnv {
			return ""
		}
		return "database.url"
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load legacy env variables: %w", err)
	}

	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Primary.Env == "" {
		mainConfig.Primary.Env = "development"
	}

	mainConfig.Database.applyDefaults()

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
		// logging is derived from the environment by applyDefaults
		mainConfig.Observability.Logging = LoggingConfig{}
	}

	// Service name is fixed; environment always follows primary.env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env
	mainConfig.Observability.applyDefaults()

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func (d *DatabaseConfig) applyDefaults() {
	defaults := DefaultDatabaseConfig()
	if d.MaxConns == 0 {
		d.MaxConns = defaults.MaxConns
	}
	if d.MaxConnLifetime == 0 {
		d.MaxConnLifetime = defaults.MaxConnLifetime
	}
	if d.MaxConnIdleTime == 0 {
		d.MaxConnIdleTime = defaults.MaxConnIdleTime
	}
}
