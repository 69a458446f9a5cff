package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SHOPLIST_PRIMARY__ENV",
		"SHOPLIST_DATABASE__URL",
		"SHOPLIST_DATABASE__MAX_CONNS",
		"SHOPLIST_DATABASE__MAX_CONN_LIFETIME",
		"SHOPLIST_OBSERVABILITY__LOGGING__LEVEL",
		"SHOPLIST_OBSERVABILITY__LOGGING__FORMAT",
		LegacyDatabaseURLEnv,
		"DB_URL_REPLICA",
	} {
		// Setenv registers the restore; Unsetenv makes the key absent for the test.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigFromPrefixedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHOPLIST_PRIMARY__ENV", "production")
	t.Setenv("SHOPLIST_DATABASE__URL", "postgres://app@localhost:5432/shop")
	t.Setenv("SHOPLIST_DATABASE__MAX_CONNS", "4")
	t.Setenv("SHOPLIST_DATABASE__MAX_CONN_LIFETIME", "5m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.Equal(t, "postgres://app@localhost:5432/shop", cfg.Database.URL)
	assert.EqualValues(t, 4, cfg.Database.MaxConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, cfg.Database.MaxConnIdleTime)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfigFallsBackToLegacyURL(t *testing.T) {
	clearEnv(t)
	t.Setenv(LegacyDatabaseURLEnv, "postgres://legacy@localhost/shop")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://legacy@localhost/shop", cfg.Database.URL)
	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "console", cfg.Observability.Logging.Format)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
}

func TestLoadConfigIgnoresOtherLegacyPrefixedVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL_REPLICA", "postgres://replica@localhost/shop")

	_, err := LoadConfig()
	require.Error(t, err, "only DB_URL itself fills database.url")
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfigPrefersPrefixedURL(t *testing.T) {
	clearEnv(t)
	t.Setenv(LegacyDatabaseURLEnv, "postgres://legacy@localhost/shop")
	t.Setenv("SHOPLIST_DATABASE__URL", "postgres://new@localhost/shop")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://new@localhost/shop", cfg.Database.URL)
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfigPartialObservabilityBlock(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHOPLIST_DATABASE__URL", "postgres://app@localhost/shop")
	t.Setenv("SHOPLIST_OBSERVABILITY__LOGGING__FORMAT", "console")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.Observability.Logging.Format)
	// development defaults to debug when no level is given
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
}

func TestLoadConfigRejectsUnknownLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHOPLIST_DATABASE__URL", "postgres://app@localhost/shop")
	t.Setenv("SHOPLIST_OBSERVABILITY__LOGGING__LEVEL", "verbose")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestObservabilityValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *ObservabilityConfig) {}},
		{
			name:    "missing service name",
			mutate:  func(c *ObservabilityConfig) { c.ServiceName = "" },
			wantErr: "service_name is required",
		},
		{
			name:    "bad format",
			mutate:  func(c *ObservabilityConfig) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
		{
			name:    "negative threshold",
			mutate:  func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second },
			wantErr: "slow_query_threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetLogLevelByEnvironment(t *testing.T) {
	c := &ObservabilityConfig{Environment: "production"}
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "local"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "warn"
	assert.Equal(t, "warn", c.GetLogLevel())
}
