package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ENV", "PORT", "APP_NAME", "LOG_LEVEL", "LOG_FORMAT",
		"HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT",
		"TRACKER_CAPACITY", "NEAR_DUE_WINDOW", "DEFAULT_FEEDING_INTERVAL", "SEED_DEMO",
		"METRICS_ENABLED", "SWAGGER_ENABLED",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Tracker.Capacity)
	assert.Equal(t, 5*time.Minute, cfg.Tracker.NearDueWindow)
	assert.Equal(t, 3*time.Hour, cfg.Tracker.DefaultInterval)
	assert.False(t, cfg.Tracker.SeedDemo)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout)
	assert.True(t, cfg.MetricsEnabled)
	assert.True(t, cfg.SwaggerEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("TRACKER_CAPACITY", "0")
	t.Setenv("NEAR_DUE_WINDOW", "10m")
	t.Setenv("DEFAULT_FEEDING_INTERVAL", "2h30m")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 0, cfg.Tracker.Capacity)
	assert.Equal(t, 10*time.Minute, cfg.Tracker.NearDueWindow)
	assert.Equal(t, 150*time.Minute, cfg.Tracker.DefaultInterval)
	assert.True(t, cfg.Tracker.SeedDemo)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEAR_DUE_WINDOW", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.Tracker.NearDueWindow)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: 8080}
	require.NoError(t, cfg.Validate())

	cfg.Tracker.Capacity = -1
	assert.Error(t, cfg.Validate())

	cfg = &Config{Port: 0}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Port: 8080, Tracker: TrackerConfig{NearDueWindow: -time.Second}}
	assert.Error(t, cfg.Validate())
}
