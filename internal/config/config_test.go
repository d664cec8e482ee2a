package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/school")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "mongodb://localhost:27017/school", cfg.Database.URI)
	assert.Equal(t, 10, cfg.Database.ConnectTimeout)
	assert.False(t, cfg.Database.AllowDegradedStart)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoad_PrefixedVariablesWin(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://legacy:27017")
	t.Setenv("PORT", "4000")
	t.Setenv("COURSES_DATABASE__URI", "mongodb://primary:27017")
	t.Setenv("COURSES_SERVER__PORT", "8080")
	t.Setenv("COURSES_SERVER__CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("COURSES_DATABASE__ALLOW_DEGRADED_START", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://primary:27017", cfg.Database.URI)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowedOrigins)
	assert.True(t, cfg.Database.AllowDegradedStart)
}

func TestLoad_LegacyPort(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("PORT", "5050")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5050", cfg.Server.Port)
}

func TestLoad_MissingURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("COURSES_DATABASE__URI", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_PartialObservability(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("COURSES_OBSERVABILITY__LOGGING__LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.Equal(t, []string{"database"}, cfg.Observability.HealthChecks.Checks)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("COURSES_OBSERVABILITY__LOGGING__LEVEL", "loud")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid logging level")
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	c := &ObservabilityConfig{Environment: "development"}
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())
	assert.True(t, c.IsProduction())

	c.Logging.Level = "warn"
	assert.Equal(t, "warn", c.GetLogLevel())
}
