package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Tracing.Enabled)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, 30, cfg.RateLimit.WritesPerMinute)
	assert.Empty(t, cfg.CSRF.Key)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_DEMO", "false")
	t.Setenv("TIMEZONE", "America/Argentina/Buenos_Aires")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://eventos.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, []string{"http://localhost:3000", "https://eventos.example.com"}, cfg.Server.AllowedOrigins)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Argentina/Buenos_Aires", loc.String())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port out of range", "PORT", "70000"},
		{"port not a number", "PORT", "abc"},
		{"short csrf key", "CSRF_KEY", "too-short"},
		{"negative rate limit", "RATE_LIMIT_WRITES_PER_MINUTE", "-1"},
		{"unknown timezone", "TIMEZONE", "Mars/Olympus_Mons"},
		{"unknown trace exporter", "TRACING_EXPORTER", "zipkin"},
		{"sample rate above one", "TRACING_SAMPLE_RATE", "1.5"},
		{"negative sample rate", "TRACING_SAMPLE_RATE", "-0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENVIRONMENT", "test")
			t.Setenv("TRACING_ENABLED", "true")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggingConfig{Level: "warn", Format: "json"}, &buf)

	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Str("slug", "taller-de-rust").Msg("visible")
	assert.Contains(t, buf.String(), `"slug":"taller-de-rust"`)
	assert.Contains(t, buf.String(), `"message":"visible"`)
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggingConfig{Level: "loud"}, &buf)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
