package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finbook/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 25, cfg.DatabaseMaxConns)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.SuggestionsCacheTTL)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.False(t, cfg.AuthEnabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("OUTBOX_POLL_INTERVAL", "1s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, time.Second, cfg.OutboxPollInterval)
}
