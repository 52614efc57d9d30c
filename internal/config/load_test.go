package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-chars-long"

// setRequiredEnv sets the two settings without defaults. Tests using t.Setenv
// cannot run in parallel.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TASKROOM_DATABASE_URL", "postgres://localhost:5432/taskroom_test")
	t.Setenv("TASKROOM_AUTH_JWT_SECRET", testSecret)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 15, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 7*24*60, cfg.Auth.RefreshTokenLifetimeMinutes)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
	assert.False(t, cfg.Server.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TASKROOM_SERVER_PORT", "9090")
	t.Setenv("TASKROOM_SERVER_ENVIRONMENT", "production")
	t.Setenv("TASKROOM_AUTH_TOKEN_LIFETIME_MINUTES", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, 30, cfg.Auth.TokenLifetimeMinutes)
	assert.True(t, cfg.Server.IsProduction())
}

func TestLoad_RejectsMissingSecrets(t *testing.T) {
	t.Setenv("TASKROOM_DATABASE_URL", "postgres://localhost:5432/taskroom_test")
	t.Setenv("TASKROOM_AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoad_RejectsShortJWTSecret(t *testing.T) {
	t.Setenv("TASKROOM_DATABASE_URL", "postgres://localhost:5432/taskroom_test")
	t.Setenv("TASKROOM_AUTH_JWT_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsUnknownEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TASKROOM_SERVER_ENVIRONMENT", "staging")

	_, err := Load()
	require.Error(t, err)
}
