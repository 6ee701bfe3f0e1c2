package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmoteca/filmoteca/internal/config"
)

func setRequiredAPIEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/filmoteca")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredAPIEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Dev)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "dev", cfg.Version)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredAPIEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEV", "false")
	t.Setenv("BCRYPT_COST", "10")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Dev)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestLoadMissingRequired(t *testing.T) {
	unsetenv(t, "DATABASE_URL")
	unsetenv(t, "AUTH_JWT_SECRET")

	_, err := config.Load()
	assert.Error(t, err)
}

// unsetenv removes a variable for the duration of the test. t.Setenv first so
// the original value is restored on cleanup.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadGatewayDefaults(t *testing.T) {
	t.Setenv("API_URL", "http://localhost:3000")
	t.Setenv("API_KEY_TOKEN", "key-token")

	cfg, err := config.LoadGateway()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "/auth/provider/callback", cfg.CallbackURL)
	assert.Empty(t, cfg.TwitterConsumerKey)
}

func TestLoadGatewayMissingRequired(t *testing.T) {
	unsetenv(t, "API_URL")
	unsetenv(t, "API_KEY_TOKEN")

	_, err := config.LoadGateway()
	assert.Error(t, err)
}
