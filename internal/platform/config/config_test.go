package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("BACKOFFICE_API_BASE_URL", "")
	t.Setenv("BACKOFFICE_HTTP_TIMEOUT_SECONDS", "")
	t.Setenv("BACKOFFICE_SESSION_BACKEND", "")
	t.Setenv("BACKOFFICE_SESSION_FILE", "")
	t.Setenv("BACKOFFICE_REDIS_URL", "")
	t.Setenv("BACKOFFICE_METRICS_ADDR", "")

	cfg := FromEnv()

	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "file", cfg.SessionBackend)
	assert.Contains(t, cfg.SessionFile, ".backoffice")
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("BACKOFFICE_API_BASE_URL", "https://api.internal:8443/api")
	t.Setenv("BACKOFFICE_HTTP_TIMEOUT_SECONDS", "30")
	t.Setenv("BACKOFFICE_SESSION_BACKEND", "redis")
	t.Setenv("BACKOFFICE_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("BACKOFFICE_METRICS_ADDR", ":9109")

	cfg := FromEnv()

	assert.Equal(t, "https://api.internal:8443/api", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "redis", cfg.SessionBackend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, ":9109", cfg.MetricsAddr)
}

func TestFromEnvIgnoresBadTimeout(t *testing.T) {
	t.Setenv("BACKOFFICE_HTTP_TIMEOUT_SECONDS", "not-a-number")
	assert.Equal(t, 15*time.Second, FromEnv().HTTPTimeout)

	t.Setenv("BACKOFFICE_HTTP_TIMEOUT_SECONDS", "-3")
	assert.Equal(t, 15*time.Second, FromEnv().HTTPTimeout)
}
