package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eventra/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")

	cfg := config.LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.SessionBackendFile, cfg.SessionBackend)
	assert.Equal(t, "password123", cfg.DemoSecret)
	assert.Equal(t, 30*time.Minute, cfg.ResetTokenExpiry)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Equal(t, 20, cfg.RateLimitMaxRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitPeriod)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_BACKEND", "REDIS")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "3")
	t.Setenv("RESET_TOKEN_EXPIRY_MIN", "5")

	cfg := config.LoadConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, config.SessionBackendRedis, cfg.SessionBackend)
	assert.Equal(t, 3, cfg.RateLimitMaxRequests)
	assert.Equal(t, 5*time.Minute, cfg.ResetTokenExpiry)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")
	t.Setenv("SESSION_BACKEND", "etcd")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "muitos")

	cfg := config.LoadConfig()

	assert.Equal(t, config.SessionBackendFile, cfg.SessionBackend)
	assert.Equal(t, 20, cfg.RateLimitMaxRequests)
}
