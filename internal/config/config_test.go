package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.RedisTLS)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_ADDR", "localhost:6380")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "localhost:6380", cfg.RedisAddr)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, 4, cfg.RateLimitBurst)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_TLS", "not-a-bool")
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("RATE_LIMIT_BURST", "many")

	cfg := Load()

	assert.False(t, cfg.RedisTLS)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}
