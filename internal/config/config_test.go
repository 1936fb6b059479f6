package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"studymatch/backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, 72*time.Hour, cfg.TokenValidity)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("TOKEN_VALIDITY", "30m")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenValidity)
}

func TestLoadBadTokenValidityKeepsDefault(t *testing.T) {
	t.Setenv("TOKEN_VALIDITY", "three days")

	cfg := config.Load()
	assert.Equal(t, 72*time.Hour, cfg.TokenValidity)
}
