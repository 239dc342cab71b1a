package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingJWTSecret)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("APP_PORT", "")
		t.Setenv("AUTH_TOKEN_VALIDITY_HOURS", "")
		t.Setenv("REDIS_ADDR", "")
		t.Setenv("CORS_ALLOWED_ORIGINS", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "*", cfg.App.CORSAllowedOrigins)

		assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
		assert.Equal(t, 12*time.Hour, cfg.Auth.TokenValidity())
		assert.Equal(t, "DevNice", cfg.Auth.TokenIssuer)
		assert.Empty(t, cfg.Redis.Addr)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("AUTH_TOKEN_VALIDITY_HOURS", "1")
		t.Setenv("AUTH_BCRYPT_COST", "not-a-number")
		t.Setenv("REDIS_CACHE_TTL_SECONDS", "0")
		t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
		assert.Equal(t, time.Hour, cfg.Auth.TokenValidity())
		assert.Equal(t, 12, cfg.Auth.BcryptCost)
		assert.Zero(t, cfg.Redis.CacheTTL())
		assert.False(t, cfg.Postgres.RunMigrations)
		assert.Equal(t, "https://app.example.com", cfg.App.CORSAllowedOrigins)
	})

	t.Run("InvalidRedisDB", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("REDIS_DB", "one")

		_, err := Load()
		assert.Error(t, err)
	})
}
