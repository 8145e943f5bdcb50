package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.False(t, cfg.CookieSecure())
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	t.Run("unset secret fails", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("development default secret fails", func(t *testing.T) {
		t.Setenv("JWT_SECRET", devJWTSecret)
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("explicit secret passes", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "a-real-secret")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "a-real-secret", cfg.JWTSecret)
		assert.True(t, cfg.CookieSecure())
	})
}

func TestLoad_PoolBounds(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_MAX_OPEN_CONNS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 50, cfg.DBMaxOpenConns)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
}
