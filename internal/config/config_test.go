package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "FLASK_ENV", "DEBUG", "HOST", "PORT", "DATABASE_URL", "MONGO_URI",
		"DB_NAME", "SECRET_KEY", "COOKIE_SECURE", "API_KEY", "LLM_BASE_URL", "LLM_MODEL",
		"CORS_ORIGINS", "REDIS_URL", "NATS_URL", "LOG_LEVEL", "SESSION_TTL",
		"CHAT_TIMEOUT", "LISTING_CACHE_TTL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "rental.db", cfg.DSN())
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.ChatTimeout)
	assert.Equal(t, 30*time.Second, cfg.ListingCacheTTL)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoad_FlaskStyleEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FLASK_ENV", "development")
	t.Setenv("MONGO_URI", "postgres://u:p@db:5432/rental")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres://u:p@db:5432/rental", cfg.DSN())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL", "forever")

	_, err := Load()
	assert.ErrorContains(t, err, "SESSION_TTL")
}

func TestLoad_ProdRequiresRealSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("COOKIE_SECURE", "true")

	_, err := Load()
	assert.ErrorContains(t, err, "SECRET_KEY")

	t.Setenv("SECRET_KEY", "short")
	_, err = Load()
	assert.ErrorContains(t, err, "at least")

	t.Setenv("SECRET_KEY", "a-much-longer-production-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.AppEnv)
}
