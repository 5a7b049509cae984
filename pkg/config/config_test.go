package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_PORT", "SESSION_TTL", "CATALOG_SOURCE", "CATALOG_SEED"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, CatalogSourceFile, cfg.CatalogSource)
	assert.False(t, cfg.CatalogSeed)
	assert.Equal(t, 5432, cfg.Postgres.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_SECURE", "true")
	t.Setenv("CATALOG_SOURCE", "Postgres")

	cfg := Load()

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.SessionSecure)
	assert.Equal(t, CatalogSourcePostgres, cfg.CatalogSource)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("GRPC_PORT", "not-a-port")
	t.Setenv("SESSION_TTL", "-5m")
	t.Setenv("CATALOG_SEED", "maybe")

	cfg := Load()

	assert.Equal(t, 8081, cfg.GRPCPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CatalogSeed)
}

func TestSessionSecret(t *testing.T) {
	t.Run("dev falls back to the built-in secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "")
		t.Setenv("SESSION_SECRET", "")

		cfg := Load()
		assert.NotEmpty(t, cfg.SessionSecret)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("production without a secret fails", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("SESSION_SECRET", "")

		cfg := Load()
		assert.Empty(t, cfg.SessionSecret)
		assert.Error(t, cfg.Validate())
	})

	t.Run("production with the dev secret fails", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("SESSION_SECRET", devSessionSecret)

		assert.Error(t, Load().Validate())
	})

	t.Run("production with a real secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("SESSION_SECRET", "s3cr3t-from-vault")

		cfg := Load()
		assert.Equal(t, "s3cr3t-from-vault", cfg.SessionSecret)
		assert.NoError(t, cfg.Validate())
	})
}
