package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.OTelEnabled)

	assert.Equal(t, StorageSQLite, cfg.Storage.Type)
	assert.Equal(t, "ketchup.db", cfg.Storage.DSN)
	assert.Equal(t, 25, cfg.Storage.MaxOpenConns)
	assert.True(t, cfg.Storage.AutoMigrate)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KETCHUP_HTTP_PORT", "9999")
	t.Setenv("KETCHUP_ENV", "prod")
	t.Setenv("KETCHUP_STORAGE_TYPE", "postgres")
	t.Setenv("KETCHUP_STORAGE_DSN", "postgres://localhost:5432/ketchup")
	t.Setenv("KETCHUP_DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("KETCHUP_OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage.Type)
	assert.Equal(t, "postgres://localhost:5432/ketchup", cfg.Storage.DSN)
	assert.Equal(t, 30*time.Minute, cfg.Storage.ConnMaxLifetime)
	assert.True(t, cfg.OTelEnabled)
}

func TestLoadRejectsUnknownEnv(t *testing.T) {
	t.Setenv("KETCHUP_ENV", "staging")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KETCHUP_ENV")
}

func TestLoadRejectsUnknownStorageType(t *testing.T) {
	t.Setenv("KETCHUP_STORAGE_TYPE", "mysql")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KETCHUP_STORAGE_TYPE")
}

func TestLoadRejectsEmptyDSN(t *testing.T) {
	t.Setenv("KETCHUP_STORAGE_DSN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KETCHUP_STORAGE_DSN")
}
