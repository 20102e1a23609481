package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8010", cfg.Port)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Redis.Timeout)
	assert.False(t, cfg.NeedsRedis())
	assert.False(t, cfg.NeedsS3())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("PG_PORT", "6543")
	t.Setenv("S3_ENABLED", "true")
	t.Setenv("FILES_RETENTION", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, 6543, cfg.Postgres.Port)
	assert.Equal(t, time.Hour, cfg.Files.Retention)
	assert.True(t, cfg.NeedsRedis())
	assert.True(t, cfg.NeedsS3())
}

func TestLoad_ReportsAllInvalidValues(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "floppy")
	t.Setenv("PG_PORT", "five")
	t.Setenv("S3_USE_SSL", "maybe")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_BACKEND")
	assert.Contains(t, err.Error(), "PG_PORT")
	assert.Contains(t, err.Error(), "S3_USE_SSL")
}

func TestNeedsRedis_ExportTracking(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.True(t, cfg.NeedsRedis())
}
