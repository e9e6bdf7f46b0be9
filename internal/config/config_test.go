package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otpshare/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, int64(10), cfg.Import.MaxFileSizeMB)
	assert.Equal(t, int64(10*1024*1024), cfg.Import.MaxFileSizeBytes())
	assert.Equal(t, 30*time.Second, cfg.Import.ParseTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpiry)
	assert.False(t, cfg.S3.Enabled)
	assert.Equal(t, "backups", cfg.Backup.KeyPrefix)
	assert.Equal(t, time.Minute, cfg.Settings.CacheTTL)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OTPSHARE_IMPORT_MAX_FILE_SIZE_MB", "2")
	t.Setenv("OTPSHARE_IMPORT_PARSE_TIMEOUT", "5s")
	t.Setenv("OTPSHARE_CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("OTPSHARE_S3_ENABLED", "true")
	t.Setenv("OTPSHARE_BACKUP_KEY_PREFIX", "/nightly/")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, int64(2), cfg.Import.MaxFileSizeMB)
	assert.Equal(t, 5*time.Second, cfg.Import.ParseTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.S3.Enabled)
	assert.Equal(t, "nightly", cfg.Backup.KeyPrefix)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("OTPSHARE_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestLoad_RejectsNonPositiveImportLimits(t *testing.T) {
	t.Setenv("OTPSHARE_IMPORT_MAX_FILE_SIZE_MB", "0")

	_, err := config.Load()

	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "otp", SSLMode: "require"}

	assert.Equal(t, "postgres://u:p@db:5433/otp?sslmode=require", db.DSN())
}
