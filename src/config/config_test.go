package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_PATH", "STRICT_CODE_MAPPING", "CACHE_EXPIRY", "ALLOWED_ORIGINS", "MAX_UPLOAD_SIZE_BYTES"} {
		t.Setenv(key, "")
	}
	t.Setenv("PORT", "8080")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.StrictCodeMapping)
	assert.Equal(t, int64(20*1024*1024), cfg.MaxUploadSizeBytes)
	assert.Equal(t, 15*time.Minute, cfg.CacheExpiry)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STRICT_CODE_MAPPING", "yes")
	t.Setenv("CACHE_EXPIRY", "90s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("MAX_UPLOAD_SIZE_BYTES", "1024")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("SEED_DATA_PATH", "/etc/salesfolio/seed.yaml")

	cfg := Load()
	assert.True(t, cfg.StrictCodeMapping)
	assert.Equal(t, 90*time.Second, cfg.CacheExpiry)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(1024), cfg.MaxUploadSizeBytes)
	assert.Equal(t, int64(5), cfg.RateLimitBurst)
	assert.Equal(t, "/etc/salesfolio/seed.yaml", cfg.SeedDataPath)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("STRICT_CODE_MAPPING", "perhaps")
	t.Setenv("CACHE_EXPIRY", "soon")
	t.Setenv("MAX_UPLOAD_SIZE_BYTES", "lots")

	cfg := Load()
	assert.False(t, cfg.StrictCodeMapping)
	assert.Equal(t, 15*time.Minute, cfg.CacheExpiry)
	assert.Equal(t, int64(20*1024*1024), cfg.MaxUploadSizeBytes)
}
