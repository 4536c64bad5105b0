package config

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"catalog-recon/internal/catalog/model"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HOST", "PORT", "ALLOW_ORIGINS", "LOG_LEVEL", "NEAR_DUP_THRESHOLD", "FUZZY_THRESHOLD", "IMAGE_SUFFIX"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "127.0.0.1:8082", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, model.DefaultOptions(), cfg.EngineOptions())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOW_ORIGINS", "http://localhost:3000,chrome-extension://*")
	t.Setenv("NEAR_DUP_THRESHOLD", "0.9")
	t.Setenv("FUZZY_THRESHOLD", "0.75")
	t.Setenv("IMAGE_SUFFIX", "_1.png")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")
	t.Setenv("TRUST_PROXY", "true")

	cfg := Load()
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, []string{"http://localhost:3000", "chrome-extension://*"}, cfg.AllowOrigins)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.True(t, cfg.TrustProxy)

	opts := cfg.EngineOptions()
	assert.Equal(t, 0.9, opts.NearDuplicateThreshold)
	assert.Equal(t, 0.75, opts.FuzzyThreshold)
	assert.Equal(t, 0.95, opts.VariantThreshold)
	assert.Equal(t, "_1.png", opts.ImageSuffix)
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(Config{LogLevel: "warn"}, &buf)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	logger = setupLogger(Config{LogLevel: "bogus", LogFile: filepath.Join(t.TempDir(), "logs", "app.log")}, &buf)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
