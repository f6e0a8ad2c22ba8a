package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/marketlink/internal/config"
	"github.com/jonesrussell/marketlink/internal/matcher"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "marketlink", cfg.Service.Name)
	assert.Equal(t, 8090, cfg.Service.Port)
	assert.Equal(t, matcher.DefaultMinMatchScore, cfg.Matching.MinMatchScore)
	assert.Equal(t, 3, cfg.Matching.MaxTopResults)
	assert.NotEmpty(t, cfg.Markets.BaseURL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
service:
  port: 9999
  debug: true
matching:
  min_match_score: 0.25
  max_top_results: 10
  tokenizer:
    min_token_length: 4
markets:
  base_url: http://markets.test/v2
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Service.Port)
	assert.True(t, cfg.Service.Debug)
	assert.Equal(t, 0.25, cfg.Matching.MinMatchScore)
	assert.Equal(t, 10, cfg.Matching.MaxTopResults)
	assert.Equal(t, 4, cfg.Matching.Tokenizer.MinTokenLength)
	assert.Equal(t, "http://markets.test/v2", cfg.Markets.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MARKETLINK_PORT", "7070")
	t.Setenv("MARKETS_BASE_URL", "http://override.test")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Service.Port)
	assert.Equal(t, "http://override.test", cfg.Markets.BaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestConfig_ExclusionPolicy(t *testing.T) {
	t.Run("default policy when unset", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.SetDefaults()
		assert.False(t, cfg.ExclusionPolicy().IsEmpty())
	})

	t.Run("disabled yields empty policy", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := `
matching:
  exclusions:
    disabled: true
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.True(t, cfg.ExclusionPolicy().IsEmpty())
	})

	t.Run("explicit policy wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := `
matching:
  exclusions:
    categories: [Crypto]
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		cfg, err := config.Load(path)
		require.NoError(t, err)

		policy := cfg.ExclusionPolicy()
		require.Len(t, policy.Categories, 1)
		assert.Equal(t, "Crypto", policy.Categories[0])
		assert.Empty(t, policy.TickerSubstrings)
	})
}
