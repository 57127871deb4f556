package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	// A missing file yields pure defaults.
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, defaultChains, cfg.Chains)
	assert.Equal(t, DefaultDebounceDelay, cfg.DebounceDelay)
	assert.Equal(t, DefaultMaxInterleaved, cfg.MaxInterleaved)
	assert.False(t, cfg.DebugLogging)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
api_base_url: "http://localhost:9999"
chains:
  - solana
debounce_delay: 500
debug_logging: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.APIBaseURL)
	assert.Equal(t, []string{"solana"}, cfg.Chains)
	assert.Equal(t, 500, cfg.DebounceDelay)
	assert.True(t, cfg.DebugLogging)
	// Unset fields keep defaults.
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
}

func TestLoadConfigRejectsBadBaseURL(t *testing.T) {
	path := writeConfig(t, `api_base_url: "ftp://nope"`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadNumerics(t *testing.T) {
	cases := map[string]string{
		"zero debounce":     `debounce_delay: 0`,
		"negative timeout":  `request_timeout: -1`,
		"zero interleave":   `max_interleaved: 0`,
		"zero refresh":      `refresh_interval: 0`,
		"zero concurrency":  `max_concurrent: 0`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigRejectsEmptyChains(t *testing.T) {
	path := writeConfig(t, `chains: []`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DEXWATCH_API_BASE_URL", "http://env-wins:8080")
	t.Setenv("DEXWATCH_CHAINS", "base, bsc ,")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://env-wins:8080", cfg.APIBaseURL)
	assert.Equal(t, []string{"base", "bsc"}, cfg.Chains)
}
