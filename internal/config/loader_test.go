package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	loader := NewLoader().WithConfigFile(filepath.Join(t.TempDir(), "nonexistent.yaml"))

	// An explicit but missing config file is an error; defaults only
	// apply when discovery finds nothing.
	_, err := loader.Load()
	require.Error(t, err)

	loader = NewLoader()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(cwd) }()
	require.NoError(t, os.Chdir(t.TempDir()))

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Log.Format)
	assert.Equal(t, ":8484", cfg.Server.Addr)
	assert.Equal(t, "120s", cfg.Server.RequestTimeout)
	assert.Equal(t, "openai", cfg.Provider.Name)
	assert.Equal(t, "gpt-4o-mini", cfg.Provider.Model)
	assert.InDelta(t, 0.3, cfg.Provider.Temperature, 1e-9)
	assert.InDelta(t, 0.34, cfg.Consensus.Weights["leadership"], 1e-9)
	assert.True(t, cfg.Costs.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
log:
  level: debug
provider:
  name: gemini
  model: gemini-2.5-flash
  temperature: 0.7
consensus:
  weights:
    leadership: 0.5
    technical: 0.25
    culture: 0.25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := NewLoader().WithConfigFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "gemini", cfg.Provider.Name)
	assert.Equal(t, "gemini-2.5-flash", cfg.Provider.Model)
	assert.InDelta(t, 0.7, cfg.Provider.Temperature, 1e-9)
	assert.InDelta(t, 0.5, cfg.Consensus.Weights["leadership"], 1e-9)
	// Untouched sections keep their defaults.
	assert.Equal(t, ":8484", cfg.Server.Addr)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("QUORUMHIRE_PROVIDER_API_KEY", "secret-key")
	t.Setenv("QUORUMHIRE_LOG_LEVEL", "warn")

	cwd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(cwd) }()
	require.NoError(t, os.Chdir(t.TempDir()))

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "secret-key", cfg.Provider.APIKey)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o644))

	_, err := NewLoader().WithConfigFile(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".quorumhire.yaml")

	require.NoError(t, WriteDefault(path))

	cfg, err := NewLoader().WithConfigFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider.Name)
	assert.InDelta(t, 0.33, cfg.Consensus.Weights["technical"], 1e-9)
}
