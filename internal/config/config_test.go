package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 3, cfg.RetryMaxAttempts)
	assert.Equal(t, "gpt-4o-mini", cfg.AIModel)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WIZARD_LISTEN_ADDR", ":9999")
	t.Setenv("WIZARD_AI_API_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "secret", cfg.AIAPIKey)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Config{
		ListenAddr:       ":7070",
		DBPath:           "test.db",
		UploadsDir:       "up",
		PageSize:         25,
		AIModel:          "test-model",
		AIBaseURL:        "http://localhost:9",
		HTTPTimeoutSec:   5,
		RetryMaxAttempts: 1,
		RetryBaseDelayMs: 10,
		RetryMaxDelayMs:  20,
	}
	require.NoError(t, Save(want, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want.ListenAddr, got.ListenAddr)
	assert.Equal(t, want.PageSize, got.PageSize)
	assert.Equal(t, want.AIModel, got.AIModel)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	_ = os.Unsetenv("WIZARD_LISTEN_ADDR")
}
