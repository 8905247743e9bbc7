package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "origami.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
api_key: secret
max_folds: 12
exact: true
log_level: debug
request_interval: 250ms
render:
  scale: 300
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, 12, cfg.MaxFolds)
	assert.True(t, cfg.Exact)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 250*time.Millisecond, cfg.RequestInterval)
	assert.Equal(t, 300.0, cfg.Render.Scale)

	// Untouched keys keep their defaults
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultProblemsDir, cfg.ProblemsDir)
	assert.Equal(t, 20.0, cfg.Render.Padding)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"syntax":         "max_folds: [",
		"negative folds": "max_folds: -1",
		"bad level":      "log_level: loud",
		"zero scale":     "render:\n  scale: 0",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := Default()
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	cfg.LogLevel = "WARN"
	assert.Equal(t, slog.LevelWarn, cfg.Level())
	cfg.LogLevel = "whatever"
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}
