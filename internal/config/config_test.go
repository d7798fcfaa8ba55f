package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvPath, "GRAPHMIG_LOG_LEVEL", "GRAPHMIG_LOG_FORMAT", "GRAPHMIG_LOG_COLOR",
		"GRAPHMIG_EXTENSIONS", "GRAPHMIG_WORKERS", "GRAPHMIG_LEDGER",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRAPHMIG_LOG_LEVEL", "debug")
	t.Setenv("GRAPHMIG_EXTENSIONS", ".yaml,.defs")
	t.Setenv("GRAPHMIG_LEDGER", "/tmp/ledger.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{".yaml", ".defs"}, cfg.Input.Extensions)
	assert.Equal(t, "/tmp/ledger.db", cfg.Ledger.Path)
	assert.Equal(t, 4, cfg.Input.Workers)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "graphmig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  format: json
input:
  workers: 8
ledger:
  path: runs.db
`), 0o644))

	t.Run("explicit path", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, 8, cfg.Input.Workers)
		assert.Equal(t, "runs.db", cfg.Ledger.Path)
	})

	t.Run("path from environment", func(t *testing.T) {
		t.Setenv(EnvPath, path)
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.Input.Workers)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		t.Setenv("GRAPHMIG_WORKERS", "2")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Input.Workers)
	})
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("GRAPHMIG_WORKERS", "0")
	_, err = Load("")
	assert.ErrorContains(t, err, "input.workers")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"no extensions", func(c *Config) { c.Input.Extensions = nil }, "input.extensions"},
		{"extension without dot", func(c *Config) { c.Input.Extensions = []string{"yaml"} }, "must start with a dot"},
		{"too many workers", func(c *Config) { c.Input.Workers = 65 }, "input.workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
