// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://127.0.0.1:8000", cfg.Server.BaseURL)
	assert.Equal(t, 30, cfg.Server.StatusPollSecs)
	assert.Equal(t, "godmind-default", cfg.Chat.DefaultPersona)
	assert.True(t, cfg.Archive.Enabled)
	assert.Equal(t, "markdown", cfg.Export.Format)
}

func TestSetDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	assert.Equal(t, Default().Server.BaseURL, cfg.Server.BaseURL)
	assert.Equal(t, Default().Server.TimeoutSecs, cfg.Server.TimeoutSecs)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad url", func(c *Config) { c.Server.BaseURL = "not a url" }, "server.base_url"},
		{"timeout too low", func(c *Config) { c.Server.TimeoutSecs = 0 }, "server.timeout_secs"},
		{"timeout too high", func(c *Config) { c.Server.TimeoutSecs = 999 }, "server.timeout_secs"},
		{"negative retries", func(c *Config) { c.Server.MaxRetries = -1 }, "server.max_retries"},
		{"poll too fast", func(c *Config) { c.Server.StatusPollSecs = 1 }, "server.status_poll_secs"},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, "ui.theme"},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"bad export format", func(c *Config) { c.Export.Format = "pdf" }, "export.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var errs ValidateErrors
			require.ErrorAs(t, err, &errs)
			found := false
			for _, ve := range errs {
				if ve.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected a %s error, got: %v", tt.field, err)
		})
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	original := Default()
	original.Server.BaseURL = "http://10.0.0.5:9000"
	original.Chat.Tier = "premium"
	require.NoError(t, SaveTOML(original, path))

	loaded := Default()
	require.NoError(t, LoadTOML(loaded, path))
	assert.Equal(t, "http://10.0.0.5:9000", loaded.Server.BaseURL)
	assert.Equal(t, "premium", loaded.Chat.Tier)
}

func TestJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	original := Default()
	original.UI.CompactMode = true
	require.NoError(t, SaveJSON(original, path))

	loaded := Default()
	require.NoError(t, LoadJSON(loaded, path))
	assert.True(t, loaded.UI.CompactMode)
}

func TestLoadFromPathValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"solarized\"\n"), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.theme")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("GODBOT_SERVER_URL", "http://example.test:8080")
	t.Setenv("GODBOT_PERSONA", "sentinel-guard")
	t.Setenv("GODBOT_TIER", "premium")
	t.Setenv("GODBOT_DEBUG", "1")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://example.test:8080", cfg.Server.BaseURL)
	assert.Equal(t, "sentinel-guard", cfg.Chat.DefaultPersona)
	assert.Equal(t, "premium", cfg.Chat.Tier)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestReloadGlobalPicksUpDiskChanges(t *testing.T) {
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, EnsureConfigDir())
	path, err := ConfigPathTOML()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[chat]\ntier = \"basic\"\n"), 0600))
	assert.Equal(t, "basic", Global().Chat.Tier)

	require.NoError(t, os.WriteFile(path, []byte("[chat]\ntier = \"premium\"\n"), 0600))
	require.NoError(t, ReloadGlobal())
	assert.Equal(t, "premium", Global().Chat.Tier)
}

func TestGlobalSingleton(t *testing.T) {
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	cfg := Default()
	cfg.Chat.Tier = "test-tier"
	SetGlobal(cfg)

	assert.Equal(t, "test-tier", Global().Chat.Tier)
}
