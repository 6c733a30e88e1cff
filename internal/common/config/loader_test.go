package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultEndpoint, cfg.Anthropic.Endpoint)
	assert.Equal(t, DefaultAPIVersion, cfg.Anthropic.APIVersion)
	assert.Equal(t, DefaultModel, cfg.Anthropic.Model)
	assert.Equal(t, 2048, cfg.Anthropic.MaxTokens)
	assert.Equal(t, 10, cfg.Anthropic.ProbeMaxTokens)
	assert.Equal(t, "Hi", cfg.Anthropic.ProbeMessage)
	assert.Equal(t, 0, cfg.Anthropic.Timeout)
	assert.Equal(t, "ai-idea-prompt-generator", cfg.Keyring.Service)
	assert.Equal(t, "anthropic_api_key", cfg.Keyring.Account)
	assert.Equal(t, "apiKey", cfg.Keyring.LegacyKeyEntry)
	assert.False(t, cfg.Idea.StrictValidation)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, validateConfig(cfg))
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
anthropic:
  model: claude-test
  max_tokens: 512
  timeout: 15000
idea:
  strict_validation: true
server:
  allowed_origins:
    - http://localhost:1420
logging:
  level: debug
  format: json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "claude-test", cfg.Anthropic.Model)
	assert.Equal(t, 512, cfg.Anthropic.MaxTokens)
	assert.Equal(t, 15*time.Second, GetDuration(cfg.Anthropic.Timeout))
	assert.True(t, cfg.Idea.StrictValidation)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, []string{"http://localhost:1420"}, cfg.Server.AllowedOrigins)
	// untouched sections keep their defaults
	assert.Equal(t, DefaultEndpoint, cfg.Anthropic.Endpoint)
	assert.Equal(t, DefaultKeyringService, cfg.Keyring.Service)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
anthropic:
  model: from-file
`)
	t.Setenv("IDEAGEN_ANTHROPIC_MODEL", "from-env")
	t.Setenv("IDEAGEN_KEYRING_ACCOUNT", "other_account")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Anthropic.Model)
	assert.Equal(t, "other_account", cfg.Keyring.Account)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("IDEA_TEST_SETTINGS_DIR", "/tmp/legacy")
	path := writeConfig(t, `
keyring:
  legacy_settings_path: ${IDEA_TEST_SETTINGS_DIR}/settings.json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/legacy/settings.json", cfg.Keyring.LegacySettingsPath)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"relative endpoint", "anthropic:\n  endpoint: /v1/messages\n"},
		{"negative max tokens", "anthropic:\n  max_tokens: -1\n"},
		{"negative timeout", "anthropic:\n  timeout: -5\n"},
		{"bad origin", "server:\n  allowed_origins: [\"tauri-localhost\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
