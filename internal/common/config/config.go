// internal/common/config/config.go
package config

import "time"

// Fixed provider and credential identifiers. Config files may override them,
// nothing mutates them at runtime.
const (
	DefaultEndpoint        = "https://api.anthropic.com/v1/messages"
	DefaultAPIVersion      = "2023-06-01"
	DefaultModel           = "claude-3-5-sonnet-20241022"
	DefaultMaxTokens       = 2048
	DefaultProbeMaxTokens  = 10
	DefaultProbeMessage    = "Hi"
	DefaultKeyringService  = "ai-idea-prompt-generator"
	DefaultKeyringAccount  = "anthropic_api_key"
	DefaultServerAddress   = "127.0.0.1:8787"
	DefaultServiceName     = "idea-generator"
	DefaultLegacyKeyEntry  = "apiKey"
	DefaultShutdownTimeout = 5000
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Keyring   KeyringConfig   `mapstructure:"keyring"`
	Idea      IdeaConfig      `mapstructure:"idea"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// AnthropicConfig describes the remote completion endpoint.
type AnthropicConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	APIVersion     string `mapstructure:"api_version"`
	Model          string `mapstructure:"model"`
	MaxTokens      int    `mapstructure:"max_tokens"`
	ProbeMaxTokens int    `mapstructure:"probe_max_tokens"`
	ProbeMessage   string `mapstructure:"probe_message"`
	Timeout        int    `mapstructure:"timeout"` // milliseconds, 0 keeps the HTTP client default
}

// KeyringConfig addresses the single stored credential.
type KeyringConfig struct {
	Service            string `mapstructure:"service"`
	Account            string `mapstructure:"account"`
	LegacySettingsPath string `mapstructure:"legacy_settings_path"`
	LegacyKeyEntry     string `mapstructure:"legacy_key_entry"`
}

type IdeaConfig struct {
	StrictValidation bool `mapstructure:"strict_validation"`
}

type ServerConfig struct {
	Address         string   `mapstructure:"address"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Default returns a fully populated configuration without reading any source.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
