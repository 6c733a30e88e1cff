// internal/common/config/loader.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "IDEAGEN"

// Load reads .env, the optional configs/config.yaml (plus config.<env>.yaml)
// and IDEAGEN_* environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, DefaultServiceName))
	}

	env := os.Getenv(envPrefix + "_APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)
	return v
}

// AutomaticEnv only consults keys viper already knows about, so every leaf is
// registered up front.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"app.name", "app.version", "app.environment",
		"anthropic.endpoint", "anthropic.api_version", "anthropic.model",
		"anthropic.max_tokens", "anthropic.probe_max_tokens", "anthropic.probe_message", "anthropic.timeout",
		"keyring.service", "keyring.account", "keyring.legacy_settings_path", "keyring.legacy_key_entry",
		"idea.strict_validation",
		"server.address", "server.shutdown_timeout", "server.allowed_origins",
		"logging.level", "logging.format",
		"metrics.enabled",
	} {
		_ = v.BindEnv(key)
	}
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{".env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = DefaultServiceName
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Anthropic.Endpoint == "" {
		cfg.Anthropic.Endpoint = DefaultEndpoint
	}
	if cfg.Anthropic.APIVersion == "" {
		cfg.Anthropic.APIVersion = DefaultAPIVersion
	}
	if cfg.Anthropic.Model == "" {
		cfg.Anthropic.Model = DefaultModel
	}
	if cfg.Anthropic.MaxTokens == 0 {
		cfg.Anthropic.MaxTokens = DefaultMaxTokens
	}
	if cfg.Anthropic.ProbeMaxTokens == 0 {
		cfg.Anthropic.ProbeMaxTokens = DefaultProbeMaxTokens
	}
	if cfg.Anthropic.ProbeMessage == "" {
		cfg.Anthropic.ProbeMessage = DefaultProbeMessage
	}

	if cfg.Keyring.Service == "" {
		cfg.Keyring.Service = DefaultKeyringService
	}
	if cfg.Keyring.Account == "" {
		cfg.Keyring.Account = DefaultKeyringAccount
	}
	if cfg.Keyring.LegacyKeyEntry == "" {
		cfg.Keyring.LegacyKeyEntry = DefaultLegacyKeyEntry
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultServerAddress
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	u, err := url.Parse(cfg.Anthropic.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("anthropic.endpoint must be an absolute URL, got %q", cfg.Anthropic.Endpoint)
	}
	if cfg.Anthropic.MaxTokens < 1 {
		return fmt.Errorf("anthropic.max_tokens must be positive")
	}
	if cfg.Anthropic.ProbeMaxTokens < 1 {
		return fmt.Errorf("anthropic.probe_max_tokens must be positive")
	}
	if cfg.Anthropic.Timeout < 0 {
		return fmt.Errorf("anthropic.timeout must not be negative")
	}
	if strings.TrimSpace(cfg.Keyring.Service) == "" || strings.TrimSpace(cfg.Keyring.Account) == "" {
		return fmt.Errorf("keyring.service and keyring.account are required")
	}
	for _, origin := range cfg.Server.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("server.allowed_origins entries must be \"*\" or http(s) origins, got %q", origin)
		}
	}
	return nil
}
