// internal/commands/config.go
package commands

import "idea-generator/internal/common/config"

type Config struct {
	Model     string
	MaxTokens int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Model:     cfg.Anthropic.Model,
		MaxTokens: cfg.Anthropic.MaxTokens,
	}
}
