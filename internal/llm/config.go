// internal/llm/config.go
package llm

import (
	"time"

	"idea-generator/internal/common/config"
)

type Config struct {
	Endpoint       string
	APIVersion     string
	ProbeModel     string
	ProbeMaxTokens int
	ProbeMessage   string
	Timeout        time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Endpoint:       cfg.Anthropic.Endpoint,
		APIVersion:     cfg.Anthropic.APIVersion,
		ProbeModel:     cfg.Anthropic.Model,
		ProbeMaxTokens: cfg.Anthropic.ProbeMaxTokens,
		ProbeMessage:   cfg.Anthropic.ProbeMessage,
		Timeout:        config.GetDuration(cfg.Anthropic.Timeout),
	}
}
