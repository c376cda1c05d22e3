package ai

import (
	"context"
	"fmt"

	"wanderplan/internal/config"
)

// NewProvider constructs the provider selected in cfg.
func NewProvider(ctx context.Context, cfg config.AIConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg.GeminiKey, Options{
			Model:       cfg.GeminiModel,
			Temperature: float32(cfg.Temperature),
			JSONOnly:    true,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAIKey, "", Options{
			Model:       cfg.OpenAIModel,
			Temperature: float32(cfg.Temperature),
			JSONOnly:    true,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
