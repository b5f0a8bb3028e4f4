package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/prtestgen/internal/aiconnectors"
)

var supportedProviders = map[string]aiconnectors.Provider{
	"openai": aiconnectors.ProviderOpenAI,
	"gemini": aiconnectors.ProviderGemini,
	"claude": aiconnectors.ProviderClaude,
	"ollama": aiconnectors.ProviderOllama,
}

// SupportsProvider reports whether name is a known generation backend
func SupportsProvider(name string) bool {
	_, ok := supportedProviders[name]
	return ok
}

// NewTextGenerator creates the aiconnectors-backed generator described by cfg
func NewTextGenerator(ctx context.Context, cfg Config) (TextGenerator, error) {
	provider, ok := supportedProviders[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, cfg.Provider)
	}

	connector, err := aiconnectors.NewConnector(ctx, aiconnectors.ConnectorOptions{
		Provider: provider,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		ModelConfig: aiconnectors.ModelConfig{
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	log.Info().
		Str("provider", string(connector.GetProvider())).
		Str("model", connector.GetModel()).
		Msg("Generation backend ready")
	return connector, nil
}
