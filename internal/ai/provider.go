package ai

import (
	"context"
)

// TextGenerator is a language-model completion endpoint
type TextGenerator interface {
	// GenerateText sends the system instruction and user message and returns the raw response text
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config selects and parameterises the generation backend
type Config struct {
	Provider    string  `koanf:"provider"`
	APIKey      string  `koanf:"api_key"`
	BaseURL     string  `koanf:"base_url"`
	Model       string  `koanf:"model"`
	MaxTokens   int     `koanf:"max_tokens"`
	Temperature float64 `koanf:"temperature"`
}

// Errors
var (
	ErrProviderNotFound = error(ErrorProviderNotFound("ai provider not found"))
)

// ErrorProviderNotFound is returned when an AI provider is not found
type ErrorProviderNotFound string

func (e ErrorProviderNotFound) Error() string {
	return string(e)
}
