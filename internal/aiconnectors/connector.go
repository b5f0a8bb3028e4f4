package aiconnectors

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider represents an AI provider type
type Provider string

const (
	// Provider types
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
	ProviderOllama Provider = "ollama"
)

// ErrEmptyResponse is returned when the model answers without any choices
var ErrEmptyResponse = errors.New("model returned no choices")

// ModelConfig contains the configuration for a specific model
type ModelConfig struct {
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Model       string  `json:"model,omitempty"`
}

// ConnectorOptions contains options for creating a connector
type ConnectorOptions struct {
	Provider    Provider    `json:"provider"`
	APIKey      string      `json:"api_key"`
	BaseURL     string      `json:"base_url,omitempty"`
	ModelConfig ModelConfig `json:"model_config,omitempty"`
}

// Connector represents a connection to an AI provider
type Connector struct {
	provider Provider
	llm      llms.Model
	options  ConnectorOptions
}

// DefaultModel returns the model used when none is configured
func DefaultModel(provider Provider) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o"
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderClaude:
		return "claude-3-5-sonnet-latest"
	case ProviderOllama:
		return "llama3"
	default:
		return ""
	}
}

// NewConnector creates a new connector for the specified provider
func NewConnector(ctx context.Context, options ConnectorOptions) (*Connector, error) {
	if options.ModelConfig.Model == "" {
		options.ModelConfig.Model = DefaultModel(options.Provider)
	}

	log.Debug().
		Str("provider", string(options.Provider)).
		Str("model", options.ModelConfig.Model).
		Float64("temperature", options.ModelConfig.Temperature).
		Int("max_tokens", options.ModelConfig.MaxTokens).
		Msg("Creating new connector")

	var model llms.Model
	var err error
	switch options.Provider {
	case ProviderOpenAI:
		model, err = createOpenAIModel(options)
	case ProviderGemini:
		model, err = createGeminiModel(ctx, options)
	case ProviderClaude:
		model, err = createAnthropicModel(options)
	case ProviderOllama:
		model, err = createOllamaModel(options)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", options.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create model for provider %s: %w", options.Provider, err)
	}

	return &Connector{
		provider: options.Provider,
		llm:      model,
		options:  options,
	}, nil
}

func createOpenAIModel(options ConnectorOptions) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithModel(options.ModelConfig.Model),
		openai.WithToken(options.APIKey),
	}
	if options.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(options.BaseURL))
	}
	return openai.New(opts...)
}

func createGeminiModel(ctx context.Context, options ConnectorOptions) (llms.Model, error) {
	opts := []googleai.Option{
		googleai.WithAPIKey(options.APIKey),
		googleai.WithDefaultModel(options.ModelConfig.Model),
	}
	if options.ModelConfig.MaxTokens > 0 {
		opts = append(opts, googleai.WithDefaultMaxTokens(options.ModelConfig.MaxTokens))
	}
	return googleai.New(ctx, opts...)
}

func createAnthropicModel(options ConnectorOptions) (llms.Model, error) {
	opts := []anthropic.Option{
		anthropic.WithToken(options.APIKey),
		anthropic.WithModel(options.ModelConfig.Model),
	}
	if options.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(options.BaseURL))
	}
	return anthropic.New(opts...)
}

func createOllamaModel(options ConnectorOptions) (llms.Model, error) {
	if options.BaseURL == "" {
		options.BaseURL = "http://localhost:11434"
	}

	// Ollama takes temperature and token limits per call, see callOptions.
	return ollama.New(
		ollama.WithServerURL(options.BaseURL),
		ollama.WithModel(options.ModelConfig.Model),
	)
}

func (c *Connector) callOptions() []llms.CallOption {
	callOptions := []llms.CallOption{
		llms.WithModel(c.options.ModelConfig.Model),
		llms.WithTemperature(c.options.ModelConfig.Temperature),
	}
	if c.options.ModelConfig.MaxTokens > 0 {
		callOptions = append(callOptions, llms.WithMaxTokens(c.options.ModelConfig.MaxTokens))
	}
	return callOptions
}

// GenerateText sends a system and a user message and returns the first
// choice's content. Errors from the provider are returned unchanged.
func (c *Connector) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	log.Debug().
		Str("provider", string(c.provider)).
		Str("model", c.options.ModelConfig.Model).
		Msg("Making API call to model")

	resp, err := c.llm.GenerateContent(ctx, messages, c.callOptions()...)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	choice := resp.Choices[0]
	log.Debug().
		Str("finish_reason", choice.StopReason).
		Int("response_length", len(choice.Content)).
		Msg("Model API response")

	return choice.Content, nil
}

// GetProvider returns the provider of this connector
func (c *Connector) GetProvider() Provider {
	return c.provider
}

// GetModel returns the model name from the config
func (c *Connector) GetModel() string {
	return c.options.ModelConfig.Model
}
