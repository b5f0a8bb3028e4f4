package aiconnectors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	messages []llms.MessageContent
	options  llms.CallOptions
	resp     *llms.ContentResponse
	err      error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.options)
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func newTestConnector(model llms.Model) *Connector {
	return &Connector{
		provider: ProviderOpenAI,
		llm:      model,
		options: ConnectorOptions{
			Provider:    ProviderOpenAI,
			ModelConfig: ModelConfig{Model: "gpt-4o", MaxTokens: 1500, Temperature: 0.5},
		},
	}
}

func TestGenerateTextSendsSystemAndUserMessages(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{
		{Content: "def test_x(): pass", StopReason: "stop"},
	}}}

	out, err := newTestConnector(model).GenerateText(context.Background(), "system text", "user text")
	require.NoError(t, err)
	require.Equal(t, "def test_x(): pass", out)

	require.Len(t, model.messages, 2)
	require.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	require.Equal(t, []llms.ContentPart{llms.TextContent{Text: "system text"}}, model.messages[0].Parts)
	require.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
	require.Equal(t, []llms.ContentPart{llms.TextContent{Text: "user text"}}, model.messages[1].Parts)

	require.Equal(t, 1500, model.options.MaxTokens)
	require.InDelta(t, 0.5, model.options.Temperature, 1e-9)
	require.Equal(t, "gpt-4o", model.options.Model)
}

func TestGenerateTextPropagatesErrors(t *testing.T) {
	boom := errors.New("429 rate limit")
	_, err := newTestConnector(&fakeModel{err: boom}).GenerateText(context.Background(), "s", "u")
	require.ErrorIs(t, err, boom)
}

func TestGenerateTextEmptyChoices(t *testing.T) {
	_, err := newTestConnector(&fakeModel{resp: &llms.ContentResponse{}}).GenerateText(context.Background(), "s", "u")
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestNewConnectorDefaultsModel(t *testing.T) {
	c, err := NewConnector(context.Background(), ConnectorOptions{Provider: ProviderOpenAI, APIKey: "sk-test"})
	require.NoError(t, err)
	require.Equal(t, ProviderOpenAI, c.GetProvider())
	require.Equal(t, "gpt-4o", c.GetModel())
}

func TestNewConnectorOllama(t *testing.T) {
	c, err := NewConnector(context.Background(), ConnectorOptions{
		Provider:    ProviderOllama,
		ModelConfig: ModelConfig{Model: "codellama"},
	})
	require.NoError(t, err)
	require.Equal(t, "codellama", c.GetModel())
}

func TestNewConnectorUnsupported(t *testing.T) {
	_, err := NewConnector(context.Background(), ConnectorOptions{Provider: "cohere-legacy"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported provider")
}
