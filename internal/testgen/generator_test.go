package testgen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prtestgen/internal/language"
)

type recordingModel struct {
	system   string
	user     string
	response string
	err      error
	calls    int
}

func (m *recordingModel) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	m.system = systemPrompt
	m.user = userPrompt
	return m.response, m.err
}

func TestGenerateExtractsFencedBlock(t *testing.T) {
	model := &recordingModel{response: "Sure!\n```python\n\nimport unittest\n\n```\nDone."}

	code, err := NewGenerator(model).Generate(context.Background(), "def f(): pass", language.Python)
	require.NoError(t, err)
	require.Equal(t, "import unittest", code)

	require.Equal(t, 1, model.calls)
	require.Contains(t, model.system, "You are an expert Python developer")
	require.Contains(t, model.user, "def f(): pass")
}

func TestGenerateFallsBackToWholeResponse(t *testing.T) {
	model := &recordingModel{response: "  def test_function(): pass\n"}

	code, err := NewGenerator(model).Generate(context.Background(), "def function(): pass", language.Python)
	require.NoError(t, err)
	require.Equal(t, "def test_function(): pass", code)
}

func TestGenerateUsesLanguageInPrompts(t *testing.T) {
	model := &recordingModel{response: "x"}

	_, err := NewGenerator(model).Generate(context.Background(), "class A {}", language.CSharp)
	require.NoError(t, err)
	require.Contains(t, model.system, "expert C# developer")
	require.Contains(t, model.user, "following C# code")
}

func TestGeneratePropagatesBackendError(t *testing.T) {
	boom := errors.New("401 invalid api key")

	_, err := NewGenerator(&recordingModel{err: boom}).Generate(context.Background(), "x", language.Go)
	require.ErrorIs(t, err, boom)
}
