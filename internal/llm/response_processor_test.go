package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractCodeFencedWithLanguageTag(t *testing.T) {
	raw := "Here are your tests:\n```python\nimport unittest\n\nclass T(unittest.TestCase):\n    pass\n```\nHope this helps."

	res := ExtractCode(raw)
	require.True(t, res.Fenced)
	require.Equal(t, 1, res.Blocks)
	require.Equal(t, "import unittest\n\nclass T(unittest.TestCase):\n    pass", res.Code)
}

func TestExtractCodeFencedWithoutTag(t *testing.T) {
	require.Equal(t, "X", ExtractCodeBlock("```\n   X   \n```"))
}

func TestExtractCodeTextTag(t *testing.T) {
	require.Equal(t, "func TestA(t *testing.T) {}", ExtractCodeBlock("```text\n\n  func TestA(t *testing.T) {}\n\n```"))
}

func TestExtractCodeFirstBlockOnly(t *testing.T) {
	raw := "```go\nfirst\n```\nand also\n```go\nsecond\n```"

	res := ExtractCode(raw)
	require.Equal(t, "first", res.Code)
	require.Equal(t, 2, res.Blocks)
}

func TestExtractCodeNoFences(t *testing.T) {
	res := ExtractCode("\n\n  def test_function(): pass  \n")
	require.False(t, res.Fenced)
	require.Equal(t, "def test_function(): pass", res.Code)
}

func TestExtractCodeUnterminatedFence(t *testing.T) {
	// An opening fence without a closing one is not a block.
	raw := "```python\nimport pytest\n"
	require.Equal(t, "```python\nimport pytest", ExtractCodeBlock(raw))
}

func TestExtractCodeFenceWithoutNewline(t *testing.T) {
	// The opening fence must end its line; inline ``` pairs are not blocks.
	require.Equal(t, "use ```x``` inline", ExtractCodeBlock("use ```x``` inline"))
}

func TestExtractCodeEmpty(t *testing.T) {
	require.Equal(t, "", ExtractCodeBlock("   "))
}

func TestTruncateForLog(t *testing.T) {
	require.Equal(t, "abc", truncateForLog("abc", 5))
	require.Equal(t, "ab...", truncateForLog("abcdef", 2))
}
