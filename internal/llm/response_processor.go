package llm

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// fencedBlockPattern matches a ``` fence with an optional info string on the
// opening line. The body match is non-greedy so only the first block is captured.
var fencedBlockPattern = regexp.MustCompile("(?s)```[^\\n]*\\n(.*?)```")

// CodeResult contains the code extracted from an LLM response
type CodeResult struct {
	Code   string `json:"code"`
	Fenced bool   `json:"fenced"` // false when the whole response was used
	Blocks int    `json:"blocks"`
}

// ExtractCode pulls the first fenced code block out of raw. When the response
// has no fences the whole response is used. The code is whitespace-trimmed.
func ExtractCode(raw string) CodeResult {
	blocks := fencedBlockPattern.FindAllStringSubmatch(raw, -1)
	if len(blocks) == 0 {
		log.Info().
			Str("preview", truncateForLog(raw, 200)).
			Msg("No code blocks found, using entire response as test code")
		return CodeResult{Code: strings.TrimSpace(raw)}
	}

	if len(blocks) > 1 {
		log.Debug().Int("blocks", len(blocks)).Msg("Response has several code blocks, using the first")
	}
	log.Info().Msg("Successfully extracted code block from response")

	return CodeResult{
		Code:   strings.TrimSpace(blocks[0][1]),
		Fenced: true,
		Blocks: len(blocks),
	}
}

// ExtractCodeBlock is ExtractCode returning only the code
func ExtractCodeBlock(raw string) string {
	return ExtractCode(raw).Code
}

// truncateForLog truncates text for logging purposes
func truncateForLog(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}
