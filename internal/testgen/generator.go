// Package testgen turns a source file into candidate unit test source by
// asking a text generation backend.
package testgen

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/prtestgen/internal/ai"
	"github.com/prtestgen/internal/language"
	"github.com/prtestgen/internal/llm"
	"github.com/prtestgen/internal/prompts"
)

// Generator produces unit test code for source files
type Generator struct {
	model ai.TextGenerator
}

// NewGenerator creates a Generator on top of a text generation backend
func NewGenerator(model ai.TextGenerator) *Generator {
	return &Generator{model: model}
}

// Generate returns trimmed unit test source for sourceText. The first fenced
// code block of the response is used, or the whole response when it has none.
// Backend failures are returned; there is no retry.
func (g *Generator) Generate(ctx context.Context, sourceText string, lang language.Language) (string, error) {
	log.Info().Str("language", string(lang)).Msg("Generating unit tests")

	p, err := prompts.BuildUnitTestPrompts(string(lang), sourceText)
	if err != nil {
		return "", fmt.Errorf("failed to build prompts: %w", err)
	}

	response, err := g.model.GenerateText(ctx, p.System, p.User)
	if err != nil {
		log.Error().Err(err).Str("language", string(lang)).Msg("Generation call failed")
		return "", fmt.Errorf("generation call failed: %w", err)
	}

	log.Debug().Int("response_length", len(response)).Msg("Received generation response")

	return llm.ExtractCodeBlock(response), nil
}
