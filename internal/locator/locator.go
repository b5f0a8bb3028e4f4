// Package locator resolves the changed files of a pull request to paths in
// the checked-out working tree.
package locator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/prtestgen/internal/providers"
)

// Locator combines pull request metadata with the diff listing
type Locator struct {
	metadata providers.MetadataProvider
	diff     providers.DiffProvider
}

// New creates a Locator from its two collaborators
func New(metadata providers.MetadataProvider, diff providers.DiffProvider) *Locator {
	return &Locator{metadata: metadata, diff: diff}
}

// Locate returns the changed files that exist under repoRoot. Files listed by
// the diff but missing from the working tree are logged and dropped. Provider
// failures are returned as-is.
func (l *Locator) Locate(ctx context.Context, repoRoot string) ([]string, error) {
	pr, err := l.metadata.PullRequest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request details: %w", err)
	}

	changed, err := l.diff.ChangedFiles(ctx, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s diff: %w", l.diff.Name(), err)
	}

	if len(changed) == 0 {
		log.Info().Msg("No changed files found in the PR")
		return []string{}, nil
	}

	files := make([]string, 0, len(changed))
	for _, record := range changed {
		path := filepath.Join(repoRoot, record.Filename)
		if _, err := os.Stat(path); err != nil {
			log.Warn().
				Str("path", path).
				Str("status", string(record.Status)).
				Msg("File from PR diff not found in workspace")
			continue
		}
		files = append(files, path)
	}

	return files, nil
}
