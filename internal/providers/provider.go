package providers

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/prtestgen/internal/language"
	"github.com/prtestgen/pkg/models"
)

// FilterSupported keeps the records whose extension maps to a known language
func FilterSupported(records []models.ChangedFileRecord) []models.ChangedFileRecord {
	supported := make([]models.ChangedFileRecord, 0, len(records))
	for _, record := range records {
		if language.IsSupported(record.Filename) {
			supported = append(supported, record)
		}
	}
	return supported
}

// StaticProvider serves a fixed file list, for runs outside of CI
type StaticProvider struct {
	Files []string
}

// NewStaticProvider creates a provider that reports files as modified
func NewStaticProvider(files []string) *StaticProvider {
	return &StaticProvider{Files: files}
}

func (p *StaticProvider) Name() string {
	return "static"
}

// PullRequest returns a placeholder identity; a static run has no pull request.
func (p *StaticProvider) PullRequest(ctx context.Context) (*models.PullRequestIdentity, error) {
	return &models.PullRequestIdentity{Repository: "local"}, nil
}

func (p *StaticProvider) ChangedFiles(ctx context.Context, pr *models.PullRequestIdentity) ([]models.ChangedFileRecord, error) {
	records := make([]models.ChangedFileRecord, 0, len(p.Files))
	for _, f := range p.Files {
		records = append(records, models.ChangedFileRecord{
			Filename: f,
			Status:   models.StatusModified,
		})
	}

	supported := FilterSupported(records)
	log.Info().
		Int("listed", len(records)).
		Int("supported", len(supported)).
		Msg("Collected static file list")
	return supported, nil
}
