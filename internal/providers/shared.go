package providers

import (
	"context"

	"github.com/prtestgen/pkg/models"
)

// MetadataProvider reports which pull/merge request the current run belongs to
type MetadataProvider interface {
	PullRequest(ctx context.Context) (*models.PullRequestIdentity, error)
}

// DiffProvider lists the files changed by a pull/merge request. Implementations
// return only files with a supported extension.
type DiffProvider interface {
	ChangedFiles(ctx context.Context, pr *models.PullRequestIdentity) ([]models.ChangedFileRecord, error)
	Name() string
}
