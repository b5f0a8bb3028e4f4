package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/prtestgen/internal/diff"
	"github.com/prtestgen/internal/providers"
	"github.com/prtestgen/pkg/models"
)

// DefaultURL is used when no GitLab instance URL is configured
const DefaultURL = "https://gitlab.com"

// GitLabConfig contains configuration for the GitLab providers
type GitLabConfig struct {
	URL             string `koanf:"url"`
	Token           string `koanf:"token"`
	ProjectID       string `koanf:"project_id"`
	MergeRequestIID string `koanf:"merge_request_iid"`
	CommitSHA       string `koanf:"commit_sha"`
	HTTPClient      *http.Client
}

// CIMetadataProvider builds the merge request identity from GitLab CI variables
type CIMetadataProvider struct {
	config GitLabConfig
}

// DiffClient lists merge request diffs through the GitLab API
type DiffClient struct {
	client *gitlab.Client
}

// New creates the metadata and diff providers for a GitLab pipeline.
// The client has no retry logic; failures surface to the caller.
func New(config GitLabConfig) (*CIMetadataProvider, *DiffClient, error) {
	// A nil HTTP client falls back to http.DefaultClient
	client := gitlab.NewClient(config.HTTPClient, config.Token)

	baseURL := strings.TrimSuffix(config.URL, "/")
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if err := client.SetBaseURL(fmt.Sprintf("%s/api/v4", baseURL)); err != nil {
		return nil, nil, fmt.Errorf("gitlab: failed to set API base URL: %w", err)
	}

	log.Debug().Str("url", baseURL).Msg("Initialized GitLab client")

	return &CIMetadataProvider{config: config}, &DiffClient{client: client}, nil
}

func (p *CIMetadataProvider) PullRequest(ctx context.Context) (*models.PullRequestIdentity, error) {
	if p.config.ProjectID == "" {
		return nil, fmt.Errorf("gitlab: project id is not set")
	}

	iid, err := strconv.Atoi(strings.TrimSpace(p.config.MergeRequestIID))
	if err != nil || iid <= 0 {
		return nil, fmt.Errorf("gitlab: invalid merge request iid %q", p.config.MergeRequestIID)
	}

	pr := &models.PullRequestIdentity{
		Repository: p.config.ProjectID,
		Number:     iid,
		HeadSHA:    p.config.CommitSHA,
	}

	log.Info().
		Str("project", pr.Repository).
		Int("mr_iid", pr.Number).
		Str("sha", pr.HeadSHA).
		Msg("Resolved merge request details")
	return pr, nil
}

func (c *DiffClient) Name() string {
	return "gitlab"
}

// mergeRequestChange is one entry of a merge request's changes
type mergeRequestChange struct {
	OldPath     string
	NewPath     string
	Diff        string
	NewFile     bool
	RenamedFile bool
	DeletedFile bool
}

// ChangedFiles fetches the merge request changes and keeps the supported source files
func (c *DiffClient) ChangedFiles(ctx context.Context, pr *models.PullRequestIdentity) ([]models.ChangedFileRecord, error) {
	if pr == nil || pr.Repository == "" || pr.Number <= 0 {
		return nil, fmt.Errorf("gitlab: incomplete merge request identity")
	}

	// MergeRequests.GetMergeRequestChanges targets the singular
	// merge_request route, which API v4 no longer serves.
	path := fmt.Sprintf("projects/%s/merge_requests/%d/changes", url.PathEscape(pr.Repository), pr.Number)
	req, err := c.client.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("gitlab: failed to build changes request: %w", err)
	}

	mr := new(gitlab.MergeRequest)
	if _, err := c.client.Do(req.WithContext(ctx), mr); err != nil {
		return nil, fmt.Errorf("gitlab: failed to get merge request changes: %w", err)
	}

	records := make([]models.ChangedFileRecord, 0, len(mr.Changes))
	for _, ch := range mr.Changes {
		records = append(records, convertChange(mergeRequestChange{
			OldPath:     ch.OldPath,
			NewPath:     ch.NewPath,
			Diff:        ch.Diff,
			NewFile:     ch.NewFile,
			RenamedFile: ch.RenamedFile,
			DeletedFile: ch.DeletedFile,
		}))
	}

	supported := providers.FilterSupported(records)
	log.Info().
		Str("project", pr.Repository).
		Int("mr_iid", pr.Number).
		Int("listed", len(records)).
		Int("supported", len(supported)).
		Msg("Fetched MR changes")
	return supported, nil
}

func convertChange(d mergeRequestChange) models.ChangedFileRecord {
	status := models.StatusModified
	filename := d.NewPath
	switch {
	case d.NewFile:
		status = models.StatusAdded
	case d.DeletedFile:
		status = models.StatusRemoved
		filename = d.OldPath
	case d.RenamedFile:
		status = models.StatusRenamed
	}

	additions, deletions := diff.Stat(d.Diff)
	return models.ChangedFileRecord{
		Filename:  filename,
		Status:    status,
		Additions: additions,
		Deletions: deletions,
	}
}
