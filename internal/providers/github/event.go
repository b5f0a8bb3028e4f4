package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/prtestgen/pkg/models"
)

// ErrNoPullRequest is returned when the event payload is not a pull request event
var ErrNoPullRequest = errors.New("github: event payload has no pull_request")

// EventMetadataProvider reads the pull request identity from the Actions
// event payload (GITHUB_EVENT_PATH) and repository slug (GITHUB_REPOSITORY)
type EventMetadataProvider struct {
	EventPath  string
	Repository string
}

type pullRequestEvent struct {
	PullRequest *struct {
		Number int `json:"number"`
		Head   struct {
			SHA string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
}

// NewEventMetadataProvider creates a provider for the given payload file and repository
func NewEventMetadataProvider(eventPath, repository string) *EventMetadataProvider {
	return &EventMetadataProvider{EventPath: eventPath, Repository: repository}
}

func (p *EventMetadataProvider) PullRequest(ctx context.Context) (*models.PullRequestIdentity, error) {
	if p.EventPath == "" {
		return nil, fmt.Errorf("github: event path is not set")
	}
	if p.Repository == "" {
		return nil, fmt.Errorf("github: repository is not set")
	}

	data, err := os.ReadFile(p.EventPath)
	if err != nil {
		return nil, fmt.Errorf("github: failed to read event payload: %w", err)
	}

	var event pullRequestEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("github: failed to parse event payload: %w", err)
	}
	if event.PullRequest == nil {
		return nil, ErrNoPullRequest
	}
	if event.PullRequest.Number <= 0 {
		return nil, fmt.Errorf("github: event payload has invalid pull_request.number %d", event.PullRequest.Number)
	}
	if event.PullRequest.Head.SHA == "" {
		return nil, fmt.Errorf("github: event payload has no pull_request.head.sha")
	}

	pr := &models.PullRequestIdentity{
		Repository: p.Repository,
		Number:     event.PullRequest.Number,
		HeadSHA:    event.PullRequest.Head.SHA,
	}

	log.Info().
		Str("repository", pr.Repository).
		Int("pr_number", pr.Number).
		Str("sha", pr.HeadSHA).
		Msg("Resolved pull request details")
	return pr, nil
}
