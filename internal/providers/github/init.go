package github

import "net/http"

// GitHubConfig contains configuration for the GitHub providers
type GitHubConfig struct {
	APIURL            string
	Token             string
	EventPath         string
	Repository        string
	PerPage           int
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// New returns the metadata and diff providers for a GitHub Actions run
func New(config GitHubConfig) (*EventMetadataProvider, *FilesClient) {
	return NewEventMetadataProvider(config.EventPath, config.Repository), NewFilesClient(config)
}
