package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/prtestgen/internal/providers"
	"github.com/prtestgen/pkg/models"
)

const (
	DefaultAPIURL  = "https://api.github.com"
	DefaultPerPage = 100

	// GitHub stops listing pull request files after 3000 entries.
	maxPages = 30
)

// FilesClient lists pull request files through the GitHub REST API
type FilesClient struct {
	apiURL     string
	token      string
	perPage    int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// pullRequestFile is the subset of the pulls/{n}/files payload we use
type pullRequestFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
}

// NewFilesClient creates a client for the configured API endpoint
func NewFilesClient(config GitHubConfig) *FilesClient {
	apiURL := strings.TrimSuffix(config.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	perPage := config.PerPage
	if perPage <= 0 || perPage > DefaultPerPage {
		perPage = DefaultPerPage
	}

	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &FilesClient{
		apiURL:     apiURL,
		token:      config.Token,
		perPage:    perPage,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

func (c *FilesClient) Name() string {
	return "github"
}

// ChangedFiles fetches every page of pulls/{number}/files and keeps the
// supported source files
func (c *FilesClient) ChangedFiles(ctx context.Context, pr *models.PullRequestIdentity) ([]models.ChangedFileRecord, error) {
	if pr == nil || pr.Repository == "" || pr.Number <= 0 {
		return nil, fmt.Errorf("github: incomplete pull request identity")
	}

	var records []models.ChangedFileRecord
	for page := 1; page <= maxPages; page++ {
		files, err := c.fetchPage(ctx, pr.Repository, pr.Number, page)
		if err != nil {
			return nil, err
		}

		for _, f := range files {
			records = append(records, models.ChangedFileRecord{
				Filename:  f.Filename,
				Status:    models.FileStatus(f.Status),
				Additions: f.Additions,
				Deletions: f.Deletions,
			})
		}

		if len(files) < c.perPage {
			break
		}
	}

	supported := providers.FilterSupported(records)
	log.Info().
		Str("repository", pr.Repository).
		Int("pr_number", pr.Number).
		Int("listed", len(records)).
		Int("supported", len(supported)).
		Msg("Fetched PR diff")
	return supported, nil
}

func (c *FilesClient) fetchPage(ctx context.Context, repo string, number, page int) ([]pullRequestFile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("github: waiting for rate limiter: %w", err)
	}

	params := url.Values{}
	params.Add("per_page", strconv.Itoa(c.perPage))
	params.Add("page", strconv.Itoa(page))
	apiURL := fmt.Sprintf("%s/repos/%s/pulls/%d/files?%s", c.apiURL, repo, number, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("github: failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "prtestgen")

	log.Debug().Str("url", apiURL).Int("page", page).Msg("Requesting PR files page")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("github: PR files request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var files []pullRequestFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, fmt.Errorf("github: failed to decode PR files: %w", err)
	}
	return files, nil
}
