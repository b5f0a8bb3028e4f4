package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/prtestgen/internal/ai"
)

// EnvPrefix is the prefix of environment variables that override any config key
const EnvPrefix = "PRTESTGEN_"

// DefaultConfigPath is tried when no config file is given
const DefaultConfigPath = "./prtestgen.toml"

// Diff sources
const (
	SourceGitHub = "github"
	SourceGitLab = "gitlab"
	SourceStatic = "static"
)

var (
	// ErrMissingCredential is returned when the generation backend has no API key
	ErrMissingCredential = errors.New("missing generation credential")
	// ErrInvalidWorkspace is returned when the workspace is not a readable directory
	ErrInvalidWorkspace = errors.New("invalid workspace")
)

// Config represents the application configuration
type Config struct {
	General    GeneralConfig    `koanf:"general"`
	GitHub     GitHubConfig     `koanf:"github"`
	GitLab     GitLabConfig     `koanf:"gitlab"`
	AI         ai.Config        `koanf:"ai"`
	Generation GenerationConfig `koanf:"generation"`
}

type GeneralConfig struct {
	Workspace string `koanf:"workspace"`
	TestsDir  string `koanf:"tests_dir"`
	LogDir    string `koanf:"log_dir"`
	LogLevel  string `koanf:"log_level"`
	Source    string `koanf:"source"`
}

type GitHubConfig struct {
	APIURL            string  `koanf:"api_url"`
	Token             string  `koanf:"token"`
	EventPath         string  `koanf:"event_path"`
	Repository        string  `koanf:"repository"`
	PerPage           int     `koanf:"per_page"`
	RequestsPerSecond float64 `koanf:"requests_per_second"`
}

type GitLabConfig struct {
	URL             string `koanf:"url"`
	Token           string `koanf:"token"`
	ProjectID       string `koanf:"project_id"`
	MergeRequestIID string `koanf:"merge_request_iid"`
	CommitSHA       string `koanf:"commit_sha"`
}

type GenerationConfig struct {
	SecretScan bool `koanf:"secret_scan"`
	DryRun     bool `koanf:"dry_run"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"general.workspace":          ".",
		"general.tests_dir":          "tests",
		"general.log_dir":            "logs",
		"general.log_level":          "debug",
		"general.source":             SourceGitHub,
		"github.api_url":             "https://api.github.com",
		"github.per_page":            100,
		"github.requests_per_second": 5.0,
		"ai.provider":                "openai",
		"ai.model":                   "gpt-4o",
		"ai.max_tokens":              1500,
		"ai.temperature":             0.5,
		"generation.secret_scan":     false,
		"generation.dry_run":         false,
	}
}

// ciEnvKeys maps the variables CI runners export to config keys. Later
// entries win when both are set.
var ciEnvKeys = []struct {
	name string
	key  string
}{
	{"GITHUB_WORKSPACE", "general.workspace"},
	{"GITHUB_EVENT_PATH", "github.event_path"},
	{"GITHUB_REPOSITORY", "github.repository"},
	{"GITHUB_API_URL", "github.api_url"},
	{"GITHUB_TOKEN", "github.token"},
	{"PERSONAL_GITHUB_TOKEN", "github.token"},
	{"OPEN_AI_KEY", "ai.api_key"},
	{"CI_SERVER_URL", "gitlab.url"},
	{"GITLAB_TOKEN", "gitlab.token"},
	{"CI_PROJECT_ID", "gitlab.project_id"},
	{"CI_PROJECT_PATH", "gitlab.project_id"},
	{"CI_MERGE_REQUEST_IID", "gitlab.merge_request_iid"},
	{"CI_COMMIT_SHA", "gitlab.commit_sha"},
}

// ciEnv returns the config overrides taken from CI runner variables
func ciEnv() map[string]interface{} {
	out := make(map[string]interface{})
	for _, entry := range ciEnvKeys {
		if v, ok := os.LookupEnv(entry.name); ok && v != "" {
			out[entry.key] = v
		}
	}
	if v := os.Getenv("GITLAB_CI"); v != "" && v != "false" {
		out["general.source"] = SourceGitLab
	}
	return out
}

// envKey turns PRTESTGEN_SECTION_SOME_KEY into section.some_key
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// LoadConfig loads the configuration from defaults, a TOML file and the environment
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else if _, err := os.Stat(DefaultConfigPath); err == nil {
		if err := k.Load(file.Provider(DefaultConfigPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config %s: %w", DefaultConfigPath, err)
		}
	}

	if err := k.Load(confmap.Provider(ciEnv(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading CI environment: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# prtestgen configuration
# Every key can be overridden with PRTESTGEN_<SECTION>_<KEY>.

[general]
workspace = "."
tests_dir = "tests"
log_dir = "logs"
log_level = "debug"
source = "github" # github, gitlab or static

[github]
api_url = "https://api.github.com"
per_page = 100
requests_per_second = 5

[gitlab]
url = "https://gitlab.com"

[ai]
provider = "openai" # openai, gemini, claude or ollama
model = "gpt-4o"
max_tokens = 1500
temperature = 0.5

[generation]
secret_scan = false
dry_run = false
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	switch config.General.Source {
	case SourceGitHub, SourceGitLab, SourceStatic:
	default:
		return fmt.Errorf("unknown source %q, expected github, gitlab or static", config.General.Source)
	}

	if !ai.SupportsProvider(config.AI.Provider) {
		return fmt.Errorf("%w: %s", ai.ErrProviderNotFound, config.AI.Provider)
	}
	if config.AI.Provider != "ollama" && config.AI.APIKey == "" {
		return fmt.Errorf("%w: set OPEN_AI_KEY or %sAI_API_KEY", ErrMissingCredential, EnvPrefix)
	}

	if config.General.Source == SourceGitHub {
		if config.GitHub.PerPage < 1 || config.GitHub.PerPage > 100 {
			return fmt.Errorf("github per_page must be between 1 and 100, got %d", config.GitHub.PerPage)
		}
	}

	info, err := os.Stat(config.General.Workspace)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorkspace, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidWorkspace, config.General.Workspace)
	}

	return nil
}
