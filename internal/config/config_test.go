package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// clearCIEnv blanks runner variables so tests behave the same inside CI
func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, entry := range ciEnvKeys {
		t.Setenv(entry.name, "")
	}
	t.Setenv("GITLAB_CI", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	clearCIEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, ".", cfg.General.Workspace)
	require.Equal(t, "tests", cfg.General.TestsDir)
	require.Equal(t, "logs", cfg.General.LogDir)
	require.Equal(t, SourceGitHub, cfg.General.Source)
	require.Equal(t, 100, cfg.GitHub.PerPage)
	require.Equal(t, "openai", cfg.AI.Provider)
	require.Equal(t, "gpt-4o", cfg.AI.Model)
	require.Equal(t, 1500, cfg.AI.MaxTokens)
	require.InDelta(t, 0.5, cfg.AI.Temperature, 1e-9)
	require.False(t, cfg.Generation.DryRun)
}

func TestLoadConfigPrecedence(t *testing.T) {
	clearCIEnv(t)

	path := filepath.Join(t.TempDir(), "prtestgen.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[general]
tests_dir = "generated"

[ai]
model = "gpt-4o-mini"
api_key = "from-file"
`), 0o644))

	t.Setenv("OPEN_AI_KEY", "from-ci")
	t.Setenv("GITHUB_REPOSITORY", "octo/repo")
	t.Setenv("GITHUB_TOKEN", "fallback-token")
	t.Setenv("PERSONAL_GITHUB_TOKEN", "personal-token")
	t.Setenv("PRTESTGEN_AI_MODEL", "gpt-4.1")
	t.Setenv("PRTESTGEN_GENERATION_DRY_RUN", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "generated", cfg.General.TestsDir)
	require.Equal(t, "from-ci", cfg.AI.APIKey)
	require.Equal(t, "gpt-4.1", cfg.AI.Model)
	require.Equal(t, "octo/repo", cfg.GitHub.Repository)
	require.Equal(t, "personal-token", cfg.GitHub.Token)
	require.True(t, cfg.Generation.DryRun)
}

func TestLoadConfigGitLabCI(t *testing.T) {
	clearCIEnv(t)
	t.Setenv("GITLAB_CI", "true")
	t.Setenv("CI_PROJECT_ID", "42")
	t.Setenv("CI_PROJECT_PATH", "group/project")
	t.Setenv("CI_MERGE_REQUEST_IID", "7")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, SourceGitLab, cfg.General.Source)
	require.Equal(t, "group/project", cfg.GitLab.ProjectID)
	require.Equal(t, "7", cfg.GitLab.MergeRequestIID)
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearCIEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	require.Equal(t, "ai.api_key", envKey("PRTESTGEN_AI_API_KEY"))
	require.Equal(t, "general.tests_dir", envKey("PRTESTGEN_GENERAL_TESTS_DIR"))
}

func TestInitConfig(t *testing.T) {
	clearCIEnv(t)
	path := filepath.Join(t.TempDir(), "prtestgen.toml")

	require.NoError(t, InitConfig(path))
	require.Error(t, InitConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", cfg.AI.Model)
	require.Equal(t, "https://gitlab.com", cfg.GitLab.URL)
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	clearCIEnv(t)
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	cfg.General.Workspace = t.TempDir()
	cfg.AI.APIKey = "sk-test"
	return cfg
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Validate(validConfig(t)))
	})

	t.Run("missing credential", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.AI.APIKey = ""
		require.ErrorIs(t, Validate(cfg), ErrMissingCredential)
	})

	t.Run("ollama needs no credential", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.AI.Provider = "ollama"
		cfg.AI.APIKey = ""
		require.NoError(t, Validate(cfg))
	})

	t.Run("unknown source", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.General.Source = "bitbucket"
		require.Error(t, Validate(cfg))
	})

	t.Run("per page out of range", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.GitHub.PerPage = 101
		require.Error(t, Validate(cfg))
	})

	t.Run("workspace missing", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.General.Workspace = filepath.Join(cfg.General.Workspace, "nope")
		require.ErrorIs(t, Validate(cfg), ErrInvalidWorkspace)
	})

	t.Run("workspace is a file", func(t *testing.T) {
		cfg := validConfig(t)
		path := filepath.Join(cfg.General.Workspace, "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		cfg.General.Workspace = path
		require.ErrorIs(t, Validate(cfg), ErrInvalidWorkspace)
	})
}
