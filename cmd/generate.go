package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/prtestgen/internal/ai"
	"github.com/prtestgen/internal/config"
	"github.com/prtestgen/internal/locator"
	"github.com/prtestgen/internal/logging"
	"github.com/prtestgen/internal/pipeline"
	"github.com/prtestgen/internal/providers"
	"github.com/prtestgen/internal/providers/github"
	"github.com/prtestgen/internal/providers/gitlab"
	"github.com/prtestgen/internal/secrets"
	"github.com/prtestgen/internal/testgen"
)

// GenerateCommand returns the generate command
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate unit tests for the files changed by a pull request",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Report the tests that would be generated without calling the model",
			},
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Override the changed-file source (github, gitlab, static)",
			},
			&cli.StringFlag{
				Name:    "ai",
				Aliases: []string{"a"},
				Usage:   "Override the AI provider to use",
			},
			&cli.StringFlag{
				Name:    "workspace",
				Aliases: []string{"w"},
				Usage:   "Repository checkout to process",
			},
			&cli.StringSliceFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Workspace-relative `FILE` to process instead of a pull request diff (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "secret-scan",
				Usage: "Skip files in which credentials are detected",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from `FILE` before reading configuration",
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	if envFile := c.String("env-file"); envFile != "" {
		if err := LoadEnvFile(envFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	files := applyGenerateFlags(c, cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	workspace, err := filepath.Abs(cfg.General.Workspace)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidWorkspace, err)
	}

	logDir := cfg.General.LogDir
	if !filepath.IsAbs(logDir) {
		logDir = filepath.Join(workspace, logDir)
	}
	runLogger, err := logging.Setup(logging.Options{Dir: logDir, Level: cfg.General.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer runLogger.Close()

	log.Info().
		Str("workspace", workspace).
		Str("source", cfg.General.Source).
		Str("ai", cfg.AI.Provider).
		Bool("dry_run", cfg.Generation.DryRun).
		Msg("Starting unit test generation")

	metadata, diff, err := createProviders(cfg, files)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	ctx := c.Context

	model, err := ai.NewTextGenerator(ctx, cfg.AI)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}

	var opts []pipeline.Option
	if cfg.Generation.SecretScan {
		scanner, err := secrets.NewScanner()
		if err != nil {
			return fmt.Errorf("failed to create secret scanner: %w", err)
		}
		opts = append(opts, pipeline.WithSecretScanner(scanner))
	}

	service := pipeline.NewService(
		locator.New(metadata, diff),
		testgen.NewGenerator(model),
		pipeline.Config{
			TestsDir: cfg.General.TestsDir,
			DryRun:   cfg.Generation.DryRun,
		},
		opts...,
	)

	summary, err := service.Run(ctx, workspace)
	if err != nil {
		log.Error().Err(err).Msg("Test generation aborted")
		return err
	}

	printSummary(summary)
	return nil
}

// applyGenerateFlags folds command flags into cfg and returns the static file list
func applyGenerateFlags(c *cli.Context, cfg *config.Config) []string {
	if c.IsSet("dry-run") {
		cfg.Generation.DryRun = c.Bool("dry-run")
	}
	if c.IsSet("secret-scan") {
		cfg.Generation.SecretScan = c.Bool("secret-scan")
	}
	if workspace := c.String("workspace"); workspace != "" {
		cfg.General.Workspace = workspace
	}
	if override := c.String("ai"); override != "" {
		cfg.AI.Provider = override
	}

	files := c.StringSlice("file")
	if override := c.String("source"); override != "" {
		cfg.General.Source = override
	} else if len(files) > 0 {
		cfg.General.Source = config.SourceStatic
	}
	return files
}

func createProviders(cfg *config.Config, files []string) (providers.MetadataProvider, providers.DiffProvider, error) {
	switch cfg.General.Source {
	case config.SourceGitHub:
		metadata, diff := github.New(github.GitHubConfig{
			APIURL:            cfg.GitHub.APIURL,
			Token:             cfg.GitHub.Token,
			EventPath:         cfg.GitHub.EventPath,
			Repository:        cfg.GitHub.Repository,
			PerPage:           cfg.GitHub.PerPage,
			RequestsPerSecond: cfg.GitHub.RequestsPerSecond,
		})
		return metadata, diff, nil
	case config.SourceGitLab:
		metadata, diff, err := gitlab.New(gitlab.GitLabConfig{
			URL:             cfg.GitLab.URL,
			Token:           cfg.GitLab.Token,
			ProjectID:       cfg.GitLab.ProjectID,
			MergeRequestIID: cfg.GitLab.MergeRequestIID,
			CommitSHA:       cfg.GitLab.CommitSHA,
		})
		if err != nil {
			return nil, nil, err
		}
		return metadata, diff, nil
	case config.SourceStatic:
		static := providers.NewStaticProvider(files)
		return static, static, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source: %s", cfg.General.Source)
	}
}

func printSummary(summary *pipeline.RunSummary) {
	fmt.Printf("Processed %d files: %d written, %d failed\n", summary.Total, summary.Written, summary.Failed)

	reasons := make([]string, 0, len(summary.Skipped))
	for reason := range summary.Skipped {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Printf("   skipped (%s): %d\n", reason, summary.Skipped[pipeline.SkipReason(reason)])
	}
	for _, artifact := range summary.Artifacts {
		fmt.Printf("   + %s\n", artifact.TargetPath)
	}
}
