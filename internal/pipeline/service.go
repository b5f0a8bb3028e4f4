// Package pipeline drives a test generation run over the changed files of a
// pull request.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prtestgen/internal/language"
	"github.com/prtestgen/internal/secrets"
	"github.com/prtestgen/pkg/models"
)

// DefaultTestsDir is the folder, relative to the repository root, that receives generated tests
const DefaultTestsDir = "tests"

// FileLocator returns the changed files present in the working tree
type FileLocator interface {
	Locate(ctx context.Context, repoRoot string) ([]string, error)
}

// TestGenerator produces test source for one file
type TestGenerator interface {
	Generate(ctx context.Context, sourceText string, lang language.Language) (string, error)
}

// SecretScanner reports credentials found in source text
type SecretScanner interface {
	Scan(content string) []secrets.Finding
}

// SkipReason explains why a file produced no artifact without failing
type SkipReason string

const (
	SkipEmptyFile       SkipReason = "empty_file"
	SkipUnknownLanguage SkipReason = "unknown_language"
	SkipSecretsDetected SkipReason = "secrets_detected"
	SkipExistingTest    SkipReason = "existing_test"
	SkipDryRun          SkipReason = "dry_run"
)

// Config holds the pipeline configuration
type Config struct {
	TestsDir string
	DryRun   bool
}

// RunSummary contains the outcome of a run
type RunSummary struct {
	Total     int
	Written   int
	Failed    int
	Skipped   map[SkipReason]int
	Artifacts []models.GeneratedTestArtifact
	Duration  time.Duration
}

// Service represents the test generation orchestration service
type Service struct {
	locator   FileLocator
	generator TestGenerator
	scanner   SecretScanner
	config    Config
}

// Option configures optional collaborators of a Service
type Option func(*Service)

// WithSecretScanner skips files in which scanner finds credentials
func WithSecretScanner(scanner SecretScanner) Option {
	return func(s *Service) {
		s.scanner = scanner
	}
}

// NewService creates a new pipeline service
func NewService(locator FileLocator, generator TestGenerator, config Config, opts ...Option) *Service {
	if config.TestsDir == "" {
		config.TestsDir = DefaultTestsDir
	}
	s := &Service{
		locator:   locator,
		generator: generator,
		config:    config,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TestsFolder returns the absolute or root-relative folder generated tests go to
func (s *Service) TestsFolder(repoRoot string) string {
	if filepath.IsAbs(s.config.TestsDir) {
		return s.config.TestsDir
	}
	return filepath.Join(repoRoot, s.config.TestsDir)
}

// Run scans the changed files under repoRoot and writes a generated test for
// each one that does not have one yet. Only setup and discovery failures are
// returned; per-file problems are logged and counted in the summary.
func (s *Service) Run(ctx context.Context, repoRoot string) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{Skipped: make(map[SkipReason]int)}

	log.Info().Str("repo_path", repoRoot).Msg("Starting repository processing")

	testsFolder := s.TestsFolder(repoRoot)
	if err := os.MkdirAll(testsFolder, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create tests folder %s: %w", testsFolder, err)
	}
	log.Info().Str("tests_folder", testsFolder).Msg("Created/verified tests folder")

	files, err := s.locator.Locate(ctx, repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get changed files: %w", err)
	}

	summary.Total = len(files)
	if len(files) == 0 {
		log.Info().Msg("No files to process. Workflow completed.")
		summary.Duration = time.Since(start)
		return summary, nil
	}

	log.Info().Int("count", len(files)).Msg("Found code files to process")

	for i, file := range files {
		logger := log.With().Str("file", file).Logger()
		logger.Info().Msgf("Processing file %d/%d", i+1, len(files))

		artifact, reason, err := s.processFile(ctx, testsFolder, file)
		switch {
		case err != nil:
			summary.Failed++
			logger.Error().Err(err).Msg("Error processing file")
		case reason != "":
			summary.Skipped[reason]++
		default:
			summary.Written++
			summary.Artifacts = append(summary.Artifacts, *artifact)
			logger.Info().Str("test_file", artifact.TargetPath).Msg("Successfully generated and wrote tests")
		}
	}

	summary.Duration = time.Since(start)
	log.Info().
		Int("total", summary.Total).
		Int("written", summary.Written).
		Int("failed", summary.Failed).
		Interface("skipped", summary.Skipped).
		Dur("duration", summary.Duration).
		Msgf("Unit tests generation complete. Tests are stored in %s", testsFolder)
	return summary, nil
}

// processFile handles one file. It returns the written artifact, or the reason
// the file was skipped, or an error.
func (s *Service) processFile(ctx context.Context, testsFolder, file string) (*models.GeneratedTestArtifact, SkipReason, error) {
	logger := log.With().Str("file", file).Logger()

	content, err := os.ReadFile(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	source := string(content)
	if strings.TrimSpace(source) == "" {
		logger.Warn().Msg("Skipping empty file")
		return nil, SkipEmptyFile, nil
	}

	lang, ok := language.ResolveFile(file)
	if !ok {
		logger.Warn().Msg("Could not determine language for file. Skipping.")
		return nil, SkipUnknownLanguage, nil
	}

	if s.scanner != nil {
		if findings := s.scanner.Scan(source); len(findings) > 0 {
			logger.Warn().
				Strs("rules", secrets.RuleIDs(findings)).
				Int("findings", len(findings)).
				Msg("Possible secrets detected, not sending file for generation")
			return nil, SkipSecretsDetected, nil
		}
	}

	languageFolder := filepath.Join(testsFolder, string(lang))
	if err := os.MkdirAll(languageFolder, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create language folder %s: %w", languageFolder, err)
	}
	logger.Debug().Str("language_folder", languageFolder).Msg("Created/verified language folder")

	testFileName := language.TestFileName(filepath.Base(file), lang)
	testFilePath := filepath.Join(languageFolder, testFileName)
	logger.Debug().Str("test_file", testFileName).Msg("Generated test file name")

	exists, err := pathExists(testFilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check test file %s: %w", testFilePath, err)
	}
	if exists {
		logger.Info().Str("test_file", testFilePath).Msg("Test file already exists. Skipping.")
		return nil, SkipExistingTest, nil
	}

	if s.config.DryRun {
		logger.Info().Str("test_file", testFilePath).Str("language", string(lang)).Msg("Dry run, would generate tests")
		return nil, SkipDryRun, nil
	}

	testCode, err := s.generator.Generate(ctx, source, lang)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate tests: %w", err)
	}

	if err := os.WriteFile(testFilePath, []byte(testCode), 0o644); err != nil {
		return nil, "", fmt.Errorf("failed to write test file %s: %w", testFilePath, err)
	}

	return &models.GeneratedTestArtifact{
		SourcePath: file,
		TargetPath: testFilePath,
		SourceText: testCode,
	}, "", nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
