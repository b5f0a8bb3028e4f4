package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/prtestgen/internal/config"
)

// ConfigCheckResult holds the result of configuration validation
type ConfigCheckResult struct {
	Missing  []string          // Required variables that are missing
	Present  map[string]string // Variables that are set (masked values)
	Warnings []string          // Non-fatal warnings
	Source   string
}

// requiredVars lists, per source, the variables a run cannot do without.
// Each inner slice is a set of alternatives.
var requiredVars = map[string][][]string{
	config.SourceGitHub: {
		{"GITHUB_EVENT_PATH"},
		{"GITHUB_REPOSITORY"},
	},
	config.SourceGitLab: {
		{"CI_PROJECT_PATH", "CI_PROJECT_ID"},
		{"CI_MERGE_REQUEST_IID"},
	},
}

var optionalVars = []string{
	"GITHUB_WORKSPACE",
	"GITHUB_API_URL",
	"GITHUB_TOKEN",
	"PERSONAL_GITHUB_TOKEN",
	"CI_SERVER_URL",
	"GITLAB_TOKEN",
	"CI_COMMIT_SHA",
}

var secretVars = map[string]bool{
	"OPEN_AI_KEY":           true,
	"GITHUB_TOKEN":          true,
	"PERSONAL_GITHUB_TOKEN": true,
	"GITLAB_TOKEN":          true,
	"PRTESTGEN_AI_API_KEY":  true,
}

// CheckRequiredConfig validates that required environment variables are set
func CheckRequiredConfig(source, aiProvider string) *ConfigCheckResult {
	result := &ConfigCheckResult{
		Missing:  []string{},
		Present:  make(map[string]string),
		Warnings: []string{},
		Source:   source,
	}

	required := requiredVars[source]
	if aiProvider != "ollama" {
		required = append(required, []string{"OPEN_AI_KEY", config.EnvPrefix + "AI_API_KEY"})
	}

	for _, alternatives := range required {
		found := false
		for _, v := range alternatives {
			if val := os.Getenv(v); val != "" {
				result.Present[v] = displayValue(v, val)
				found = true
			}
		}
		if !found {
			result.Missing = append(result.Missing, strings.Join(alternatives, " or "))
		}
	}

	for _, v := range optionalVars {
		if val := os.Getenv(v); val != "" {
			result.Present[v] = displayValue(v, val)
		}
	}

	if source == config.SourceGitHub && os.Getenv("PERSONAL_GITHUB_TOKEN") == "" && os.Getenv("GITHUB_TOKEN") == "" {
		result.Warnings = append(result.Warnings, "no GitHub token set, API requests are unauthenticated and heavily rate limited")
	}

	return result
}

// PrintConfigCheck prints the configuration check results
func PrintConfigCheck(result *ConfigCheckResult) {
	fmt.Println("=== Configuration Check ===")
	fmt.Printf("Source: %s\n", result.Source)
	fmt.Println("")

	if len(result.Missing) > 0 {
		fmt.Println("❌ Missing required variables:")
		for _, v := range result.Missing {
			fmt.Printf("   - %s\n", v)
		}
		fmt.Println("")
	}

	if len(result.Present) > 0 {
		fmt.Println("✓ Configured variables:")
		keys := make([]string, 0, len(result.Present))
		for k := range result.Present {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("   - %s = %s\n", k, result.Present[k])
		}
		fmt.Println("")
	}

	for _, w := range result.Warnings {
		fmt.Printf("⚠ Warning: %s\n", w)
	}

	if len(result.Missing) == 0 {
		fmt.Println("✓ All required configuration is present")
	}

	fmt.Println("============================")
}

func displayValue(name, value string) string {
	if secretVars[name] {
		return maskSecret(value)
	}
	return value
}

// maskSecret masks a secret value for display, showing only first and last 2 chars
func maskSecret(value string) string {
	if len(value) <= 8 {
		return "****"
	}
	return value[:2] + "****" + value[len(value)-2:]
}

// LoadEnvFile loads environment variables from a file, overwriting existing ones.
func LoadEnvFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if len(value) >= 2 && ((value[0] == '"' && value[len(value)-1] == '"') || (value[0] == '\'' && value[len(value)-1] == '\'')) {
			value = value[1 : len(value)-1]
		}

		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set env var %s: %w", key, err)
		}
	}

	return scanner.Err()
}
