// Package secrets screens source text for credentials before it is sent to a
// remote generation service.
package secrets

import (
	"fmt"
	"sort"

	"github.com/zricethezav/gitleaks/v8/detect"
)

// Finding is a single detected secret, without the secret value
type Finding struct {
	RuleID string
	Line   int
}

// Scanner runs the default gitleaks rule set over in-memory content
type Scanner struct {
	detector *detect.Detector
}

// NewScanner loads the default gitleaks configuration
func NewScanner() (*Scanner, error) {
	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load gitleaks rules: %w", err)
	}
	return &Scanner{detector: detector}, nil
}

// Scan returns the findings in content ordered by line
func (s *Scanner) Scan(content string) []Finding {
	var findings []Finding
	for _, f := range s.detector.DetectString(content) {
		findings = append(findings, Finding{RuleID: f.RuleID, Line: f.StartLine})
	}
	sort.Slice(findings, func(i, j int) bool {
		return findings[i].Line < findings[j].Line
	})
	return findings
}

// RuleIDs returns the distinct rule IDs of findings in first-seen order
func RuleIDs(findings []Finding) []string {
	seen := make(map[string]bool, len(findings))
	var ids []string
	for _, f := range findings {
		if !seen[f.RuleID] {
			seen[f.RuleID] = true
			ids = append(ids, f.RuleID)
		}
	}
	return ids
}
