// Package diff reads unified diff bodies as returned by the GitLab API.
package diff

import (
	"regexp"
	"strings"
)

// Example: @@ -1,3 +1,4 @@ or @@ -1 +1 @@
var hunkHeader = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+\d+(?:,\d+)? @@`)

// Hunk counts the changed lines of one @@ section of a unified diff
type Hunk struct {
	Additions int
	Deletions int
}

// ParseHunks extracts the hunks of a single-file diff body. Text before the
// first hunk header (file headers, mode lines) is ignored.
func ParseHunks(diffText string) []Hunk {
	var hunks []Hunk
	var current *Hunk

	for _, line := range strings.Split(diffText, "\n") {
		if hunkHeader.MatchString(line) {
			hunks = append(hunks, Hunk{})
			current = &hunks[len(hunks)-1]
			continue
		}
		if current == nil {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+"):
			current.Additions++
		case strings.HasPrefix(line, "-"):
			current.Deletions++
		}
	}

	return hunks
}

// Stat returns the number of added and removed lines in a diff body
func Stat(diffText string) (additions, deletions int) {
	for _, h := range ParseHunks(diffText) {
		additions += h.Additions
		deletions += h.Deletions
	}
	return additions, deletions
}
