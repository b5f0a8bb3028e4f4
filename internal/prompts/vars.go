package prompts

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder represents a single {{VAR:...}} occurrence with parsed options.
type Placeholder struct {
	Raw     string
	Name    string
	Options map[string]string // e.g. default
	Start   int               // byte offset of Raw in the body
	End     int
}

var (
	// {{VAR:name|key=value|key2="quoted value"}}
	varPattern = regexp.MustCompile(`\{\{VAR:([a-zA-Z0-9_\-]+)((?:\|[^}]+)?)}}`)
	optPattern = regexp.MustCompile(`\|([^=|]+)=([^|]+)`)
)

// ParsePlaceholders returns all placeholder occurrences in order of appearance.
func ParsePlaceholders(body string) []Placeholder {
	matches := varPattern.FindAllStringSubmatchIndex(body, -1)
	out := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		out = append(out, Placeholder{
			Raw:     body[m[0]:m[1]],
			Name:    body[m[2]:m[3]],
			Options: parseOptions(body[m[4]:m[5]]),
			Start:   m[0],
			End:     m[1],
		})
	}
	return out
}

func parseOptions(raw string) map[string]string {
	opts := map[string]string{}
	for _, seg := range optPattern.FindAllStringSubmatch(raw, -1) {
		key := strings.ToLower(strings.TrimSpace(seg[1]))
		val := strings.TrimSpace(seg[2])
		if len(val) >= 2 && ((val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'')) {
			val = val[1 : len(val)-1]
		}
		opts[key] = val
	}
	return opts
}

// Render substitutes every placeholder in body in a single pass, so values
// that themselves contain {{VAR:...}} are inserted verbatim. A placeholder
// with no value and no default is an error.
func Render(body string, vars map[string]string) (string, error) {
	var b strings.Builder
	var missing []string
	last := 0
	for _, ph := range ParsePlaceholders(body) {
		b.WriteString(body[last:ph.Start])
		last = ph.End
		if val, ok := vars[ph.Name]; ok {
			b.WriteString(val)
			continue
		}
		if def, ok := ph.Options["default"]; ok {
			b.WriteString(def)
			continue
		}
		missing = append(missing, ph.Name)
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("prompts: missing values for %s", strings.Join(missing, ", "))
	}
	b.WriteString(body[last:])
	return b.String(), nil
}
