// Package language classifies source files by extension and derives the
// conventional name of the unit test file generated for them.
package language

import (
	"path/filepath"
	"sort"
	"strings"
)

// Language identifies a programming language supported for test generation
type Language string

const (
	Python     Language = "Python"
	JavaScript Language = "JavaScript"
	TypeScript Language = "TypeScript"
	Java       Language = "Java"
	CSharp     Language = "C#"
	CPP        Language = "C++"
	Ruby       Language = "Ruby"
	Go         Language = "Go"
	PHP        Language = "PHP"
	Swift      Language = "Swift"
	Kotlin     Language = "Kotlin"
	VBNet      Language = "VB.NET"
)

// extensionLanguages is never written after initialization; use Resolve.
var extensionLanguages = map[string]Language{
	".py":       Python,
	".js":       JavaScript,
	".ts":       TypeScript,
	".java":     Java,
	".cs":       CSharp,
	".csx":      CSharp,
	".cpp":      CPP,
	".cxx":      CPP,
	".cc":       CPP,
	".hpp":      CPP,
	".h":        CPP,
	".rb":       Ruby,
	".go":       Go,
	".php":      PHP,
	".swift":    Swift,
	".kt":       Kotlin,
	".kts":      Kotlin,
	".vb":       VBNet,
	".vbproj":   VBNet,
	".vbhtml":   VBNet,
	".vbcsproj": VBNet,
	".vbxml":    VBNet,
}

// Resolve returns the language for a file extension. The extension must
// include the leading dot and is matched case-sensitively.
func Resolve(ext string) (Language, bool) {
	lang, ok := extensionLanguages[ext]
	return lang, ok
}

// ResolveFile resolves the language of a path from its extension
func ResolveFile(path string) (Language, bool) {
	_, ext := SplitExt(filepath.Base(path))
	return Resolve(ext)
}

// IsSupported reports whether filename has an extension tests can be generated for
func IsSupported(filename string) bool {
	_, ok := ResolveFile(filename)
	return ok
}

// Extensions returns the supported extensions in sorted order
func Extensions() []string {
	exts := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// SplitExt splits a file name into base and extension. Leading dots belong to
// the base, so ".bashrc" has no extension.
func SplitExt(name string) (base, ext string) {
	ext = filepath.Ext(name)
	base = strings.TrimSuffix(name, ext)
	if strings.Trim(base, ".") == "" {
		return name, ""
	}
	return base, ext
}
