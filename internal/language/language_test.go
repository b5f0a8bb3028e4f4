package language

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownExtensions(t *testing.T) {
	cases := map[string]Language{
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

	for ext, want := range cases {
		got, ok := Resolve(ext)
		require.Truef(t, ok, "extension %s should resolve", ext)
		require.Equal(t, want, got, ext)
	}
	require.Len(t, Extensions(), len(cases))
}

func TestResolveUnknownExtensions(t *testing.T) {
	for _, ext := range []string{"", ".unknown", ".PY", "py", ".Go", ".md", ".tsx"} {
		lang, ok := Resolve(ext)
		require.Falsef(t, ok, "extension %q should not resolve", ext)
		require.Empty(t, lang)
	}
}

func TestExtensionsSorted(t *testing.T) {
	exts := Extensions()
	require.Equal(t, ".cc", exts[0])
	require.Equal(t, ".vbxml", exts[len(exts)-1])

	// Mutating the returned slice must not leak into the table.
	exts[0] = ".zzz"
	_, ok := Resolve(".zzz")
	require.False(t, ok)
}

func TestIsSupported(t *testing.T) {
	require.True(t, IsSupported("src/app/main.go"))
	require.True(t, IsSupported("Service.cs"))
	require.False(t, IsSupported("README.md"))
	require.False(t, IsSupported("Makefile"))
	require.False(t, IsSupported(".h"))
}

func TestSplitExt(t *testing.T) {
	type split struct{ Base, Ext string }
	cases := map[string]split{
		"main.go":    {"main", ".go"},
		"a.b.py":     {"a.b", ".py"},
		"Makefile":   {"Makefile", ""},
		".bashrc":    {".bashrc", ""},
		"..py":       {"..py", ""},
		".env.local": {".env", ".local"},
		"trailing.":  {"trailing", "."},
	}
	for name, want := range cases {
		base, ext := SplitExt(name)
		if diff := cmp.Diff(want, split{base, ext}); diff != "" {
			t.Errorf("SplitExt(%q) mismatch (-want +got):\n%s", name, diff)
		}
	}
}
