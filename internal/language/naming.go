package language

// convention builds a test file name from the base name and extension of the source file
type convention func(base, ext string) string

func prefixed(prefix, fixedExt string) convention {
	return func(base, _ string) string {
		return prefix + base + fixedExt
	}
}

func suffixed(suffix string) convention {
	return func(base, ext string) string {
		return base + suffix + ext
	}
}

var (
	genericConvention = suffixed("_test")

	testFileConventions = map[Language]convention{
		Python:     prefixed("test_", ".py"),
		JavaScript: suffixed(".test"),
		TypeScript: suffixed(".test"),
		Java:       suffixed("Test"),
		CSharp:     suffixed("Test"),
		CPP:        suffixed("test"),
		Ruby:       prefixed("test_", ".rb"),
		Go:         suffixed("_test"),
		PHP:        suffixed("Test"),
		Swift:      suffixed("Tests"),
		Kotlin:     suffixed("Test"),
		VBNet:      suffixed("Test"),
	}
)

// TestFileName returns the conventional test file name for originalFileName
// in the given language. Unknown languages get "{base}_test{ext}".
func TestFileName(originalFileName string, lang Language) string {
	base, ext := SplitExt(originalFileName)
	if conv, ok := testFileConventions[lang]; ok {
		return conv(base, ext)
	}
	return genericConvention(base, ext)
}
