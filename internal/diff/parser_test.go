package diff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseHunks(t *testing.T) {
	body := "--- a/app.sql\n+++ b/app.sql\n" +
		"@@ -1,3 +1,4 @@\n" +
		" select 1;\n" +
		"--- old comment\n" +
		"+-- new comment\n" +
		"+select 2;\n" +
		" select 3;\n" +
		"@@ -10 +11 @@\n" +
		"-x\n" +
		"+y\n" +
		"\\ No newline at end of file\n"

	want := []Hunk{
		{Additions: 2, Deletions: 1},
		{Additions: 1, Deletions: 1},
	}
	if diff := cmp.Diff(want, ParseHunks(body)); diff != "" {
		t.Fatalf("hunks mismatch (-want +got):\n%s", diff)
	}

	additions, deletions := Stat(body)
	require.Equal(t, 3, additions)
	require.Equal(t, 2, deletions)
}

func TestParseHunksWithoutHeader(t *testing.T) {
	require.Empty(t, ParseHunks(""))
	require.Empty(t, ParseHunks("Binary files a/logo.png and b/logo.png differ\n"))

	additions, deletions := Stat("")
	require.Zero(t, additions)
	require.Zero(t, deletions)
}
