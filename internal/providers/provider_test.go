package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prtestgen/pkg/models"
)

func TestFilterSupported(t *testing.T) {
	records := []models.ChangedFileRecord{
		{Filename: "src/app.py", Status: models.StatusModified, Additions: 3},
		{Filename: "README.md", Status: models.StatusModified},
		{Filename: "web/index.ts", Status: models.StatusAdded},
		{Filename: "Dockerfile", Status: models.StatusAdded},
		{Filename: "lib/Util.CS", Status: models.StatusModified},
	}

	got := FilterSupported(records)
	require.Len(t, got, 2)
	require.Equal(t, "src/app.py", got[0].Filename)
	require.Equal(t, 3, got[0].Additions)
	require.Equal(t, "web/index.ts", got[1].Filename)
}

func TestFilterSupportedEmpty(t *testing.T) {
	require.Empty(t, FilterSupported(nil))
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider([]string{"a.go", "notes.txt", "pkg/b.rb"})
	require.Equal(t, "static", p.Name())

	pr, err := p.PullRequest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "local", pr.Repository)

	files, err := p.ChangedFiles(context.Background(), pr)
	require.NoError(t, err)
	require.Equal(t, []models.ChangedFileRecord{
		{Filename: "a.go", Status: models.StatusModified},
		{Filename: "pkg/b.rb", Status: models.StatusModified},
	}, files)
}
