package search

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/cms"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

func newTestIndex(t *testing.T) (*Index, *cms.CMS) {
	t.Helper()
	content := cms.New(store.NewMemory(), bus.New())
	idx, err := OpenMem(content)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx, content
}

func TestRebuildIndexesOnlyPublishedContent(t *testing.T) {
	t.Parallel()

	idx, content := newTestIndex(t)
	_, err := content.Projects.Create(cms.Project{Title: "Published project", Status: cms.StatusPublished})
	require.NoError(t, err)
	_, err = content.Projects.Create(cms.Project{Title: "Draft project", Status: cms.StatusDraft})
	require.NoError(t, err)
	_, err = content.BlogPosts.Create(cms.BlogPost{Title: "Published post", Content: "body", Status: cms.StatusPublished})
	require.NoError(t, err)

	require.NoError(t, idx.Rebuild())
	count, err := idx.Count()
	require.NoError(t, err)
	require.Equal(t, uint64(2), count)
}

func TestSearchFindsPostBySlugAndKind(t *testing.T) {
	t.Parallel()

	idx, content := newTestIndex(t)
	post, err := content.BlogPosts.Create(cms.BlogPost{
		Title:    "Learning Go Generics",
		Content:  "Type parameters arrived in Go 1.18 and changed library design.",
		Status:   cms.StatusPublished,
		Category: "go",
	})
	require.NoError(t, err)
	require.NoError(t, idx.Rebuild())

	results, err := idx.Search("generics", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, post.ID, results[0].ID)
	require.Equal(t, "post", results[0].Kind)
	require.Equal(t, "learning-go-generics", results[0].Slug)
}

func TestRebuildDropsUnpublishedDocuments(t *testing.T) {
	t.Parallel()

	idx, content := newTestIndex(t)
	project, err := content.Projects.Create(cms.Project{Title: "Visible", Status: cms.StatusPublished})
	require.NoError(t, err)
	require.NoError(t, idx.Rebuild())

	_, err = content.Projects.Update(project.ID, func(p *cms.Project) { p.Status = cms.StatusArchived })
	require.NoError(t, err)
	require.NoError(t, idx.Rebuild())

	count, err := idx.Count()
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestRebuildDropsDocumentsDeletedWhileClosed(t *testing.T) {
	t.Parallel()

	content := cms.New(store.NewMemory(), bus.New())
	path := filepath.Join(t.TempDir(), "search.bleve")

	project, err := content.Projects.Create(cms.Project{
		Title:       "Ghost entry",
		Description: "Should vanish after the restart",
		Status:      cms.StatusPublished,
	})
	require.NoError(t, err)

	idx, err := Open(path, content)
	require.NoError(t, err)
	require.NoError(t, idx.Rebuild())
	require.NoError(t, idx.Close())

	// The project is deleted while no index is open, as happens when
	// another instance mutates the store between restarts.
	require.NoError(t, content.Projects.Delete(project.ID))

	idx, err = Open(path, content)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	require.NoError(t, idx.Rebuild())

	results, err := idx.Search("ghost", 10)
	require.NoError(t, err)
	require.Empty(t, results)

	count, err := idx.Count()
	require.NoError(t, err)
	require.Zero(t, count)
}
