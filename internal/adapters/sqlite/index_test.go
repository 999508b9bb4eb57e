package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdvault/internal/domain"
	"mdvault/internal/logger"
)

func openTestIndex(t *testing.T, vault string) *Index {
	t.Helper()
	idx := NewIndex(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, idx.Open(vault))
	t.Cleanup(func() { idx.Close() })
	return idx
}

func sampleTree() *domain.Entry {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Entry{
		Name: "v", Path: "/v", IsDir: true, Created: ts, Modified: ts,
		Children: []*domain.Entry{
			{Name: "Ideas", Path: "/v/Ideas.md", Created: ts, Modified: ts},
			{Name: "Projects", Path: "/v/Projects", IsDir: true, Created: ts, Modified: ts,
				Children: []*domain.Entry{
					{Name: "plan_v2", Path: "/v/Projects/plan_v2.md", Created: ts, Modified: ts},
				}},
		},
	}
}

func TestIndex_SyncFull(t *testing.T) {
	idx := openTestIndex(t, "/v")
	assert.True(t, idx.NeedsFullRebuild())

	stats, err := idx.SyncFull(sampleTree())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.NodesAdded)
	assert.Equal(t, 0, stats.NodesDeleted)
	assert.False(t, idx.NeedsFullRebuild())

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	node, err := idx.GetNode("/v/Projects/plan_v2.md")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, "/v/Projects", node.Parent)
	assert.Equal(t, "plan_v2", node.Name)
	assert.False(t, node.IsDir)

	// a second sync replaces everything
	stats, err = idx.SyncFull(&domain.Entry{Name: "v", Path: "/v", IsDir: true})
	require.NoError(t, err)
	assert.Equal(t, 4, stats.NodesDeleted)
	assert.Equal(t, 1, stats.NodesAdded)
}

func TestIndex_NeedsRebuildForOtherVault(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "index.db")

	idx := NewIndex(dbPath)
	require.NoError(t, idx.Open("/v"))
	_, err := idx.SyncFull(sampleTree())
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	other := NewIndex(dbPath)
	require.NoError(t, other.Open("/w"))
	defer other.Close()
	assert.True(t, other.NeedsFullRebuild())
}

func TestIndex_Children(t *testing.T) {
	idx := openTestIndex(t, "/v")
	_, err := idx.SyncFull(sampleTree())
	require.NoError(t, err)

	children, err := idx.Children("/v")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "Ideas", children[0].Name)
	assert.Equal(t, "Projects", children[1].Name)
	assert.True(t, children[1].IsDir)
}

func TestIndex_Search(t *testing.T) {
	idx := openTestIndex(t, "/v")
	_, err := idx.SyncFull(sampleTree())
	require.NoError(t, err)

	tests := []struct {
		query string
		want  []string
	}{
		{query: "idea", want: []string{"Ideas"}},
		{query: "IDEA", want: []string{"Ideas"}},
		{query: "pjs", want: []string{"Projects"}},
		{query: "plan_", want: []string{"plan_v2"}},
		{query: "n_v", want: []string{"plan_v2"}},
		{query: "%", want: nil},
		{query: "zzz", want: nil},
		{query: "  ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			nodes, err := idx.Search(tt.query)
			require.NoError(t, err)
			var names []string
			for _, n := range nodes {
				names = append(names, n.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestIndex_DeleteEntryRemovesSubtree(t *testing.T) {
	idx := openTestIndex(t, "/v")
	tree := sampleTree()
	// sibling sharing the folder name as prefix must survive
	tree.Children = append(tree.Children, &domain.Entry{Name: "Projects2", Path: "/v/Projects2", IsDir: true})
	_, err := idx.SyncFull(tree)
	require.NoError(t, err)

	require.NoError(t, idx.DeleteEntry("/v/Projects"))

	node, err := idx.GetNode("/v/Projects/plan_v2.md")
	require.NoError(t, err)
	assert.Nil(t, node)

	node, err = idx.GetNode("/v/Projects2")
	require.NoError(t, err)
	assert.NotNil(t, node)
}

func TestSink_MirrorsNotifications(t *testing.T) {
	idx := openTestIndex(t, "/v")
	sink := NewSink(idx, logger.Discard())

	sink.FolderContent(sampleTree())

	created := &domain.Entry{Name: "Untitled", Path: "/v/Untitled", IsDir: true,
		Children: []*domain.Entry{{Name: "inner", Path: "/v/Untitled/inner.md"}}}
	sink.EntryCreated(created)

	node, err := idx.GetNode("/v/Untitled/inner.md")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, "/v/Untitled", node.Parent)

	updated := &domain.Entry{Name: "Ideas", Path: "/v/Ideas.md", Modified: time.Unix(2000000000, 0)}
	sink.EntryUpdated(updated)
	node, err = idx.GetNode("/v/Ideas.md")
	require.NoError(t, err)
	assert.Equal(t, int64(2000000000), node.Modified)

	sink.EntryDeleted("/v/Untitled")
	node, err = idx.GetNode("/v/Untitled")
	require.NoError(t, err)
	assert.Nil(t, node)

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestSubsequencePattern(t *testing.T) {
	assert.Equal(t, "%a%b%", subsequencePattern("ab"))
	assert.Equal(t, `%\%%\_%`, subsequencePattern("%_"))
}

func TestDatabasePath(t *testing.T) {
	a := DatabasePath("/v")
	b := DatabasePath("/w")
	assert.NotEqual(t, a, b)
	assert.Equal(t, ".db", filepath.Ext(a))
	assert.Equal(t, "mdvault", filepath.Base(filepath.Dir(a)))
}
