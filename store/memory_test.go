package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanjt06/streamindex/stream"
)

type doc struct {
	ID    string
	Title string
}

func docID(d doc) string { return d.ID }

var _ stream.Store[string, doc] = (*Memory[string, doc])(nil)

func TestMemoryAddAndGet(t *testing.T) {
	m := NewMemory(docID)

	require.NoError(t, m.Add([]doc{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}))

	all, err := m.GetAllItems()
	require.NoError(t, err)
	assert.Equal(t, []doc{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}, all)
	assert.Equal(t, 2, m.Len())
}

func TestMemoryUpsertKeepsPosition(t *testing.T) {
	m := NewMemory(docID)
	require.NoError(t, m.Add([]doc{{ID: "a"}, {ID: "b"}}))

	require.NoError(t, m.Add([]doc{{ID: "a", Title: "updated"}}))

	all, err := m.GetAllItems()
	require.NoError(t, err)
	assert.Equal(t, []doc{{ID: "a", Title: "updated"}, {ID: "b"}}, all)
}

func TestMemoryRemove(t *testing.T) {
	m := NewMemory(docID)
	require.NoError(t, m.Add([]doc{{ID: "a"}, {ID: "b"}}))

	require.NoError(t, m.Remove("a"))
	require.NoError(t, m.Remove("missing"))

	all, err := m.GetAllItems()
	require.NoError(t, err)
	assert.Equal(t, []doc{{ID: "b"}}, all)
}

func TestMemoryGetAllItemsReturnsCopy(t *testing.T) {
	m := NewMemory(docID)
	require.NoError(t, m.Add([]doc{{ID: "a"}}))

	all, err := m.GetAllItems()
	require.NoError(t, err)
	all[0].Title = "changed"

	again, err := m.GetAllItems()
	require.NoError(t, err)
	assert.Equal(t, []doc{{ID: "a"}}, again)
}

func TestMemoryBehindIndex(t *testing.T) {
	m := NewMemory(docID)
	ix := stream.New[string, doc](m, docID, stream.WithLimit(2))

	require.NoError(t, ix.Push(doc{ID: "a"}, doc{ID: "b"}))
	require.NoError(t, ix.Unshift(doc{ID: "c"}))
	require.NoError(t, ix.Push(doc{ID: "a", Title: "again"}))

	// [c a b] -> push a -> [c b a] -> trim -> [c b]
	assert.Equal(t, []string{"c", "b"}, ix.IDs())
	assert.Equal(t, 2, m.Len())

	items, err := ix.GetAllItems()
	require.NoError(t, err)
	assert.Equal(t, []doc{{ID: "c"}, {ID: "b"}}, items)
}
