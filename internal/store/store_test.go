package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "taller.json"))
	require.NoError(t, err)
	return s
}

func TestOpenCreatesCollectionsAndSeq(t *testing.T) {
	s := openTemp(t)

	for _, c := range collections {
		assert.NotNil(t, s.All(c), "collection %s must exist", c)
	}

	// The very first assigned id is 1.
	id, err := s.NextID()
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestInsertAssignsGlobalIncrementingIDs(t *testing.T) {
	s := openTemp(t)

	id1, err := s.Insert(Clients, map[string]any{"full_name": "Ana"})
	require.NoError(t, err)
	id2, err := s.Insert(Vehicles, map[string]any{"plate": "ABC-123"})
	require.NoError(t, err)
	id3, err := s.Insert(Jobs, map[string]any{"reason": "cambio de aceite"})
	require.NoError(t, err)

	// The sequence is global: ids never repeat across collections.
	assert.Equal(t, 1, id1)
	assert.Equal(t, 2, id2)
	assert.Equal(t, 3, id3)
}

func TestReloadPreservesDocumentsAndSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taller.json")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Insert(Clients, map[string]any{"full_name": "Ana"})
	require.NoError(t, err)
	_, err = s.Insert(Clients, map[string]any{"full_name": "Luis"})
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Len(t, reopened.All(Clients), 2)

	// The sequence continues where the previous process left off.
	id, err := reopened.Insert(Vehicles, map[string]any{"plate": "XYZ-987"})
	require.NoError(t, err)
	assert.Equal(t, 3, id)
}

func TestUpdateMergesPatchIntoDocument(t *testing.T) {
	s := openTemp(t)

	id, err := s.Insert(Clients, map[string]any{"full_name": "Ana", "phone": "111"})
	require.NoError(t, err)

	require.NoError(t, s.Update(Clients, id, map[string]any{"phone": "222"}))

	doc, ok := s.Get(Clients, id)
	require.True(t, ok)
	assert.Equal(t, "222", doc["phone"])
	assert.Equal(t, "Ana", doc["full_name"], "untouched fields survive the patch")
}

func TestUpdateAndRemoveMissingAreSilentNoOps(t *testing.T) {
	s := openTemp(t)

	assert.NoError(t, s.Update(Clients, 999, map[string]any{"phone": "222"}))
	assert.NoError(t, s.Remove(Clients, 999))
}

func TestRemoveDeletesDocument(t *testing.T) {
	s := openTemp(t)

	id, err := s.Insert(Clients, map[string]any{"full_name": "Ana"})
	require.NoError(t, err)
	require.NoError(t, s.Remove(Clients, id))

	_, ok := s.Get(Clients, id)
	assert.False(t, ok)
	assert.Empty(t, s.All(Clients))
}

func TestFindMatchesAllConditions(t *testing.T) {
	s := openTemp(t)

	_, err := s.Insert(Vehicles, map[string]any{"plate": "AAA-111", "client_id": 1})
	require.NoError(t, err)
	_, err = s.Insert(Vehicles, map[string]any{"plate": "BBB-222", "client_id": 1})
	require.NoError(t, err)
	_, err = s.Insert(Vehicles, map[string]any{"plate": "CCC-333", "client_id": 2})
	require.NoError(t, err)

	assert.Len(t, s.Find(Vehicles, map[string]any{"client_id": 1}), 2)
	assert.Len(t, s.Find(Vehicles, map[string]any{"client_id": 1, "plate": "BBB-222"}), 1)
	assert.Empty(t, s.Find(Vehicles, map[string]any{"client_id": 9}))
}

func TestPersistSurvivesOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taller.json")
	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.Insert(Notes, map[string]any{"content": "hola"})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"hola"`)
	assert.Contains(t, string(raw), `"global_seq"`)
}
