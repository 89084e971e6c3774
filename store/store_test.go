package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/greation/sermonkit/blob"
	"github.com/greation/sermonkit/blob/fs"
	"github.com/greation/sermonkit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	backend, err := fs.NewBackend(t.TempDir())
	require.NoError(t, err)
	s, err := NewStore(backend, "test-model")
	require.NoError(t, err)
	return s
}

func record(id, title string, embedding ...float32) *core.EmbeddingRecord {
	return &core.EmbeddingRecord{
		IllustrationRecord: core.IllustrationRecord{Id: id, Title: title},
		Embedding:          embedding,
	}
}

func TestNewStore(t *testing.T) {
	backend, err := fs.NewBackend(t.TempDir())
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		s, err := NewStore(backend, "test-model")
		require.NoError(t, err)
		assert.Equal(t, "test-model", s.Model())
	})

	t.Run("nil backend", func(t *testing.T) {
		_, err := NewStore(nil, "test-model")
		assert.Equal(t, ErrBackendRequired, err)
	})

	t.Run("empty model", func(t *testing.T) {
		_, err := NewStore(backend, "")
		assert.Equal(t, ErrModelRequired, err)
	})
}

func TestLoadMissingDocumentIsEmptyStore(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Load(context.Background()))
	assert.True(t, s.Loaded())
	assert.Equal(t, 0, s.Count())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	backend, err := fs.NewBackend(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	s, err := NewStore(backend, "test-model")
	require.NoError(t, err)
	require.NoError(t, s.Add(
		record("a", "First", 1, 0),
		record("b", "Second", 0, 1),
	))
	require.NoError(t, s.Save(ctx))

	reloaded, err := NewStore(backend, "test-model")
	require.NoError(t, err)
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, 2, reloaded.Count())
	assert.True(t, reloaded.Has("a"))
	assert.True(t, reloaded.Has("b"))
	assert.Equal(t, "First", reloaded.Get("a").Title)
	assert.Equal(t, []float32{0, 1}, reloaded.Get("b").Embedding)

	// save(load()) leaves the record set unchanged.
	require.NoError(t, reloaded.Save(ctx))
	again, err := NewStore(backend, "test-model")
	require.NoError(t, err)
	require.NoError(t, again.Load(ctx))
	assert.Equal(t, []string{"a", "b"}, idsOf(again))
}

func TestLoadRejectsModelMismatch(t *testing.T) {
	backend, err := fs.NewBackend(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	s, err := NewStore(backend, "model-one")
	require.NoError(t, err)
	require.NoError(t, s.Add(record("a", "First", 1)))
	require.NoError(t, s.Save(ctx))

	other, err := NewStore(backend, "model-two")
	require.NoError(t, err)
	assert.ErrorIs(t, other.Load(ctx), ErrModelMismatch)
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	backend, err := fs.NewBackend(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	doc := Document{Version: DocumentVersion + 1, Model: "test-model"}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, backend.Store(ctx, DefaultKey, data))

	s, err := NewStore(backend, "test-model")
	require.NoError(t, err)
	assert.ErrorIs(t, s.Load(ctx), ErrUnsupportedVersion)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Add(record("c", "Third", 1)))
	require.NoError(t, s.Add(record("a", "First", 1)))
	require.NoError(t, s.Add(record("b", "Second", 1)))

	assert.Equal(t, []string{"c", "a", "b"}, idsOf(s))
}

func TestAddReplacesInPlace(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Add(record("a", "First", 1), record("b", "Second", 1)))
	require.NoError(t, s.Add(record("a", "First revised", 2)))

	assert.Equal(t, []string{"a", "b"}, idsOf(s))
	assert.Equal(t, "First revised", s.Get("a").Title)
	assert.Equal(t, 2, s.Count())
}

func TestAddRejectsInvalidRecord(t *testing.T) {
	s := newTestStore(t)

	err := s.Add(&core.EmbeddingRecord{
		IllustrationRecord: core.IllustrationRecord{Id: "a", Title: "No vector"},
	})
	assert.ErrorIs(t, err, core.ErrEmptyEmbedding)
	assert.Equal(t, 0, s.Count())
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add(
		record("a", "First", 1),
		record("b", "Second", 1),
		record("c", "Third", 1),
	))

	removed := s.Remove("b", "missing")
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"a", "c"}, idsOf(s))
	assert.False(t, s.Has("b"))
}

func TestInvalidateAndReload(t *testing.T) {
	backend, err := fs.NewBackend(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	s, err := NewStore(backend, "test-model")
	require.NoError(t, err)
	require.NoError(t, s.Add(record("a", "First", 1)))
	require.NoError(t, s.Save(ctx))
	require.NoError(t, s.Add(record("b", "Unsaved", 1)))

	s.Invalidate()
	assert.False(t, s.Loaded())
	assert.Equal(t, 0, s.Count())

	require.NoError(t, s.Reload(ctx))
	assert.True(t, s.Loaded())
	assert.Equal(t, []string{"a"}, idsOf(s))
}

func TestSaveSurfacesBackendFailure(t *testing.T) {
	s, err := NewStore(failingBackend{}, "test-model")
	require.NoError(t, err)
	require.NoError(t, s.Add(record("a", "First", 1)))

	assert.Error(t, s.Save(context.Background()))
}

func idsOf(s *Store) []string {
	records := s.All()
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.Id)
	}
	return ids
}

type failingBackend struct{}

func (failingBackend) Fetch(context.Context, string) ([]byte, error) {
	return nil, blob.ErrNotFound
}

func (failingBackend) Store(context.Context, string, []byte) error {
	return assert.AnError
}
