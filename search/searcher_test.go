package search

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/greation/sermonkit/ai/mock"
	"github.com/greation/sermonkit/blob/fs"
	"github.com/greation/sermonkit/core"
	"github.com/greation/sermonkit/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRemote struct {
	results []core.ScoredCandidate
	err     error
	calls   int
}

func (r *stubRemote) FindSimilar(_ context.Context, _ []float32, _ int) ([]core.ScoredCandidate, error) {
	r.calls++
	return r.results, r.err
}

func newTestStore(t *testing.T, records ...*core.EmbeddingRecord) *store.Store {
	t.Helper()
	backend, err := fs.NewBackend(t.TempDir())
	require.NoError(t, err)
	s, err := store.NewStore(backend, "mock-embedder")
	require.NoError(t, err)
	if len(records) > 0 {
		require.NoError(t, s.Add(records...))
	}
	return s
}

func TestNewSearcher(t *testing.T) {
	embeddingStore := newTestStore(t)
	embedder := mock.NewMockEmbedder()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(embeddingStore, embedder)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(embeddingStore, embedder, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(embeddingStore, embedder, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewSearcher(nil, embedder)
		assert.Equal(t, ErrStoreRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewSearcher(embeddingStore, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestFindCandidates_EmptyStore(t *testing.T) {
	searcher, err := NewSearcher(newTestStore(t), mock.NewMockEmbedder())
	require.NoError(t, err)

	results, err := searcher.FindCandidates(context.Background(), "grace", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindCandidates_VectorStrategy(t *testing.T) {
	embeddingStore := newTestStore(t,
		embeddingRecord("a", "exact", []float32{1, 0}),
		embeddingRecord("b", "orthogonal", []float32{0, 1}),
		embeddingRecord("c", "diagonal", []float32{0.7, 0.7}),
	)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedQueryFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	searcher, err := NewSearcher(embeddingStore, embedder)
	require.NoError(t, err)

	results, err := searcher.FindCandidates(context.Background(), "grace", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Id)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)
	assert.Equal(t, "c", results[1].Id)
}

func TestFindCandidates_EmbeddingFailureFallsBackToSample(t *testing.T) {
	embeddingStore := newTestStore(t,
		embeddingRecord("a", "a", []float32{1, 0}),
		embeddingRecord("b", "b", []float32{0, 1}),
		embeddingRecord("c", "c", []float32{0.5, 0.5}),
	)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedQueryFunc = func(_ context.Context, _ string) ([]float32, error) {
		return nil, errors.New("model endpoint down")
	}

	searcher, err := NewSearcher(embeddingStore, embedder,
		WithRandomSource(rand.New(rand.NewSource(42))))
	require.NoError(t, err)

	results, err := searcher.FindCandidates(context.Background(), "grace", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	for _, candidate := range results {
		assert.Zero(t, candidate.Similarity)
	}
}

func TestFindCandidates_RemoteStrategy(t *testing.T) {
	// Zero-magnitude vectors are skipped by the local scan, so the
	// remote tier gets its turn.
	embeddingStore := newTestStore(t,
		embeddingRecord("a", "a", []float32{0, 0}),
		embeddingRecord("b", "b", []float32{0, 0}),
	)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedQueryFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	t.Run("remote results used", func(t *testing.T) {
		remote := &stubRemote{results: []core.ScoredCandidate{
			{IllustrationRecord: core.IllustrationRecord{Id: "r1", Title: "remote hit"}, Similarity: 0.9},
		}}
		searcher, err := NewSearcher(embeddingStore, embedder, WithRemoteRanker(remote))
		require.NoError(t, err)

		results, err := searcher.FindCandidates(context.Background(), "grace", 5)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "r1", results[0].Id)
		assert.Equal(t, 1, remote.calls)
	})

	t.Run("remote failure falls back to sample", func(t *testing.T) {
		remote := &stubRemote{err: errors.New("remote unavailable")}
		searcher, err := NewSearcher(embeddingStore, embedder,
			WithRemoteRanker(remote),
			WithRandomSource(rand.New(rand.NewSource(7))))
		require.NoError(t, err)

		results, err := searcher.FindCandidates(context.Background(), "grace", 5)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})
}

func TestFindCandidatesWithMonitor(t *testing.T) {
	embeddingStore := newTestStore(t,
		embeddingRecord("a", "a", []float32{1, 0}),
	)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedQueryFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	searcher, err := NewSearcher(embeddingStore, embedder)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	results, err := searcher.FindCandidatesWithMonitor(context.Background(), "grace", 5, monitor)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "grace", monitor.query)
	assert.Equal(t, StrategyVector, monitor.strategy)
	assert.Len(t, monitor.finished, 1)
}

type recordingMonitor struct {
	noopMonitor
	query    string
	strategy string
	finished []core.ScoredCandidate
}

func (m *recordingMonitor) Start(query string) { m.query = query }

func (m *recordingMonitor) Finish(strategy string, results []core.ScoredCandidate) {
	m.strategy = strategy
	m.finished = results
}
