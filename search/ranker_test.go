package search

import (
	"testing"

	"github.com/greation/sermonkit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddingRecord(id, title string, vector []float32) *core.EmbeddingRecord {
	return &core.EmbeddingRecord{
		IllustrationRecord: core.IllustrationRecord{
			Id:    id,
			Title: title,
		},
		Embedding: vector,
	}
}

func TestRank(t *testing.T) {
	t.Run("ranks by descending similarity", func(t *testing.T) {
		records := []*core.EmbeddingRecord{
			embeddingRecord("a", "exact match", []float32{1, 0}),
			embeddingRecord("b", "orthogonal", []float32{0, 1}),
			embeddingRecord("c", "diagonal", []float32{0.7, 0.7}),
		}

		results := Rank([]float32{1, 0}, records, 2)
		require.Len(t, results, 2)

		assert.Equal(t, "a", results[0].Id)
		assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)

		assert.Equal(t, "c", results[1].Id)
		assert.InDelta(t, 0.7071, results[1].Similarity, 1e-3)
	})

	t.Run("truncates to k", func(t *testing.T) {
		records := []*core.EmbeddingRecord{
			embeddingRecord("a", "a", []float32{1, 0}),
			embeddingRecord("b", "b", []float32{0.9, 0.1}),
			embeddingRecord("c", "c", []float32{0.8, 0.2}),
		}

		results := Rank([]float32{1, 0}, records, 1)
		require.Len(t, results, 1)
		assert.Equal(t, "a", results[0].Id)
	})

	t.Run("non-positive k uses default", func(t *testing.T) {
		records := []*core.EmbeddingRecord{
			embeddingRecord("a", "a", []float32{1, 0}),
		}
		results := Rank([]float32{1, 0}, records, 0)
		assert.Len(t, results, 1)
	})

	t.Run("skips zero-magnitude records", func(t *testing.T) {
		records := []*core.EmbeddingRecord{
			embeddingRecord("a", "a", []float32{0, 0}),
			embeddingRecord("b", "b", []float32{1, 0}),
		}

		results := Rank([]float32{1, 0}, records, 10)
		require.Len(t, results, 1)
		assert.Equal(t, "b", results[0].Id)
	})

	t.Run("zero query vector yields no candidates", func(t *testing.T) {
		records := []*core.EmbeddingRecord{
			embeddingRecord("a", "a", []float32{1, 0}),
		}
		assert.Empty(t, Rank([]float32{0, 0}, records, 10))
	})

	t.Run("no records yields no candidates", func(t *testing.T) {
		assert.Empty(t, Rank([]float32{1, 0}, nil, 10))
	})

	t.Run("ties keep insertion order", func(t *testing.T) {
		records := []*core.EmbeddingRecord{
			embeddingRecord("first", "first", []float32{2, 0}),
			embeddingRecord("second", "second", []float32{3, 0}),
			embeddingRecord("third", "third", []float32{1, 0}),
		}

		results := Rank([]float32{1, 0}, records, 3)
		require.Len(t, results, 3)
		assert.Equal(t, "first", results[0].Id)
		assert.Equal(t, "second", results[1].Id)
		assert.Equal(t, "third", results[2].Id)
	})
}
