package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministicVector(t *testing.T) {
	t.Run("same text gives same vector", func(t *testing.T) {
		a := generateDeterministicVector("the lost sheep", 384)
		b := generateDeterministicVector("the lost sheep", 384)
		assert.Equal(t, a, b)
	})

	t.Run("different text gives different vector", func(t *testing.T) {
		a := generateDeterministicVector("the lost sheep", 384)
		b := generateDeterministicVector("the sower", 384)
		assert.NotEqual(t, a, b)
	})

	t.Run("vectors are unit length", func(t *testing.T) {
		vector := generateDeterministicVector("the lost sheep", 384)

		var sumSquares float64
		for _, v := range vector {
			sumSquares += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, sumSquares, 1e-3)
	})
}

func TestMockEmbedder_CallCount(t *testing.T) {
	embedder := NewMockEmbedder()
	ctx := context.Background()

	_, err := embedder.EmbedDocument(ctx, "one")
	require.NoError(t, err)
	_, err = embedder.EmbedQuery(ctx, "two")
	require.NoError(t, err)

	assert.Equal(t, 2, embedder.CallCount())

	embedder.Reset()
	assert.Equal(t, 0, embedder.CallCount())
}
