package mock

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/greation/sermonkit/ai"
)

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
type MockEmbedder struct {
	// EmbedDocumentFunc is called by EmbedDocument if set.
	// If nil, uses default deterministic behavior.
	EmbedDocumentFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedDocumentsFunc is called by EmbedDocuments if set.
	EmbedDocumentsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQueryFunc is called by EmbedQuery if set.
	EmbedQueryFunc func(ctx context.Context, text string) ([]float32, error)

	// ModelName is reported by Model. Defaults to "mock-embedder".
	ModelName string

	callCount int
}

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// Model reports the mock model identity.
func (m *MockEmbedder) Model() string {
	if m.ModelName == "" {
		return "mock-embedder"
	}
	return m.ModelName
}

// EmbedDocument generates a deterministic embedding based on text hash.
func (m *MockEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedDocumentFunc != nil {
		return m.EmbedDocumentFunc(ctx, text)
	}

	if strings.TrimSpace(text) == "" {
		return nil, ai.ErrEmptyText
	}
	return generateDeterministicVector(text, 384), nil
}

// EmbedDocuments generates deterministic embeddings for multiple texts.
func (m *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedDocumentsFunc != nil {
		return m.EmbedDocumentsFunc(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, ai.ErrEmptyText
		}
		vectors[i] = generateDeterministicVector(text, 384)
	}
	return vectors, nil
}

// EmbedQuery generates a deterministic embedding for a query.
// The default behavior shares the document embedding space, so a query
// equal to a document's text ranks that document first.
func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedQueryFunc != nil {
		return m.EmbedQueryFunc(ctx, text)
	}

	if strings.TrimSpace(text) == "" {
		return nil, ai.ErrEmptyText
	}
	return generateDeterministicVector(text, 384), nil
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedDocumentFunc = nil
	m.EmbedDocumentsFunc = nil
	m.EmbedQueryFunc = nil
}

// generateDeterministicVector creates a deterministic embedding vector from text.
// It uses FNV hash to ensure the same text always produces the same vector.
func generateDeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		// Simple pseudo-random generation based on seed and index
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000) / 1000.0
	}

	// Normalize to unit vector
	var sumSquares float32
	for _, v := range vector {
		sumSquares += v * v
	}
	if sumSquares > 0 {
		norm := float32(1.0 / math.Sqrt(float64(sumSquares)))
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}
