package mock

import "github.com/greation/sermonkit/ai"

// MockProvider is a test double for ai.AIProvider that hands out mock
// services.
type MockProvider struct {
	MockEmbedder *MockEmbedder
	MockAnalyst  *MockAnalyst
}

var _ ai.AIProvider = (*MockProvider)(nil)

// NewMockProvider creates a provider with default mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		MockEmbedder: NewMockEmbedder(),
		MockAnalyst:  NewMockAnalyst(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.MockEmbedder
}

// Analyst returns the mock generative service.
func (p *MockProvider) Analyst() ai.Analyst {
	return p.MockAnalyst
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}
