package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Document and query embeddings must come from the same model so
// their similarity comparison is valid.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedDocument generates an embedding for one corpus document.
	// Empty or whitespace-only text is rejected with ErrEmptyText.
	// Returns an error if generation fails after bounded retries; callers
	// treat that as "no embedding available", not as fatal.
	EmbedDocument(ctx context.Context, text string) ([]float32, error)

	// EmbedDocuments generates embeddings for multiple corpus documents.
	// The returned slice matches the order of the input texts.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a live search query, using the
	// query-optimized encoding of the same embedding space as documents.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Model reports the embedding model identity. Persisted vector sets
	// record it so incompatible embedding spaces are never mixed.
	Model() string
}

// Analyst produces the generative artifacts of the assistant: draft
// analysis, editorial feedback, illustration curation, and study guide
// composition. Each method speaks a narrow JSON contract with the
// underlying model; malformed responses surface as errors, never panics.
// Implementations must be thread-safe for concurrent use.
type Analyst interface {
	// AnalyzeDraft distills a sermon draft into themes, emotional tones,
	// related books, and a two-sentence summary.
	AnalyzeDraft(ctx context.Context, draft string) (*DraftAnalysis, error)

	// ReviewDraft critiques the draft's logical coherence and turns
	// abstract applications into concrete action items.
	ReviewDraft(ctx context.Context, draft string) (*DraftFeedback, error)

	// CurateIllustrations picks the best-fitting candidates for the
	// analyzed draft, each with a reason and a usage tip. Returned
	// recommendations reference candidates by their 1-based Index.
	CurateIllustrations(ctx context.Context, analysis *DraftAnalysis, candidates []CandidateSummary) ([]Recommendation, error)

	// ComposeStudyGuide writes a small-group study guide for the draft,
	// tailored by the audience profile. The guide is returned as opaque
	// markdown text.
	ComposeStudyGuide(ctx context.Context, draft string, profile GuideProfile) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and Analyst
// instances, ensuring they share configuration and resources.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Analyst returns the generative analysis service.
	// The returned Analyst is safe for concurrent use.
	Analyst() Analyst

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
