package openai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/greation/sermonkit/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
// Transient failures are retried a bounded number of times with a fixed
// delay; exhausted retries surface the last error so callers can degrade.
type Embedder struct {
	embedder       embeddings.Embedder
	model          string
	maxAttempts    int
	retryDelay     time.Duration
	requestTimeout time.Duration
	logger         *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(config.Token),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder:       embedder,
		model:          config.EmbeddingModel,
		maxAttempts:    config.MaxAttempts,
		retryDelay:     config.RetryDelay,
		requestTimeout: config.RequestTimeout,
		logger:         slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// Model reports the configured embedding model identity.
func (e *Embedder) Model() string {
	return e.model
}

// EmbedDocument generates an embedding for a single corpus document.
func (e *Embedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ai.ErrEmptyText
	}

	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		e.logger.Warn("embedder returned empty result")
		return []float32{}, nil
	}
	return vectors[0], nil
}

// EmbedDocuments generates embeddings for multiple corpus documents.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, ai.ErrEmptyText
		}
	}

	e.logger.Debug("generating document embeddings", "count", len(texts))

	var vectors [][]float32
	err := e.withRetry(ctx, func(callCtx context.Context) error {
		var err error
		vectors, err = e.embedder.EmbedDocuments(callCtx, texts)
		return err
	})
	if err != nil {
		e.logger.Error("failed to generate document embeddings", "count", len(texts), "err", err)
		return nil, err
	}

	return vectors, nil
}

// EmbedQuery generates an embedding for a live search query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ai.ErrEmptyText
	}

	e.logger.Debug("generating query embedding", "length", len(text))

	var vector []float32
	err := e.withRetry(ctx, func(callCtx context.Context) error {
		var err error
		vector, err = e.embedder.EmbedQuery(callCtx, text)
		return err
	})
	if err != nil {
		e.logger.Error("failed to generate query embedding", "err", err)
		return nil, err
	}

	return vector, nil
}

// withRetry runs op up to maxAttempts times with a fixed inter-attempt
// delay, applying the per-call timeout to each attempt.
func (e *Embedder) withRetry(ctx context.Context, op func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		callCtx := ctx
		var cancel context.CancelFunc
		if e.requestTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, e.requestTimeout)
		}
		lastErr = op(callCtx)
		if cancel != nil {
			cancel()
		}
		if lastErr == nil {
			if attempt > 1 {
				e.logger.Debug("embedding succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		// The caller canceled; retrying cannot help.
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempt == e.maxAttempts {
			break
		}

		e.logger.Debug("embedding attempt failed, will retry",
			"attempt", attempt, "maxAttempts", e.maxAttempts, "err", lastErr)

		timer := time.NewTimer(e.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
