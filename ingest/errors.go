package ingest

import "errors"

var (
	// ErrStoreRequired is returned when an embedding store is not provided.
	ErrStoreRequired = errors.New("embedding store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")
)
