package store

import (
	"time"

	"github.com/greation/sermonkit/core"
)

// DocumentVersion is the current persisted document schema version.
const DocumentVersion = 1

// DefaultKey is the blob key the store persists under when none is given.
const DefaultKey = "embeddings.json"

// Document is the persisted form of the embedding store: one JSON blob
// read and replaced wholesale. Model records the embedding model identity
// so ranking never mixes incompatible embedding spaces.
type Document struct {
	Version    int                    `json:"version"`
	Model      string                 `json:"model"`
	Count      int                    `json:"count"`
	UpdatedAt  time.Time              `json:"updated_at,omitempty"`
	Embeddings []core.EmbeddingRecord `json:"embeddings"`
}
