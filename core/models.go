package core

import (
	"encoding/binary"
	"net/url"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint identifies the source text an embedding was computed from.
// Two records with the same composite text share the same fingerprint, so
// a changed fingerprint means the upstream item was edited.
type Fingerprint uint64

// FingerprintFromContent computes a deterministic fingerprint from text
// using BLAKE2b hashing. Identical content always produces the same value.
func FingerprintFromContent(text string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// IllustrationRecord is a single illustration (short anecdote or story) as
// listed by the source library. The Id is the source's key and is unique
// across a store. Every field except Id and Title is optional; empty
// optional fields are valid and must not break downstream formatting.
type IllustrationRecord struct {
	Id        string   `json:"id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary,omitempty"`
	Subjects  []string `json:"subjects,omitempty"` // topic tags, order irrelevant
	Emotions  []string `json:"emotions,omitempty"` // emotional tone tags, order irrelevant
	SourceURL string   `json:"source_url,omitempty"`
	Preacher  string   `json:"preacher,omitempty"`
}

// StartOffset extracts the playback start offset in seconds from the
// record's SourceURL ("t" query parameter). Returns 0 when the URL is
// absent, unparseable, or carries no offset.
func (r *IllustrationRecord) StartOffset() int {
	if r.SourceURL == "" {
		return 0
	}
	u, err := url.Parse(r.SourceURL)
	if err != nil {
		return 0
	}
	t := u.Query().Get("t")
	if t == "" {
		return 0
	}
	seconds, err := strconv.Atoi(t)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}

// EmbeddingRecord is an IllustrationRecord enriched with its embedding
// vector. Created once per illustration by the sync engine; immutable
// afterwards unless reconciliation detects the source text changed.
type EmbeddingRecord struct {
	IllustrationRecord
	Embedding   []float32   `json:"embedding"`
	Fingerprint Fingerprint `json:"fingerprint,omitempty"`
}

// ScoredCandidate is an illustration paired with its similarity to a query.
// Ephemeral: produced per search, never persisted. Similarity is cosine
// similarity in [-1, 1], or an equivalent rank score from a remote ranker.
type ScoredCandidate struct {
	IllustrationRecord
	Similarity float32 `json:"similarity"`
}

// SyncReport summarizes one reconciliation pass of the embedding store
// against a refreshed source listing.
type SyncReport struct {
	// Added is the number of new records embedded and merged into the store.
	Added int
	// Dropped counts listing items skipped because embedding generation
	// failed after retries.
	Dropped int
	// Removed counts stranded records pruned by reconciliation; always 0
	// unless reconciliation is enabled.
	Removed int
	// Total is the store size after the pass.
	Total int
	// Persisted reports whether the merged store was written back.
	Persisted bool
}
