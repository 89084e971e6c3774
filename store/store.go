package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/greation/sermonkit/blob"
	"github.com/greation/sermonkit/core"
)

// Store holds the embedding records in memory, keyed by illustration id,
// and persists them as one JSON document through a blob backend. It is the
// working set at query time: loaded wholesale, read-mostly, single-writer.
//
// Insertion order is preserved and exposed through All; the ranker relies
// on it as the documented tie-break.
type Store struct {
	mu      sync.RWMutex
	backend blob.Backend
	key     string
	model   string
	records map[string]*core.EmbeddingRecord
	order   []string
	loaded  bool
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the blob key the store persists under.
// Default is DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store persisting through backend, tied to the given
// embedding model identity.
func NewStore(backend blob.Backend, model string, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	if model == "" {
		return nil, ErrModelRequired
	}

	s := &Store{
		backend: backend,
		key:     DefaultKey,
		model:   model,
		records: make(map[string]*core.EmbeddingRecord),
		logger:  slog.Default().With("component", "embedding-store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Model reports the embedding model identity this store is tied to.
func (s *Store) Model() string {
	return s.model
}

// Load reads the persisted document into memory, replacing the current
// working set. A missing document leaves the store empty, which is a valid
// state that triggers the one-time bulk-build workflow.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.backend.Fetch(ctx, s.key)
	if errors.Is(err, blob.ErrNotFound) {
		s.mu.Lock()
		s.records = make(map[string]*core.EmbeddingRecord)
		s.order = nil
		s.loaded = true
		s.mu.Unlock()
		s.logger.Info("no persisted embeddings found, starting empty", "key", s.key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load embeddings: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode embeddings document: %w", err)
	}
	if doc.Version > DocumentVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	if doc.Model != "" && doc.Model != s.model {
		return fmt.Errorf("%w: document %q, store %q", ErrModelMismatch, doc.Model, s.model)
	}

	records := make(map[string]*core.EmbeddingRecord, len(doc.Embeddings))
	order := make([]string, 0, len(doc.Embeddings))
	for i := range doc.Embeddings {
		record := doc.Embeddings[i]
		if _, exists := records[record.Id]; exists {
			s.logger.Warn("duplicate id in persisted document, keeping first", "id", record.Id)
			continue
		}
		records[record.Id] = &record
		order = append(order, record.Id)
	}

	s.mu.Lock()
	s.records = records
	s.order = order
	s.loaded = true
	s.mu.Unlock()

	s.logger.Debug("loaded embedding store", "key", s.key, "records", len(order))
	return nil
}

// Save persists the current working set wholesale. The write replaces the
// previous document atomically from the caller's perspective; failures are
// surfaced so the caller never assumes memory and storage agree.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	doc := Document{
		Version:    DocumentVersion,
		Model:      s.model,
		Count:      len(s.order),
		UpdatedAt:  time.Now().UTC(),
		Embeddings: make([]core.EmbeddingRecord, 0, len(s.order)),
	}
	for _, id := range s.order {
		doc.Embeddings = append(doc.Embeddings, *s.records[id])
	}
	s.mu.RUnlock()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode embeddings document: %w", err)
	}

	if err := s.backend.Store(ctx, s.key, data); err != nil {
		return fmt.Errorf("persist embeddings: %w", err)
	}

	s.logger.Debug("persisted embedding store", "key", s.key, "records", doc.Count)
	return nil
}

// Has reports whether an id exists in the working set. O(1); the sync
// engine's set difference depends on it.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[id]
	return ok
}

// Get returns the record for id, or nil when absent.
func (s *Store) Get(id string) *core.EmbeddingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id]
}

// Add merges records into the working set. New ids append to the insertion
// order; an existing id is replaced in place, keeping its position.
// Invalid records are rejected before any mutation.
func (s *Store) Add(records ...*core.EmbeddingRecord) error {
	for _, record := range records {
		if err := core.ValidateEmbeddingRecord(record); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		if _, exists := s.records[record.Id]; !exists {
			s.order = append(s.order, record.Id)
		}
		s.records[record.Id] = record
	}
	return nil
}

// Remove deletes records by id, preserving the order of the rest.
// Unknown ids are ignored. Returns the number removed.
func (s *Store) Remove(ids ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, id := range ids {
		if _, ok := s.records[id]; !ok {
			continue
		}
		delete(s.records, id)
		removed++
	}
	if removed > 0 {
		order := make([]string, 0, len(s.order)-removed)
		for _, id := range s.order {
			if _, ok := s.records[id]; ok {
				order = append(order, id)
			}
		}
		s.order = order
	}
	return removed
}

// All returns the working set in insertion order.
// The returned slice is a copy; records are shared.
func (s *Store) All() []*core.EmbeddingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*core.EmbeddingRecord, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.records[id])
	}
	return records
}

// Count returns the number of records in the working set.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Loaded reports whether Load has completed since creation or the last
// Invalidate.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Invalidate drops the in-memory working set. The next Load rereads the
// persisted document.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*core.EmbeddingRecord)
	s.order = nil
	s.loaded = false
}

// Reload invalidates and loads in one step.
func (s *Store) Reload(ctx context.Context) error {
	s.Invalidate()
	return s.Load(ctx)
}
