// Copyright 2026 Greation Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/greation/sermonkit/ai"
	"github.com/greation/sermonkit/core"
	"github.com/greation/sermonkit/search"
	"github.com/greation/sermonkit/store"
)

// Pacing defaults. Embedding endpoints shared with interactive traffic
// get a breather during long bulk builds.
const (
	DefaultPauseEvery = 30
	DefaultPauseDelay = 2 * time.Second
)

// Engine synchronizes the embedding store with a source listing. One
// engine per store; Sync is not safe for concurrent calls.
type Engine struct {
	store      *store.Store
	embedder   ai.Embedder
	pauseEvery int
	pauseDelay time.Duration
	reconcile  bool
	progress   *ProgressTracker
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithPacing adjusts how often the engine pauses during bulk embedding
// and for how long. every < 1 disables pacing.
func WithPacing(every int, delay time.Duration) Option {
	return func(e *Engine) error {
		e.pauseEvery = every
		e.pauseDelay = delay
		return nil
	}
}

// WithReconcile enables pruning of records that disappeared from the
// listing and re-embedding of records whose source text changed. Off by
// default: a routine sync only ever adds.
func WithReconcile() Option {
	return func(e *Engine) error {
		e.reconcile = true
		return nil
	}
}

// WithProgress attaches a progress tracker updated once per listing item.
func WithProgress(progress *ProgressTracker) Option {
	return func(e *Engine) error {
		e.progress = progress
		return nil
	}
}

// NewEngine creates a sync engine over the given store and embedder.
func NewEngine(embeddingStore *store.Store, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if embeddingStore == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		store:      embeddingStore,
		embedder:   embedder,
		pauseEvery: DefaultPauseEvery,
		pauseDelay: DefaultPauseDelay,
		logger:     slog.Default().With("component", "sync-engine"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Sync merges the listing into the store. Items already present are left
// untouched, new items are embedded one at a time, and the store is
// persisted only when the pass changed something. A single item whose
// embedding fails after retries is dropped from this pass and will be
// picked up again next time.
//
// Cancellation is honored between items; work completed before the
// cancellation is persisted so it is not repeated. A persist failure
// comes back as the returned error alongside the report.
func (e *Engine) Sync(ctx context.Context, listing []core.IllustrationRecord) (*core.SyncReport, error) {
	if !e.store.Loaded() {
		if err := e.store.Load(ctx); err != nil {
			return nil, err
		}
	}

	if e.progress != nil {
		e.progress.Start()
		defer e.progress.Finish()
	}

	report := &core.SyncReport{}
	seen := make(map[string]bool, len(listing))
	embedded := 0

	for i := range listing {
		item := &listing[i]

		if err := ctx.Err(); err != nil {
			e.logger.Warn("sync cancelled, persisting partial progress",
				"processed", i, "of", len(listing))
			report, saveErr := e.finish(context.WithoutCancel(ctx), report)
			return report, errors.Join(err, saveErr)
		}

		if e.progress != nil {
			e.progress.Increment(1)
		}

		if err := core.ValidateIllustrationRecord(item); err != nil {
			e.logger.Warn("skipping invalid listing item", "id", item.Id, "err", err)
			report.Dropped++
			continue
		}
		seen[item.Id] = true

		if existing := e.store.Get(item.Id); existing != nil {
			if !e.reconcile {
				continue
			}
			if existing.Fingerprint == EmbeddingFingerprint(item) {
				continue
			}
			e.logger.Info("source text changed, re-embedding", "id", item.Id)
		}

		if !e.embed(ctx, item, report) {
			continue
		}
		embedded++

		if e.pauseEvery > 0 && embedded%e.pauseEvery == 0 {
			if err := sleep(ctx, e.pauseDelay); err != nil {
				e.logger.Warn("sync cancelled during pacing pause, persisting partial progress",
					"processed", i+1, "of", len(listing))
				report, saveErr := e.finish(context.WithoutCancel(ctx), report)
				return report, errors.Join(err, saveErr)
			}
		}
	}

	if e.reconcile {
		report.Removed = e.prune(seen)
	}

	return e.finish(ctx, report)
}

// embed generates and stores the vector for one listing item. Reports
// success; a failure is logged and counted, never fatal to the pass.
func (e *Engine) embed(ctx context.Context, item *core.IllustrationRecord, report *core.SyncReport) bool {
	text := BuildEmbeddingText(item)

	vector, err := e.embedder.EmbedDocument(ctx, text)
	if err != nil {
		e.logger.Warn("embedding failed, dropping item from this pass",
			"id", item.Id, "title", item.Title, "err", err)
		report.Dropped++
		return false
	}

	// Stored vectors are unit length, matching whatever scale the
	// endpoint happens to emit across model versions.
	record := &core.EmbeddingRecord{
		IllustrationRecord: *item,
		Embedding:          search.NormalizeVector(vector),
		Fingerprint:        core.FingerprintFromContent(text),
	}
	if err := e.store.Add(record); err != nil {
		e.logger.Warn("rejected embedding record", "id", item.Id, "err", err)
		report.Dropped++
		return false
	}

	report.Added++
	return true
}

// prune removes records whose ids are absent from the listing.
func (e *Engine) prune(seen map[string]bool) int {
	stranded := make([]string, 0)
	for _, record := range e.store.All() {
		if !seen[record.Id] {
			stranded = append(stranded, record.Id)
		}
	}
	if len(stranded) == 0 {
		return 0
	}
	e.logger.Info("pruning records missing from listing", "count", len(stranded))
	return e.store.Remove(stranded...)
}

// finish persists the store when the pass changed it and fills in the
// report totals. A persist failure is returned so the caller never
// mistakes freshly embedded records for saved ones.
func (e *Engine) finish(ctx context.Context, report *core.SyncReport) (*core.SyncReport, error) {
	report.Total = e.store.Count()

	var saveErr error
	if report.Added > 0 || report.Removed > 0 {
		if saveErr = e.store.Save(ctx); saveErr != nil {
			e.logger.Error("failed to persist embedding store", "err", saveErr)
		} else {
			report.Persisted = true
		}
	}

	e.logger.Info("sync pass complete",
		"added", report.Added,
		"dropped", report.Dropped,
		"removed", report.Removed,
		"total", report.Total,
		"persisted", report.Persisted)
	return report, saveErr
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
