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

package sermonkit

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/greation/sermonkit/ai"
	"github.com/greation/sermonkit/blob"
	"github.com/greation/sermonkit/core"
	"github.com/greation/sermonkit/ingest"
	"github.com/greation/sermonkit/library"
	"github.com/greation/sermonkit/search"
	"github.com/greation/sermonkit/store"
)

var (
	// ErrLibraryRequired is returned when a library provider is not provided.
	ErrLibraryRequired = errors.New("library provider required")

	// ErrBackendRequired is returned when a blob backend is not provided.
	ErrBackendRequired = errors.New("blob backend required")

	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")
)

// Assistant is the top-level entry point. It owns the embedding store,
// the sync engine, and the searcher, and exposes the sermon preparation
// operations over them.
type Assistant struct {
	provider ai.AIProvider
	library  library.Provider
	store    *store.Store
	searcher *search.Searcher
	engine   *ingest.Engine
	pool     *ants.Pool
	logger   *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	storeKey  string
	poolSize  int
	reconcile bool
	remote    search.RemoteRanker
	logger    *slog.Logger
}

// WithStoreKey sets the blob key the embedding store persists under.
// Default is store.DefaultKey.
func WithStoreKey(key string) AssistantOption {
	return func(o *assistantOptions) {
		o.storeKey = key
	}
}

// WithPoolSize sets the worker pool size for concurrent generative calls.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) AssistantOption {
	return func(o *assistantOptions) {
		if size >= 1 {
			o.poolSize = size
		}
	}
}

// WithReconcile lets sync passes prune records that disappeared from the
// library and re-embed records whose source text changed.
func WithReconcile() AssistantOption {
	return func(o *assistantOptions) {
		o.reconcile = true
	}
}

// WithRemoteRanker adds a remote ranking tier to candidate search.
func WithRemoteRanker(remote search.RemoteRanker) AssistantOption {
	return func(o *assistantOptions) {
		o.remote = remote
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AssistantOption {
	return func(o *assistantOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewAssistant wires an assistant from its three external dependencies:
// the illustration library, the blob backend the embedding store persists
// through, and the AI provider.
func NewAssistant(
	libraryProvider library.Provider,
	backend blob.Backend,
	provider ai.AIProvider,
	opts ...AssistantOption,
) (*Assistant, error) {
	if libraryProvider == nil {
		return nil, ErrLibraryRequired
	}
	if backend == nil {
		return nil, ErrBackendRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	options := &assistantOptions{
		poolSize: runtime.NumCPU() / 2,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.poolSize < 1 {
		options.poolSize = 1
	}

	storeOpts := []store.Option{store.WithLogger(options.logger)}
	if options.storeKey != "" {
		storeOpts = append(storeOpts, store.WithKey(options.storeKey))
	}
	embeddingStore, err := store.NewStore(backend, provider.Embedder().Model(), storeOpts...)
	if err != nil {
		return nil, err
	}

	searchOpts := []search.Option{search.WithLogger(options.logger)}
	if options.remote != nil {
		searchOpts = append(searchOpts, search.WithRemoteRanker(options.remote))
	}
	searcher, err := search.NewSearcher(embeddingStore, provider.Embedder(), searchOpts...)
	if err != nil {
		return nil, err
	}

	engineOpts := []ingest.Option{ingest.WithLogger(options.logger)}
	if options.reconcile {
		engineOpts = append(engineOpts, ingest.WithReconcile())
	}
	engine, err := ingest.NewEngine(embeddingStore, provider.Embedder(), engineOpts...)
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(options.poolSize)
	if err != nil {
		return nil, err
	}

	return &Assistant{
		provider: provider,
		library:  libraryProvider,
		store:    embeddingStore,
		searcher: searcher,
		engine:   engine,
		pool:     pool,
		logger:   options.logger,
	}, nil
}

// Close releases the worker pool and the AI provider. The assistant
// should not be used after calling Close.
func (a *Assistant) Close() error {
	a.pool.Release()
	return a.provider.Close()
}

// Store exposes the embedding store for inspection and maintenance.
func (a *Assistant) Store() *store.Store {
	return a.store
}

// Sync refreshes the embedding store from the illustration library.
func (a *Assistant) Sync(ctx context.Context) (*core.SyncReport, error) {
	listing, err := a.library.List(ctx)
	if err != nil {
		return nil, err
	}
	return a.engine.Sync(ctx, listing)
}

// SearchIllustrations retrieves up to topK illustrations relevant to the
// query text.
func (a *Assistant) SearchIllustrations(ctx context.Context, query string, topK int) ([]core.ScoredCandidate, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return a.searcher.FindCandidates(ctx, query, topK)
}

// AnalyzeDraft distills a sermon draft into themes, emotional tones,
// related books, and a summary.
func (a *Assistant) AnalyzeDraft(ctx context.Context, draft string) (*ai.DraftAnalysis, error) {
	return a.provider.Analyst().AnalyzeDraft(ctx, draft)
}

// ReviewDraft critiques the draft's logic and application.
func (a *Assistant) ReviewDraft(ctx context.Context, draft string) (*ai.DraftFeedback, error) {
	return a.provider.Analyst().ReviewDraft(ctx, draft)
}

// RecommendedIllustration is a curated pick resolved back to its full
// record.
type RecommendedIllustration struct {
	core.IllustrationRecord

	// Reason explains what the illustration contributes to the draft.
	Reason string
	// UsageTip suggests where in the sermon to deploy it.
	UsageTip string
}

// IllustrationAdvice is the result of analyzing a draft and curating
// illustrations for it.
type IllustrationAdvice struct {
	Analysis *ai.DraftAnalysis
	Picks    []RecommendedIllustration
}

// RecommendIllustrations analyzes the draft, shortlists stored
// illustrations by keyword overlap with the extracted themes, and has the
// model curate the best fits from the shortlist.
func (a *Assistant) RecommendIllustrations(ctx context.Context, draft string) (*IllustrationAdvice, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	analysis, err := a.provider.Analyst().AnalyzeDraft(ctx, draft)
	if err != nil {
		return nil, err
	}

	shortlist := search.TopLexical(a.store.All(), analysis.Themes, analysis.Emotions, search.DefaultTopK)
	if len(shortlist) == 0 {
		return &IllustrationAdvice{Analysis: analysis}, nil
	}

	candidates := make([]ai.CandidateSummary, len(shortlist))
	for i, candidate := range shortlist {
		candidates[i] = ai.CandidateSummary{
			Index:    i + 1,
			Title:    candidate.Title,
			Summary:  candidate.Summary,
			Subjects: candidate.Subjects,
		}
	}

	recommendations, err := a.provider.Analyst().CurateIllustrations(ctx, analysis, candidates)
	if err != nil {
		return nil, err
	}

	picks := make([]RecommendedIllustration, 0, len(recommendations))
	for _, rec := range recommendations {
		record, ok := a.resolveRecommendation(shortlist, rec)
		if !ok {
			a.logger.Warn("recommendation does not match any candidate, discarding",
				"index", rec.Index, "title", rec.Title)
			continue
		}
		picks = append(picks, RecommendedIllustration{
			IllustrationRecord: record,
			Reason:             rec.Reason,
			UsageTip:           rec.UsageTip,
		})
	}

	return &IllustrationAdvice{Analysis: analysis, Picks: picks}, nil
}

// resolveRecommendation maps a curated pick back to its candidate record,
// by 1-based index first and by exact title as a fallback.
func (a *Assistant) resolveRecommendation(shortlist []core.ScoredCandidate, rec ai.Recommendation) (core.IllustrationRecord, bool) {
	if rec.Index >= 1 && rec.Index <= len(shortlist) {
		return shortlist[rec.Index-1].IllustrationRecord, true
	}
	for _, candidate := range shortlist {
		if candidate.Title == rec.Title {
			return candidate.IllustrationRecord, true
		}
	}
	return core.IllustrationRecord{}, false
}

// BuildStudyGuide composes a small-group study guide for the draft,
// tailored to the audience segment.
func (a *Assistant) BuildStudyGuide(ctx context.Context, segment core.Segment, draft string) (string, error) {
	profile, ok := core.SegmentProfiles[segment]
	if !ok {
		return "", core.ErrUnknownSegment
	}
	return a.provider.Analyst().ComposeStudyGuide(ctx, draft, ai.GuideProfile{
		Audience:        profile.Label,
		AgeRange:        profile.AgeRange,
		Characteristics: profile.Characteristics,
		Tone:            profile.Tone,
		QuizLevel:       profile.QuizLevel,
	})
}

// DraftWorkup bundles every generative artifact for one draft.
type DraftWorkup struct {
	Advice   *IllustrationAdvice
	Feedback *ai.DraftFeedback
	Guide    string
}

// PrepareDraft runs illustration curation, editorial feedback, and study
// guide composition for the draft concurrently. The first error wins;
// artifacts that completed before the error are discarded.
func (a *Assistant) PrepareDraft(ctx context.Context, segment core.Segment, draft string) (*DraftWorkup, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if _, ok := core.SegmentProfiles[segment]; !ok {
		return nil, core.ErrUnknownSegment
	}

	workup := &DraftWorkup{}
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	tasks := []func(){
		func() {
			advice, err := a.RecommendIllustrations(ctx, draft)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			workup.Advice = advice
			mu.Unlock()
		},
		func() {
			feedback, err := a.ReviewDraft(ctx, draft)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			workup.Feedback = feedback
			mu.Unlock()
		},
		func() {
			guide, err := a.BuildStudyGuide(ctx, segment, draft)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			workup.Guide = guide
			mu.Unlock()
		},
	}

	for _, task := range tasks {
		task := task
		wg.Add(1)
		if err := a.pool.Submit(func() {
			defer wg.Done()
			task()
		}); err != nil {
			wg.Done()
			fail(err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return workup, nil
}

// ensureLoaded lazily loads the embedding store on first use.
func (a *Assistant) ensureLoaded(ctx context.Context) error {
	if a.store.Loaded() {
		return nil
	}
	return a.store.Load(ctx)
}
