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

package search

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/greation/sermonkit/ai"
	"github.com/greation/sermonkit/core"
	"github.com/greation/sermonkit/store"
)

// Searcher retrieves illustration candidates for a query, falling through
// a chain of strategies: local vector scan, then an optional remote
// ranker, then a random sample so the caller always receives material.
type Searcher struct {
	store    *store.Store
	embedder ai.Embedder
	remote   RemoteRanker
	rng      *rand.Rand
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRemoteRanker adds a remote ranking tier consulted when the local
// vector scan yields no candidates.
func WithRemoteRanker(remote RemoteRanker) Option {
	return func(s *Searcher) error {
		s.remote = remote
		return nil
	}
}

// WithRandomSource sets the random source used by the sampling fallback.
// Default is a time-seeded source.
func WithRandomSource(rng *rand.Rand) Option {
	return func(s *Searcher) error {
		if rng != nil {
			s.rng = rng
		}
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(embeddingStore *store.Store, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if embeddingStore == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		store:    embeddingStore,
		embedder: embedder,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindCandidates retrieves up to topK illustration candidates for the query.
func (s *Searcher) FindCandidates(ctx context.Context, query string, topK int) ([]core.ScoredCandidate, error) {
	return s.FindCandidatesWithMonitor(ctx, query, topK, nil)
}

// FindCandidatesWithMonitor retrieves candidates with monitoring. The
// monitor receives callbacks at each stage of the strategy chain.
//
// An embedding failure is not an error: the chain simply moves on to the
// next strategy, so a degraded model endpoint never empties the results.
func (s *Searcher) FindCandidatesWithMonitor(ctx context.Context, query string, topK int, monitor SearchMonitor) ([]core.ScoredCandidate, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	monitor.Start(query)

	records := s.store.All()
	if len(records) == 0 {
		monitor.Finish(StrategyVector, nil)
		return []core.ScoredCandidate{}, nil
	}

	// 1. Local vector scan
	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		s.logger.Warn("error generating embedding for query, falling back", "err", err)
		vector = nil
	}
	monitor.AfterQueryEmbedding(vector)

	if len(vector) > 0 {
		candidates := Rank(vector, records, topK)
		monitor.AfterVectorSearch(candidates)
		if len(candidates) > 0 {
			monitor.Finish(StrategyVector, candidates)
			return candidates, nil
		}
	}

	// 2. Remote ranker, if configured
	if s.remote != nil && len(vector) > 0 {
		candidates, err := s.remote.FindSimilar(ctx, vector, topK)
		if err != nil {
			s.logger.Warn("remote ranker failed, falling back", "err", err)
		} else {
			monitor.AfterRemoteSearch(candidates)
			if len(candidates) > 0 {
				monitor.Finish(StrategyRemote, candidates)
				return candidates, nil
			}
		}
	}

	// 3. Random sample so the caller always has material to work with
	sampled := randomSample(records, topK, s.rng)
	monitor.FellBackToRandomSample(len(sampled))
	monitor.Finish(StrategySample, sampled)
	return sampled, nil
}
