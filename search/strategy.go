package search

import (
	"context"
	"math/rand"

	"github.com/greation/sermonkit/core"
)

// Strategy names reported to the monitor on Finish.
const (
	StrategyVector = "vector"
	StrategyRemote = "remote"
	StrategySample = "sample"
)

// RemoteRanker ranks candidates on a remote service given a query vector.
// It is consulted only when the local vector scan produces nothing, so a
// deployment without one loses nothing but the extra fallback tier.
type RemoteRanker interface {
	FindSimilar(ctx context.Context, vector []float32, topK int) ([]core.ScoredCandidate, error)
}

// randomSample picks up to k records uniformly without replacement,
// preserving nothing about their order. Similarity is zero for sampled
// candidates since no ranking took place.
func randomSample(records []*core.EmbeddingRecord, k int, rng *rand.Rand) []core.ScoredCandidate {
	if k <= 0 {
		k = DefaultTopK
	}
	if len(records) == 0 {
		return []core.ScoredCandidate{}
	}

	indexes := rng.Perm(len(records))
	if len(indexes) > k {
		indexes = indexes[:k]
	}

	sampled := make([]core.ScoredCandidate, 0, len(indexes))
	for _, i := range indexes {
		sampled = append(sampled, core.ScoredCandidate{
			IllustrationRecord: records[i].IllustrationRecord,
		})
	}
	return sampled
}
