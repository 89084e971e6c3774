package search

import (
	"sort"

	"github.com/greation/sermonkit/core"
)

// DefaultTopK is the candidate count handed to downstream curation.
const DefaultTopK = 30

// Rank scores every record against the query vector by cosine similarity
// and returns up to k candidates in descending similarity order. A full
// linear scan; no index structure is kept, which is fine at this scale
// (thousands of records).
//
// Records whose embedding (or the query itself) has zero magnitude have
// undefined similarity and are excluded rather than scored.
//
// Deterministic: identical query and records produce identical output.
// Ties keep the records' original order, which is the store's insertion
// order.
func Rank(queryVector []float32, records []*core.EmbeddingRecord, k int) []core.ScoredCandidate {
	if k <= 0 {
		k = DefaultTopK
	}
	if len(records) == 0 || isZero(queryVector) {
		return []core.ScoredCandidate{}
	}

	candidates := make([]core.ScoredCandidate, 0, len(records))
	for _, record := range records {
		if isZero(record.Embedding) {
			continue
		}
		candidates = append(candidates, core.ScoredCandidate{
			IllustrationRecord: record.IllustrationRecord,
			Similarity:         CosineSimilarity(queryVector, record.Embedding),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
