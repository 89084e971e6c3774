package search

import (
	"sort"
	"strings"

	"github.com/greation/sermonkit/core"
)

// Lexical overlap weights. Subject tags carry the most signal, emotional
// tone less, raw keyword presence least.
const (
	subjectWeight = 5
	emotionWeight = 3
	keywordWeight = 1
)

// LexicalScore computes the keyword-overlap relevance of an illustration
// to a set of sermon themes and emotional tones:
//
//	matching subject tags x 5 + matching emotion tags x 3 +
//	theme keywords appearing in title or summary x 1
//
// A zero score is valid; callers still forward the top candidates so the
// downstream curation step can judge them in context.
func LexicalScore(record *core.IllustrationRecord, themes, emotions []string) int {
	score := 0

	if len(record.Subjects) > 0 && len(themes) > 0 {
		score += overlap(record.Subjects, themes) * subjectWeight
	}
	if len(record.Emotions) > 0 && len(emotions) > 0 {
		score += overlap(record.Emotions, emotions) * emotionWeight
	}

	// Case and whitespace are stripped before the substring check so
	// multi-word keywords still match across word boundaries.
	fullText := despace(record.Title + " " + record.Summary)
	for _, theme := range themes {
		if theme == "" {
			continue
		}
		if strings.Contains(fullText, despace(theme)) {
			score += keywordWeight
		}
	}

	return score
}

// TopLexical ranks records by LexicalScore and returns the top k as
// candidates, score carried in Similarity. All-zero scores still return
// the first k records so curation always has material to work with.
// Ties keep the records' original order.
func TopLexical(records []*core.EmbeddingRecord, themes, emotions []string, k int) []core.ScoredCandidate {
	if k <= 0 {
		k = DefaultTopK
	}

	candidates := make([]core.ScoredCandidate, 0, len(records))
	for _, record := range records {
		candidates = append(candidates, core.ScoredCandidate{
			IllustrationRecord: record.IllustrationRecord,
			Similarity:         float32(LexicalScore(&record.IllustrationRecord, themes, emotions)),
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

func despace(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

func overlap(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}
	matches := 0
	for _, s := range b {
		if set[s] {
			matches++
		}
	}
	return matches
}
