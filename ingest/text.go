package ingest

import (
	"strings"

	"github.com/greation/sermonkit/core"
)

// BuildEmbeddingText composes the text an illustration is embedded from:
// title, summary, subject tags, and emotion tags, in that order. Tags are
// joined with ", " within a section and sections with " | "; empty
// sections are skipped so sparse records never produce stray separators.
func BuildEmbeddingText(record *core.IllustrationRecord) string {
	sections := make([]string, 0, 4)

	if record.Title != "" {
		sections = append(sections, record.Title)
	}
	if record.Summary != "" {
		sections = append(sections, record.Summary)
	}
	if len(record.Subjects) > 0 {
		sections = append(sections, strings.Join(record.Subjects, ", "))
	}
	if len(record.Emotions) > 0 {
		sections = append(sections, strings.Join(record.Emotions, ", "))
	}

	return strings.Join(sections, " | ")
}

// EmbeddingFingerprint fingerprints the composite text of a record. A
// changed fingerprint tells reconciliation the upstream item was edited
// and its vector is stale.
func EmbeddingFingerprint(record *core.IllustrationRecord) core.Fingerprint {
	return core.FingerprintFromContent(BuildEmbeddingText(record))
}
