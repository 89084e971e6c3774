package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := FingerprintFromContent("the prodigal son")
		b := FingerprintFromContent("the prodigal son")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content distinct fingerprints", func(t *testing.T) {
		a := FingerprintFromContent("the prodigal son")
		b := FingerprintFromContent("the good samaritan")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		assert.Equal(t, FingerprintFromContent(""), FingerprintFromContent(""))
	})
}

func TestStartOffset(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want int
	}{
		{"with offset", "https://youtu.be/abc123?t=754", 754},
		{"zero offset", "https://youtu.be/abc123?t=0", 0},
		{"no offset parameter", "https://youtu.be/abc123", 0},
		{"empty url", "", 0},
		{"non numeric offset", "https://youtu.be/abc123?t=12m", 0},
		{"negative offset", "https://youtu.be/abc123?t=-5", 0},
		{"malformed url", "://not a url", 0},
		{"offset among other parameters", "https://youtu.be/abc123?v=xyz&t=90", 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := IllustrationRecord{Id: "1", Title: "t", SourceURL: tt.url}
			assert.Equal(t, tt.want, record.StartOffset())
		})
	}
}

func TestParseSegment(t *testing.T) {
	t.Run("known segments", func(t *testing.T) {
		for _, s := range []string{"young_adults", "adults", "teens", "children"} {
			segment, err := ParseSegment(s)
			assert.NoError(t, err)
			assert.Equal(t, Segment(s), segment)
		}
	})

	t.Run("unknown segment", func(t *testing.T) {
		_, err := ParseSegment("seniors")
		assert.ErrorIs(t, err, ErrUnknownSegment)
	})

	t.Run("every segment has a complete profile", func(t *testing.T) {
		for segment, profile := range SegmentProfiles {
			assert.NotEmpty(t, profile.Label, "segment %s", segment)
			assert.NotEmpty(t, profile.AgeRange, "segment %s", segment)
			assert.NotEmpty(t, profile.Characteristics, "segment %s", segment)
			assert.NotEmpty(t, profile.Tone, "segment %s", segment)
			assert.NotEmpty(t, profile.QuizLevel, "segment %s", segment)
		}
	})
}
