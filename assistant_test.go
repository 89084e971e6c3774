package sermonkit

import (
	"context"
	"errors"
	"testing"

	"github.com/greation/sermonkit/ai"
	"github.com/greation/sermonkit/ai/mock"
	"github.com/greation/sermonkit/blob/fs"
	"github.com/greation/sermonkit/core"
	"github.com/greation/sermonkit/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLibrary() *library.StaticProvider {
	return &library.StaticProvider{Records: []core.IllustrationRecord{
		{
			Id:       "ill-1",
			Title:    "The Lost Sheep",
			Summary:  "A shepherd leaves ninety-nine to find one",
			Subjects: []string{"grace", "rescue"},
			Emotions: []string{"comfort"},
		},
		{
			Id:       "ill-2",
			Title:    "The Unmerciful Servant",
			Summary:  "A forgiven debtor refuses to forgive",
			Subjects: []string{"forgiveness"},
			Emotions: []string{"challenge"},
		},
		{
			Id:       "ill-3",
			Title:    "The Sower",
			Summary:  "Seed falls on four kinds of soil",
			Subjects: []string{"perseverance"},
			Emotions: []string{"hope"},
		},
	}}
}

func newTestAssistant(t *testing.T, provider ai.AIProvider, opts ...AssistantOption) *Assistant {
	t.Helper()
	backend, err := fs.NewBackend(t.TempDir())
	require.NoError(t, err)

	assistant, err := NewAssistant(sampleLibrary(), backend, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })
	return assistant
}

func TestNewAssistant(t *testing.T) {
	backend, err := fs.NewBackend(t.TempDir())
	require.NoError(t, err)
	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		assistant, err := NewAssistant(sampleLibrary(), backend, provider)
		require.NoError(t, err)
		assert.NotNil(t, assistant)
		assistant.Close()
	})

	t.Run("nil library", func(t *testing.T) {
		_, err := NewAssistant(nil, backend, provider)
		assert.Equal(t, ErrLibraryRequired, err)
	})

	t.Run("nil backend", func(t *testing.T) {
		_, err := NewAssistant(sampleLibrary(), nil, provider)
		assert.Equal(t, ErrBackendRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewAssistant(sampleLibrary(), backend, nil)
		assert.Equal(t, ErrProviderRequired, err)
	})
}

func TestAssistant_Sync(t *testing.T) {
	assistant := newTestAssistant(t, mock.NewMockProvider())

	report, err := assistant.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Added)
	assert.Equal(t, 3, report.Total)
	assert.True(t, report.Persisted)

	// A second pass changes nothing.
	report, err = assistant.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Added)
	assert.False(t, report.Persisted)
}

func TestAssistant_SearchIllustrations(t *testing.T) {
	provider := mock.NewMockProvider()
	assistant := newTestAssistant(t, provider)

	_, err := assistant.Sync(context.Background())
	require.NoError(t, err)

	results, err := assistant.SearchIllustrations(context.Background(), "a shepherd finding a lost sheep", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 2)
}

func TestAssistant_SearchIllustrations_EmptyStore(t *testing.T) {
	assistant := newTestAssistant(t, mock.NewMockProvider())

	results, err := assistant.SearchIllustrations(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAssistant_RecommendIllustrations(t *testing.T) {
	provider := mock.NewMockProvider()
	assistant := newTestAssistant(t, provider)

	_, err := assistant.Sync(context.Background())
	require.NoError(t, err)

	advice, err := assistant.RecommendIllustrations(context.Background(), "a draft about grace")
	require.NoError(t, err)
	require.NotNil(t, advice.Analysis)
	require.NotEmpty(t, advice.Picks)

	// The canned analysis extracts grace and forgiveness themes, so the
	// overlapping illustrations lead the shortlist.
	assert.Equal(t, "ill-1", advice.Picks[0].Id)
	assert.Equal(t, "canned reason", advice.Picks[0].Reason)
	assert.Equal(t, "canned tip", advice.Picks[0].UsageTip)
}

func TestAssistant_RecommendIllustrations_TitleFallback(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.MockAnalyst.CurateIllustrationsFunc = func(_ context.Context, _ *ai.DraftAnalysis, candidates []ai.CandidateSummary) ([]ai.Recommendation, error) {
		// The model dropped the index but echoed an exact title, plus one
		// pick that matches nothing.
		return []ai.Recommendation{
			{Index: 0, Title: "The Sower", Reason: "r", UsageTip: "t"},
			{Index: 0, Title: "Not In The Library", Reason: "r", UsageTip: "t"},
		}, nil
	}
	assistant := newTestAssistant(t, provider)

	_, err := assistant.Sync(context.Background())
	require.NoError(t, err)

	advice, err := assistant.RecommendIllustrations(context.Background(), "a draft")
	require.NoError(t, err)
	require.Len(t, advice.Picks, 1)
	assert.Equal(t, "ill-3", advice.Picks[0].Id)
}

func TestAssistant_RecommendIllustrations_EmptyStore(t *testing.T) {
	assistant := newTestAssistant(t, mock.NewMockProvider())

	advice, err := assistant.RecommendIllustrations(context.Background(), "a draft")
	require.NoError(t, err)
	assert.NotNil(t, advice.Analysis)
	assert.Empty(t, advice.Picks)
}

func TestAssistant_BuildStudyGuide(t *testing.T) {
	provider := mock.NewMockProvider()

	var captured ai.GuideProfile
	provider.MockAnalyst.ComposeStudyGuideFunc = func(_ context.Context, _ string, profile ai.GuideProfile) (string, error) {
		captured = profile
		return "guide text", nil
	}
	assistant := newTestAssistant(t, provider)

	guide, err := assistant.BuildStudyGuide(context.Background(), core.SegmentTeens, "a draft")
	require.NoError(t, err)
	assert.Equal(t, "guide text", guide)
	assert.Equal(t, core.SegmentProfiles[core.SegmentTeens].Label, captured.Audience)
	assert.Equal(t, core.SegmentProfiles[core.SegmentTeens].QuizLevel, captured.QuizLevel)
}

func TestAssistant_BuildStudyGuide_UnknownSegment(t *testing.T) {
	assistant := newTestAssistant(t, mock.NewMockProvider())

	_, err := assistant.BuildStudyGuide(context.Background(), core.Segment("seniors"), "a draft")
	assert.ErrorIs(t, err, core.ErrUnknownSegment)
}

func TestAssistant_PrepareDraft(t *testing.T) {
	assistant := newTestAssistant(t, mock.NewMockProvider())

	_, err := assistant.Sync(context.Background())
	require.NoError(t, err)

	workup, err := assistant.PrepareDraft(context.Background(), core.SegmentAdults, "a draft about grace")
	require.NoError(t, err)

	require.NotNil(t, workup.Advice)
	assert.NotEmpty(t, workup.Advice.Picks)
	require.NotNil(t, workup.Feedback)
	assert.NotEmpty(t, workup.Feedback.ActionItems)
	assert.NotEmpty(t, workup.Guide)
}

func TestAssistant_PrepareDraft_FirstErrorWins(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.MockAnalyst.ReviewDraftFunc = func(_ context.Context, _ string) (*ai.DraftFeedback, error) {
		return nil, errors.New("model endpoint down")
	}
	assistant := newTestAssistant(t, provider)

	_, err := assistant.PrepareDraft(context.Background(), core.SegmentAdults, "a draft")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model endpoint down")
}

func TestAssistant_PrepareDraft_UnknownSegment(t *testing.T) {
	assistant := newTestAssistant(t, mock.NewMockProvider())

	_, err := assistant.PrepareDraft(context.Background(), core.Segment("nope"), "a draft")
	assert.ErrorIs(t, err, core.ErrUnknownSegment)
}
