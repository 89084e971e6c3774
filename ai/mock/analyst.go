package mock

import (
	"context"

	"github.com/greation/sermonkit/ai"
)

// MockAnalyst is a test double for ai.Analyst.
// It allows custom behavior injection via function fields.
type MockAnalyst struct {
	// AnalyzeDraftFunc is called by AnalyzeDraft if set.
	AnalyzeDraftFunc func(ctx context.Context, draft string) (*ai.DraftAnalysis, error)

	// ReviewDraftFunc is called by ReviewDraft if set.
	ReviewDraftFunc func(ctx context.Context, draft string) (*ai.DraftFeedback, error)

	// CurateIllustrationsFunc is called by CurateIllustrations if set.
	CurateIllustrationsFunc func(ctx context.Context, analysis *ai.DraftAnalysis, candidates []ai.CandidateSummary) ([]ai.Recommendation, error)

	// ComposeStudyGuideFunc is called by ComposeStudyGuide if set.
	ComposeStudyGuideFunc func(ctx context.Context, draft string, profile ai.GuideProfile) (string, error)

	callCount int
}

// NewMockAnalyst creates a mock analyst with default canned behavior.
func NewMockAnalyst() *MockAnalyst {
	return &MockAnalyst{}
}

// AnalyzeDraft returns a fixed analysis unless overridden.
func (m *MockAnalyst) AnalyzeDraft(ctx context.Context, draft string) (*ai.DraftAnalysis, error) {
	m.callCount++

	if m.AnalyzeDraftFunc != nil {
		return m.AnalyzeDraftFunc(ctx, draft)
	}

	return &ai.DraftAnalysis{
		Themes:   []string{"grace", "forgiveness"},
		Emotions: []string{"comfort"},
		Books:    []string{"Luke"},
		Summary:  "A canned summary of the draft.",
	}, nil
}

// ReviewDraft returns fixed feedback unless overridden.
func (m *MockAnalyst) ReviewDraft(ctx context.Context, draft string) (*ai.DraftFeedback, error) {
	m.callCount++

	if m.ReviewDraftFunc != nil {
		return m.ReviewDraftFunc(ctx, draft)
	}

	return &ai.DraftFeedback{
		LogicIssues: []string{"the second point assumes the first"},
		ActionItems: []string{"thank one coworker by name this week"},
		Strength:    "a vivid opening image",
	}, nil
}

// CurateIllustrations echoes the first candidates back as recommendations
// unless overridden.
func (m *MockAnalyst) CurateIllustrations(ctx context.Context, analysis *ai.DraftAnalysis, candidates []ai.CandidateSummary) ([]ai.Recommendation, error) {
	m.callCount++

	if m.CurateIllustrationsFunc != nil {
		return m.CurateIllustrationsFunc(ctx, analysis, candidates)
	}

	recommendations := make([]ai.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		recommendations = append(recommendations, ai.Recommendation{
			Index:    c.Index,
			Title:    c.Title,
			Reason:   "canned reason",
			UsageTip: "canned tip",
		})
		if len(recommendations) == 10 {
			break
		}
	}
	return recommendations, nil
}

// ComposeStudyGuide returns a fixed guide unless overridden.
func (m *MockAnalyst) ComposeStudyGuide(ctx context.Context, draft string, profile ai.GuideProfile) (string, error) {
	m.callCount++

	if m.ComposeStudyGuideFunc != nil {
		return m.ComposeStudyGuideFunc(ctx, draft, profile)
	}

	return "### [Title: Canned Guide]\n\n### 1. Ice Break\n* question one\n* question two\n", nil
}

// CallCount returns the number of times any method was called.
func (m *MockAnalyst) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockAnalyst) Reset() {
	m.callCount = 0
	m.AnalyzeDraftFunc = nil
	m.ReviewDraftFunc = nil
	m.CurateIllustrationsFunc = nil
	m.ComposeStudyGuideFunc = nil
}
