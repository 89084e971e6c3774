package ai

// DraftAnalysis is the JSON contract for sermon draft analysis.
type DraftAnalysis struct {
	// Themes are the core keywords running through the draft, noun form,
	// around five of them.
	Themes []string `json:"themes"`

	// Emotions are the dominant emotional tones (e.g. "comfort",
	// "challenge", "repentance", "gratitude").
	Emotions []string `json:"emotions"`

	// Books are the related scripture book names.
	Books []string `json:"books"`

	// Summary condenses the draft's core message into two sentences.
	Summary string `json:"summary"`
}

// DraftFeedback is the JSON contract for editorial feedback on a draft.
type DraftFeedback struct {
	// LogicIssues flag logical leaps or strained interpretation.
	LogicIssues []string `json:"logic_issues"`

	// ActionItems replace abstract applications with concrete actions the
	// audience can take today.
	ActionItems []string `json:"action_items"`

	// Strength names the draft's best insight or expression.
	Strength string `json:"strength"`
}

// CandidateSummary is the condensed form of a candidate illustration
// handed to the curation contract. Index is 1-based and is how
// recommendations refer back to candidates.
type CandidateSummary struct {
	Index    int
	Title    string
	Summary  string
	Subjects []string
}

// Recommendation is one curated illustration pick.
type Recommendation struct {
	// Index is the 1-based index into the candidate list this
	// recommendation refers to. 0 means the model failed to echo it; the
	// caller then falls back to matching by Title.
	Index int `json:"index"`

	Title string `json:"title"`

	// Reason explains what the illustration contributes to the draft.
	Reason string `json:"reason"`

	// UsageTip suggests where in the sermon to deploy it.
	UsageTip string `json:"usage_tip"`
}

// GuideProfile carries the audience framing for study guide composition.
type GuideProfile struct {
	Audience        string
	AgeRange        string
	Characteristics string
	Tone            string
	QuizLevel       string
}
