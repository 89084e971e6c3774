package openai

import (
	"fmt"
	"strings"

	"github.com/greation/sermonkit/ai"
)

const analysisPrompt = `You are a homiletics professor with twenty years of experience and an expert
in sermon illustrations. Analyze the following sermon draft in depth and
derive the profile of illustrations it needs.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting,
or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Use exactly this shape:

{
  "themes": ["theme1", "theme2"],
  "emotions": ["emotion1", "emotion2"],
  "books": ["Genesis"],
  "summary": "two-sentence summary"
}

Rules:
- "themes": the five core keywords running through the sermon, noun form.
- "emotions": the dominant emotional tones (e.g. comfort, challenge,
  repentance, gratitude, warning, humor).
- "books": scripture book names connected to the sermon.
- "summary": the core message condensed into exactly two sentences.

## Sermon draft:
%s`

const feedbackPrompt = `You are a homiletics professor with twenty years of experience and a master
of practical application. Review the sermon draft below and strengthen any
application that is weak or abstract with very concrete suggestions.

Output ONLY valid JSON, starting with { and ending with }:

{
  "logic_issues": ["issue1", "issue2"],
  "action_items": ["concrete action 1", "concrete action 2", "concrete action 3"],
  "strength": "the draft's best insight or expression"
}

Rules:
- "logic_issues": point out logical leaps and strained interpretation.
- "action_items": if the application is abstract ("let us love", "let us
  serve"), replace it with actions the audience can take today. Name the
  person, place, amount, and behavior. Bad: "care for neglected neighbors."
  Good: "hand the building caretaker a warm drink and say thank you."
- "strength": praise the single strongest element.

## Sermon draft:
%s`

const curationPrompt = `You assist a sermon writer. Considering the flow and context of the sermon,
choose the best-fitting illustrations from the candidate list.

## Sermon summary:
%s

## Sermon themes and emotional tones:
%s

## Candidate illustrations:
%s

## Request:
Select the 10 to 15 most fitting illustrations, with reasons. Do not pick on
keyword overlap alone; pick what serves the sermon's context. If the sermon
deals with endurance in suffering, prefer a weighty testimony or historical
account over light humor.

Important: always echo the candidate's number back in "index".

Output ONLY valid JSON, starting with { and ending with }:

{
  "recommendations": [
    {
      "index": 1,
      "title": "illustration title",
      "reason": "what this illustration contributes, and where, specifically",
      "usage_tip": "e.g. works as an opening story, or as a closing application question"
    }
  ]
}`

const guidePrompt = `## Role
You are a veteran Bible study curriculum writer with twenty years of
experience and a specialist for the %s group. Your task is to turn the
sermon draft below into a small-group study guide the %s group can discuss
in depth.

## Target audience
* Audience: %s (%s)
* Characteristics: %s

## Objective
Without diluting the sermon's core message, produce one clean guide the
group can apply concretely, engaging enough that nobody drifts off. Avoid
complex formatting (tables, boxes); use only icons (emoji) and text so the
result can be copied and pasted as-is. Never duplicate content.

## Output format
Follow this outline exactly:

---
### [Title: a witty twist on the sermon title]

### 1. Ice Break
* Two light questions connected to the sermon theme that open people up

### 2. Into the Word (Observation)
* Three observation and interpretation questions that invite deep insight

### 3. Into Life (Application)
* Apply: two or three questions diagnosing my current state
* Break: one paragraph (4-5 lines) on the passage's lesson
* Build: three to five concrete practices for this week (name specific areas:
  relationships, finances, time)
* Pray: a short prayer the group can read together

### 4. Pop Quiz
* Three multiple-choice questions and two true/false questions
* Difficulty: %s
* (Print the answers in small text right below the quiz)

### 5. The Week Ahead
* Mon (See), Tue (Speak), Wed (Cost), Thu (Listen), Fri (Act), Sat (Pray):
  one small mission each
---

## Tone and manner
* %s
* Conversational rather than lecturing.

## Sermon draft:
%s`

// buildAnalysisPrompt renders the draft analysis prompt.
func buildAnalysisPrompt(draft string) string {
	return fmt.Sprintf(analysisPrompt, draft)
}

// buildFeedbackPrompt renders the editorial feedback prompt.
func buildFeedbackPrompt(draft string) string {
	return fmt.Sprintf(feedbackPrompt, draft)
}

// buildCurationPrompt renders the curation prompt over an analyzed draft
// and a numbered candidate list.
func buildCurationPrompt(analysis *ai.DraftAnalysis, candidates []ai.CandidateSummary) string {
	var b strings.Builder
	for _, c := range candidates {
		fmt.Fprintf(&b, "%d. Title: %s | Summary: %s | Tags: %s\n",
			c.Index, c.Title, c.Summary, strings.Join(c.Subjects, ", "))
	}

	tags := fmt.Sprintf("Themes: %s. Emotions: %s.",
		strings.Join(analysis.Themes, ", "),
		strings.Join(analysis.Emotions, ", "))

	return fmt.Sprintf(curationPrompt, analysis.Summary, tags, b.String())
}

// buildGuidePrompt renders the study guide composition prompt for an
// audience profile.
func buildGuidePrompt(draft string, profile ai.GuideProfile) string {
	return fmt.Sprintf(guidePrompt,
		profile.Audience,
		profile.Audience,
		profile.Audience,
		profile.AgeRange,
		profile.Characteristics,
		profile.QuizLevel,
		profile.Tone,
		draft)
}
