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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/greation/sermonkit/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Analyst implements ai.Analyst using OpenAI-compatible chat APIs.
// JSON contracts are enforced with JSON mode plus a bounded
// parse-and-repair retry loop for models that still wrap or mangle output.
type Analyst struct {
	client         llms.Model
	requestTimeout time.Duration
	logger         *slog.Logger
}

// curation is the wrapper structure for the curation JSON response.
type curation struct {
	Recommendations []ai.Recommendation `json:"recommendations"`
}

// newAnalyst is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnalyst(config *ai.Config) (*Analyst, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.GenerativeHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.GenerativeModel),
	)
	if err != nil {
		return nil, err
	}

	return &Analyst{
		client:         client,
		requestTimeout: config.RequestTimeout,
		logger:         slog.Default().With("component", "openai-analyst"),
	}, nil
}

// NewAnalyst creates a new analyst using the provided configuration.
//
// Returns ai.Analyst interface to enforce abstraction.
func NewAnalyst(config *ai.Config) (ai.Analyst, error) {
	return newAnalyst(config)
}

// AnalyzeDraft distills a sermon draft into themes, emotions, books, and a
// two-sentence summary.
func (a *Analyst) AnalyzeDraft(ctx context.Context, draft string) (*ai.DraftAnalysis, error) {
	var result ai.DraftAnalysis
	if err := a.generateJSON(ctx, buildAnalysisPrompt(draft), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReviewDraft critiques the draft's logic and concretizes its application.
func (a *Analyst) ReviewDraft(ctx context.Context, draft string) (*ai.DraftFeedback, error) {
	var result ai.DraftFeedback
	if err := a.generateJSON(ctx, buildFeedbackPrompt(draft), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CurateIllustrations selects the candidates that best serve the analyzed
// draft.
func (a *Analyst) CurateIllustrations(ctx context.Context, analysis *ai.DraftAnalysis, candidates []ai.CandidateSummary) ([]ai.Recommendation, error) {
	if len(candidates) == 0 {
		return []ai.Recommendation{}, nil
	}

	var result curation
	if err := a.generateJSON(ctx, buildCurationPrompt(analysis, candidates), &result); err != nil {
		return nil, err
	}
	return result.Recommendations, nil
}

// ComposeStudyGuide writes a markdown study guide tailored to the audience
// profile. Unlike the other contracts this returns free text, so no JSON
// handling applies.
func (a *Analyst) ComposeStudyGuide(ctx context.Context, draft string, profile ai.GuideProfile) (string, error) {
	callCtx, cancel := a.callContext(ctx)
	defer cancel()

	response, err := a.client.GenerateContent(callCtx,
		[]llms.MessageContent{
			{
				Role:  llms.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{llms.TextPart(buildGuidePrompt(draft, profile))},
			},
		},
		llms.WithTemperature(0.7),
	)
	if err != nil {
		a.logger.Error("failed to compose study guide", "audience", profile.Audience, "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		a.logger.Debug("no choices returned from model")
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

// generateJSON runs one prompt expecting a JSON object response and
// unmarshals it into target. Malformed responses are repaired where
// possible and retried up to 3 times.
func (a *Analyst) generateJSON(ctx context.Context, prompt string, target any) error {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		callCtx, cancel := a.callContext(ctx)
		response, err := a.client.GenerateContent(callCtx, content,
			llms.WithTemperature(0.0), llms.WithJSONMode())
		cancel()
		if err != nil {
			a.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return err
		}

		if len(response.Choices) < 1 {
			a.logger.Debug("no choices returned from model")
			return ErrEmptyResponse
		}

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(response.Choices[0].Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Models sometimes wrap the object in prose; keep only the object.
		responseText = extractJSONObject(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), target); err != nil {
			lastErr = err
			a.logger.Warn("error parsing model response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		return nil
	}

	a.logger.Error("failed to parse model response after retries", "err", lastErr)
	return lastErr
}

func (a *Analyst) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.requestTimeout > 0 {
		return context.WithTimeout(ctx, a.requestTimeout)
	}
	return ctx, func() {}
}
