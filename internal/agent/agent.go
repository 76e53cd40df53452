package agent

import (
	"context"
	"strings"
	"time"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/logging"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/prompt"
)

// assessmentPrompt is the shared user-message template. Role-specific
// augmentation is appended after rendering.
const assessmentPrompt = `Evaluate the following candidate.

## Candidate profile
{{candidate.profile}}

## Rule-based evaluation scores
{{candidate.scores}}

## Job requirements
{{candidate.requirements}}

## Resume text
{{candidate.resume}}`

// fallbackPreviewLength bounds the raw-text echo in fallback results.
const fallbackPreviewLength = 300

// Evaluator runs one role's assessment through a provider client. The
// same control flow serves all three roles; behavior varies only
// through the Role table.
type Evaluator struct {
	role   Role
	client core.ProviderClient
	logger *logging.Logger
}

// New creates an evaluator for a role.
func New(role Role, client core.ProviderClient, logger *logging.Logger) *Evaluator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Evaluator{
		role:   role,
		client: client,
		logger: logger.WithAgent(role.Name),
	}
}

// Name returns the agent identity used as the registry key.
func (e *Evaluator) Name() string { return e.role.Name }

// Role returns the role description.
func (e *Evaluator) Role() string { return e.role.Description }

// Analyze produces this role's assessment of the input. Provider
// errors propagate untouched: absorbing them is the coordinator's job.
// Non-conforming model output never fails; it degrades through the
// recovery chain into the deterministic fallback.
func (e *Evaluator) Analyze(ctx context.Context, input core.EvaluationInput) (core.AgentResult, error) {
	messages, warnings := e.buildMessages(input)
	for _, w := range warnings {
		e.logger.Warn("prompt rendering", "warning", w)
	}

	resp, err := e.client.Complete(ctx, messages, core.CompletionOptions{MaxTokens: 4096})
	if err != nil {
		return core.AgentResult{}, err
	}

	raw := map[string]interface{}{"content": resp.Content}
	obj, ok := RecoverAssessment(raw, e.role.ValidResponse)
	if !ok {
		e.logger.Warn("assessment recovery failed, using fallback")
		return e.fallbackResult(resp.Content), nil
	}

	return e.toResult(obj), nil
}

func (e *Evaluator) buildMessages(input core.EvaluationInput) ([]core.ChatMessage, []string) {
	tmpl := prompt.Template{
		Messages: []prompt.MessageTemplate{
			{Role: core.RoleSystem, Content: e.role.System},
			{Role: core.RoleUser, Content: assessmentPrompt},
		},
	}

	vars := map[string]interface{}{
		"candidate": map[string]interface{}{
			"profile":      input.StructuredData,
			"resume":       input.RawText,
			"scores":       input.EvaluationScores,
			"requirements": input.JobRequirements,
		},
	}

	messages, warnings := tmpl.Render(vars)

	if e.role.Augment != nil {
		if extra := e.role.Augment(input); extra != "" {
			last := len(messages) - 1
			messages[last].Content += "\n\n" + extra
		}
	}

	return messages, warnings
}

// toResult converts a validated assessment object into an AgentResult.
func (e *Evaluator) toResult(obj map[string]interface{}) core.AgentResult {
	score, _ := numericScore(obj["score"])
	assessment, _ := obj["assessment"].(string)

	result := core.AgentResult{
		Agent:      e.role.Name,
		Role:       e.role.Description,
		Assessment: strings.TrimSpace(assessment),
		Score:      score,
		Highlights: toInsights(obj["highlights"], core.InsightStrength),
		Concerns:   toInsights(obj["concerns"], core.InsightConcern),
		Timestamp:  time.Now().UTC(),
	}
	result.Recommendations = toRecommendations(obj["recommendations"])
	return result
}

// fallbackResult is the deterministic all-stages-failed output.
func (e *Evaluator) fallbackResult(rawText string) core.AgentResult {
	return core.AgentResult{
		Agent:      e.role.Name,
		Role:       e.role.Description,
		Assessment: truncatePreview(rawText, fallbackPreviewLength),
		Score:      0.5,
		Highlights: []core.Insight{},
		Concerns: []core.Insight{
			{Text: "Assessment parsing failed", Relevance: core.DefaultLegacyRelevance, Type: core.InsightConcern},
		},
		Recommendations: core.Recommendations{
			ForRecruiter:   []string{"Please retry the evaluation"},
			ForCandidate:   []string{},
			InterviewFocus: []string{},
		},
		Timestamp: time.Now().UTC(),
	}
}

func toInsights(v interface{}, typ core.InsightType) []core.Insight {
	list, ok := v.([]interface{})
	if !ok {
		return []core.Insight{}
	}
	insights := make([]core.Insight, 0, len(list))
	for _, item := range list {
		if ins, ok := core.InsightFromValue(item, typ); ok {
			insights = append(insights, ins)
		}
	}
	return insights
}

func toRecommendations(v interface{}) core.Recommendations {
	recs := core.Recommendations{
		ForRecruiter:   []string{},
		ForCandidate:   []string{},
		InterviewFocus: []string{},
	}

	switch val := v.(type) {
	case map[string]interface{}:
		recs.ForRecruiter = append(recs.ForRecruiter, stringList(val["for_recruiter"])...)
		recs.ForCandidate = append(recs.ForCandidate, stringList(val["for_candidate"])...)
		recs.InterviewFocus = append(recs.InterviewFocus, stringList(val["interview_focus"])...)
	case []interface{}:
		// legacy flat list: bucket by substring heuristic
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				recs.Append(core.ClassifyRecommendation(s), s)
			}
		}
	}

	return recs
}

func stringList(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
