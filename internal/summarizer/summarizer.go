// Package summarizer is the top-level façade: it validates input,
// drives the coordinator and consensus engine, and assembles the final
// payload. Downstream failures never escape this boundary; callers get
// a well-formed degenerate response instead.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/consensus"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/coordinator"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/logging"
)

// Summarizer validates input and drives the evaluation pipeline.
type Summarizer struct {
	coordinator *coordinator.Coordinator
	engine      *consensus.Engine
	logger      *logging.Logger
	validate    *validator.Validate
}

// New creates a summarizer.
func New(coord *coordinator.Coordinator, engine *consensus.Engine, logger *logging.Logger) *Summarizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Summarizer{
		coordinator: coord,
		engine:      engine,
		logger:      logger,
		validate:    validator.New(),
	}
}

// Evaluate runs the full pipeline. The only error that escapes is a
// pre-network input-shape validation failure; everything downstream is
// converted into a structured degenerate payload.
func (s *Summarizer) Evaluate(ctx context.Context, input core.EvaluationInput) (core.EvaluationSummary, error) {
	if err := s.validateInput(input); err != nil {
		return core.EvaluationSummary{}, err
	}

	start := time.Now()
	evaluationID := uuid.NewString()
	logger := s.logger.WithEvaluation(evaluationID)

	summary := func() (out core.EvaluationSummary) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("evaluation panicked", "panic", r)
				out = s.degenerate(start, fmt.Errorf("internal failure: %v", r))
			}
		}()

		output, err := s.coordinator.ExecuteAgents(ctx, input)
		if err != nil {
			logger.Error("coordinator failed", "error", err)
			return s.degenerate(start, err)
		}

		result := s.engine.Build(output.AgentResults, input.JobContext())
		return s.assemble(evaluationID, output, result, start)
	}()

	logger.Info("evaluation completed",
		"recommendation", summary.Summary.OverallRecommendation,
		"weighted_score", summary.Summary.WeightedScore,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return summary, nil
}

// validateInput fails fast, before any network activity, with a
// descriptive typed error.
func (s *Summarizer) validateInput(input core.EvaluationInput) error {
	if err := s.validate.Struct(input); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return core.ErrValidation(core.CodeInvalidInput, describeViolation(fieldErrors[0]))
		}
		return core.ErrValidation(core.CodeInvalidInput, err.Error())
	}
	return nil
}

func describeViolation(fe validator.FieldError) string {
	switch fe.Field() {
	case "StructuredData":
		return "structuredData must be a non-null object"
	case "RawText":
		return fmt.Sprintf("rawText must be a string of at least %d characters", core.MinRawTextLength)
	case "EvaluationScores":
		return "evaluationScores must be a non-null object"
	default:
		return fmt.Sprintf("invalid input: field %s failed %s validation", fe.Field(), fe.Tag())
	}
}

// assemble builds the final payload from the pipeline outputs.
func (s *Summarizer) assemble(evaluationID string, output core.CoordinatorOutput, result core.ConsensusResult, start time.Time) core.EvaluationSummary {
	perspectives := make(map[string]core.AgentPerspective, len(output.AgentResults))
	for name, agentResult := range output.AgentResults {
		perspectives[name] = core.AgentPerspective{
			Assessment: agentResult.Assessment,
			Score:      agentResult.Score,
			Highlights: agentResult.Highlights,
			Concerns:   agentResult.Concerns,
			Error:      agentResult.Error,
		}
	}

	return core.EvaluationSummary{
		Summary:           result.Summary,
		AgentPerspectives: perspectives,
		Recommendations:   result.Recommendations,
		AgreementAnalysis: result.AgreementAnalysis,
		Metadata: core.SummaryMetadata{
			EvaluationID:    evaluationID,
			ExecutionTimeMS: time.Since(start).Milliseconds(),
			Timestamp:       time.Now().UTC(),
		},
	}
}

// degenerate is the fully-formed error payload: every registered agent
// is marked failed and the summary carries the error recommendation.
func (s *Summarizer) degenerate(start time.Time, cause error) core.EvaluationSummary {
	perspectives := make(map[string]core.AgentPerspective)
	for _, name := range s.coordinator.AgentNames() {
		perspectives[name] = core.AgentPerspective{
			Assessment: "",
			Score:      0,
			Highlights: []core.Insight{},
			Concerns:   []core.Insight{},
			Error:      true,
		}
	}

	return core.EvaluationSummary{
		Summary: core.ConsensusSummary{
			OverallRecommendation: core.RecommendError,
			ConfidenceLevel:       0,
			WeightedScore:         0,
			KeyStrengths:          []core.RankedInsight{},
			KeyConcerns:           []core.RankedInsight{},
			MixedInsights:         []core.RankedInsight{},
			ConsensusReasoning:    "The evaluation could not be completed.",
		},
		AgentPerspectives: perspectives,
		Recommendations: core.Recommendations{
			ForRecruiter:   []string{"Please retry the evaluation"},
			ForCandidate:   []string{},
			InterviewFocus: []string{},
		},
		AgreementAnalysis: core.AgreementAnalysis{
			ScoreRange:          core.ScoreRange{},
			AgreementLevel:      core.AgreementSplit,
			DissentingOpinions:  []core.DissentingOpinion{},
			ConfidenceIndicator: core.ConfidenceLow,
		},
		Metadata: core.SummaryMetadata{
			Timestamp:        time.Now().UTC(),
			ProcessingTimeMS: time.Since(start).Milliseconds(),
			Error:            cause.Error(),
		},
	}
}
