package core

import (
	"time"
)

// MinRawTextLength is the minimum accepted résumé text length.
const MinRawTextLength = 100

// DefaultLegacyRelevance is assigned to insights that arrive as plain
// strings from older prompt versions.
const DefaultLegacyRelevance = 70

// EvaluationInput is the immutable bundle every agent receives. It is
// passed by value and never mutated after creation.
type EvaluationInput struct {
	StructuredData   map[string]interface{} `json:"structuredData" validate:"required"`
	RawText          string                 `json:"rawText" validate:"required,min=100"`
	EvaluationScores map[string]interface{} `json:"evaluationScores" validate:"required"`
	JobRequirements  map[string]interface{} `json:"jobRequirements"`
}

// JobContext carries the hiring-context fields the consensus engine needs.
type JobContext struct {
	RoleType    string
	DomainFocus string
}

// JobContext extracts roleType/domainFocus from structuredData.positionAppliedFor.
func (in EvaluationInput) JobContext() JobContext {
	ctx := JobContext{}
	pos, ok := in.StructuredData["positionAppliedFor"].(map[string]interface{})
	if !ok {
		return ctx
	}
	if v, ok := pos["roleType"].(string); ok {
		ctx.RoleType = v
	}
	if v, ok := pos["domainFocus"].(string); ok {
		ctx.DomainFocus = v
	}
	return ctx
}

// InsightType discriminates strengths from concerns.
type InsightType string

const (
	InsightStrength InsightType = "strength"
	InsightConcern  InsightType = "concern"
)

// Insight is a strength or concern surfaced by an agent.
type Insight struct {
	Text      string      `json:"text"`
	Relevance int         `json:"relevance"`
	Reasoning string      `json:"reasoning"`
	Type      InsightType `json:"type,omitempty"`
}

// InsightFromValue converts a raw decoded value into an Insight. Plain
// strings are the legacy form and default to relevance 70 with empty
// reasoning. Returns false when the value is neither form.
func InsightFromValue(v interface{}, typ InsightType) (Insight, bool) {
	switch val := v.(type) {
	case string:
		if val == "" {
			return Insight{}, false
		}
		return Insight{Text: val, Relevance: DefaultLegacyRelevance, Type: typ}, true
	case map[string]interface{}:
		text, _ := val["text"].(string)
		if text == "" {
			return Insight{}, false
		}
		ins := Insight{Text: text, Relevance: DefaultLegacyRelevance, Type: typ}
		if rel, ok := numericValue(val["relevance"]); ok {
			ins.Relevance = int(rel)
		}
		if reasoning, ok := val["reasoning"].(string); ok {
			ins.Reasoning = reasoning
		}
		return ins, true
	default:
		return Insight{}, false
	}
}

func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Recommendations holds the three-bucket recommendation lists. The JSON
// field names are a binding external contract.
type Recommendations struct {
	ForRecruiter   []string `json:"for_recruiter"`
	ForCandidate   []string `json:"for_candidate"`
	InterviewFocus []string `json:"interview_focus"`
}

// AgentResult is the output of one agent execution. It is created once
// and never mutated after return: either fully populated, or error=true
// with deterministic fallback content.
type AgentResult struct {
	Agent           string          `json:"agent"`
	Role            string          `json:"role"`
	Assessment      string          `json:"assessment"`
	Score           float64         `json:"score"`
	Highlights      []Insight       `json:"highlights"`
	Concerns        []Insight       `json:"concerns"`
	Recommendations Recommendations `json:"recommendations"`
	Error           bool            `json:"error,omitempty"`
	ErrorMessage    string          `json:"error_message,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
}

// ScoreRange summarizes the distribution of valid agent scores.
type ScoreRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	StdDev  float64 `json:"stdDev"`
}

// DissentingOpinion records an agent whose own recommendation band
// differs from the majority.
type DissentingOpinion struct {
	Agent          string  `json:"agent"`
	Recommendation string  `json:"recommendation"`
	Score          float64 `json:"score"`
}

// Agreement levels.
const (
	AgreementUnanimous = "unanimous"
	AgreementMajority  = "majority"
	AgreementSplit     = "split"
)

// Confidence indicators derived from score spread.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// AgreementAnalysis classifies how strongly the agents agree.
type AgreementAnalysis struct {
	ScoreRange          ScoreRange          `json:"scoreRange"`
	AgreementLevel      string              `json:"agreementLevel"`
	DissentingOpinions  []DissentingOpinion `json:"dissentingOpinions"`
	ConfidenceIndicator string              `json:"confidenceIndicator"`
}

// RankedInsight is a deduplicated, relevance-ranked insight in the
// consensus output. Relevance is the maximum weighted relevance seen
// across contributing agents, capped at 100.
type RankedInsight struct {
	Text      string      `json:"text"`
	Type      InsightType `json:"type"`
	Relevance int         `json:"relevance"`
	Reasoning string      `json:"reasoning"`
	Count     int         `json:"count"`
	Agents    []string    `json:"agents"`
}

// Recommendation bands, monotone in weighted score.
const (
	RecommendStrongHire     = "strong_hire"
	RecommendHire           = "hire"
	RecommendMaybe          = "maybe"
	RecommendLeanNo         = "lean_no"
	RecommendReject         = "reject"
	RecommendUnableToAssess = "unable_to_assess"
	RecommendError          = "error"
)

// ConsensusSummary is the reconciled verdict. Field names are a binding
// external contract.
type ConsensusSummary struct {
	OverallRecommendation string          `json:"overall_recommendation"`
	ConfidenceLevel       float64         `json:"confidence_level"`
	WeightedScore         float64         `json:"weighted_score"`
	KeyStrengths          []RankedInsight `json:"key_strengths"`
	KeyConcerns           []RankedInsight `json:"key_concerns"`
	MixedInsights         []RankedInsight `json:"mixed_insights"`
	ConsensusReasoning    string          `json:"consensus_reasoning"`
}

// ConsensusResult is the full consensus engine output. Derived, never
// persisted by this layer.
type ConsensusResult struct {
	Summary           ConsensusSummary  `json:"summary"`
	AgreementAnalysis AgreementAnalysis `json:"agreement_analysis"`
	Recommendations   Recommendations   `json:"recommendations"`
}

// CoordinatorMetadata describes one coordinator run.
type CoordinatorMetadata struct {
	ExecutionTimeMS int64     `json:"executionTime"`
	Parallel        bool      `json:"parallel"`
	Timestamp       time.Time `json:"timestamp"`
}

// CoordinatorOutput is the joined result of one parallel agent batch.
// AgentResults always has exactly one entry per registered agent.
type CoordinatorOutput struct {
	AgentResults map[string]AgentResult `json:"agentResults"`
	Metadata     CoordinatorMetadata    `json:"metadata"`
}

// AgentPerspective is the per-agent view in the final payload.
type AgentPerspective struct {
	Assessment string    `json:"assessment"`
	Score      float64   `json:"score"`
	Highlights []Insight `json:"highlights"`
	Concerns   []Insight `json:"concerns"`
	Error      bool      `json:"error,omitempty"`
}

// SummaryMetadata is the metadata block of the final payload. The
// degenerate error form carries ProcessingTimeMS and Error instead of
// ExecutionTimeMS.
type SummaryMetadata struct {
	EvaluationID     string    `json:"evaluation_id,omitempty"`
	ExecutionTimeMS  int64     `json:"executionTime,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	ProcessingTimeMS int64     `json:"processing_time_ms,omitempty"`
	Error            string    `json:"error,omitempty"`
}

// EvaluationSummary is the top-level payload returned to callers.
type EvaluationSummary struct {
	Summary           ConsensusSummary            `json:"summary"`
	AgentPerspectives map[string]AgentPerspective `json:"agent_perspectives"`
	Recommendations   Recommendations             `json:"recommendations"`
	AgreementAnalysis AgreementAnalysis           `json:"agreement_analysis"`
	Metadata          SummaryMetadata             `json:"metadata"`
}
