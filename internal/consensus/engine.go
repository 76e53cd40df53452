package consensus

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
)

// Engine computes the consensus from a joined agent-result map.
type Engine struct {
	weights  Weights
	profiles RoleProfiles
}

// Option customizes the engine.
type Option func(*Engine)

// WithWeights overrides the agent weight table.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		if len(w) > 0 {
			e.weights = w
		}
	}
}

// WithRoleProfiles overrides the expertise/threshold tables.
func WithRoleProfiles(p RoleProfiles) Option {
	return func(e *Engine) {
		if len(p) > 0 {
			e.profiles = p
		}
	}
}

// New creates an engine with the default tables.
func New(opts ...Option) *Engine {
	e := &Engine{
		weights:  DefaultWeights(),
		profiles: DefaultRoleProfiles(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Build reconciles the agent results into a ConsensusResult. Always
// returns a usable result, even when every agent failed.
func (e *Engine) Build(results map[string]core.AgentResult, jobCtx core.JobContext) core.ConsensusResult {
	valid := validAgentNames(results)
	if len(valid) == 0 {
		return failureConsensus()
	}

	weightedScore := e.weightedScore(valid, results)
	recommendation := DetermineRecommendation(weightedScore)

	profile := e.profiles.profileFor(strings.ToLower(jobCtx.RoleType))
	mixed := aggregateInsights(valid, results, profile)
	strengths, concerns := splitByType(mixed)

	agreement := analyzeAgreement(valid, results)
	confidence := computeConfidence(len(valid), agreement)
	reasoning := buildReasoning(len(valid), weightedScore, agreement)
	recommendations := e.mergeRecommendations(valid, results, weightedScore)

	return core.ConsensusResult{
		Summary: core.ConsensusSummary{
			OverallRecommendation: recommendation,
			ConfidenceLevel:       confidence,
			WeightedScore:         weightedScore,
			KeyStrengths:          strengths,
			KeyConcerns:           concerns,
			MixedInsights:         mixed,
			ConsensusReasoning:    reasoning,
		},
		AgreementAnalysis: agreement,
		Recommendations:   recommendations,
	}
}

// failureConsensus is the canonical all-agents-failed result.
func failureConsensus() core.ConsensusResult {
	return core.ConsensusResult{
		Summary: core.ConsensusSummary{
			OverallRecommendation: core.RecommendUnableToAssess,
			ConfidenceLevel:       0,
			WeightedScore:         0,
			KeyStrengths:          []core.RankedInsight{},
			KeyConcerns: []core.RankedInsight{
				{
					Text:      "All agents failed to complete assessment",
					Type:      core.InsightConcern,
					Relevance: 100,
					Count:     1,
					Agents:    []string{},
				},
			},
			MixedInsights:      []core.RankedInsight{},
			ConsensusReasoning: "No agent assessments completed successfully, so no consensus could be formed.",
		},
		AgreementAnalysis: core.AgreementAnalysis{
			ScoreRange:          core.ScoreRange{},
			AgreementLevel:      core.AgreementSplit,
			DissentingOpinions:  []core.DissentingOpinion{},
			ConfidenceIndicator: core.ConfidenceLow,
		},
		Recommendations: core.Recommendations{
			ForRecruiter:   []string{"Please retry the evaluation"},
			ForCandidate:   []string{},
			InterviewFocus: []string{},
		},
	}
}

// validAgentNames filters out error results and returns sorted names.
// The sorted order anchors every later iteration, which keeps the
// output independent of map insertion order.
func validAgentNames(results map[string]core.AgentResult) []string {
	names := make([]string, 0, len(results))
	for name, result := range results {
		if !result.Error {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// weightedScore computes sum(score*weight)/sum(weight) over the valid
// agents. Missing agents do not bias the result toward zero: the
// denominator only includes present weights.
func (e *Engine) weightedScore(names []string, results map[string]core.AgentResult) float64 {
	var numerator, denominator float64
	for _, name := range names {
		weight := e.weights.weightFor(name)
		numerator += results[name].Score * weight
		denominator += weight
	}
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// DetermineRecommendation maps a weighted score to its band. Monotone
// step function with five bands.
func DetermineRecommendation(score float64) string {
	switch {
	case score >= 0.80:
		return core.RecommendStrongHire
	case score >= 0.65:
		return core.RecommendHire
	case score >= 0.50:
		return core.RecommendMaybe
	case score >= 0.35:
		return core.RecommendLeanNo
	default:
		return core.RecommendReject
	}
}

// analyzeAgreement classifies how strongly the valid agents agree.
func analyzeAgreement(names []string, results map[string]core.AgentResult) core.AgreementAnalysis {
	scores := make([]float64, 0, len(names))
	bands := make([]string, 0, len(names))
	bandCounts := make(map[string]int)

	for _, name := range names {
		score := results[name].Score
		band := DetermineRecommendation(score)
		scores = append(scores, score)
		bands = append(bands, band)
		bandCounts[band]++
	}

	level := core.AgreementUnanimous
	switch len(bandCounts) {
	case 1:
	case 2:
		level = core.AgreementMajority
	default:
		level = core.AgreementSplit
	}

	mean, min, max, stdDev := scoreStats(scores)

	indicator := core.ConfidenceLow
	switch {
	case stdDev < 0.15:
		indicator = core.ConfidenceHigh
	case stdDev < 0.25:
		indicator = core.ConfidenceMedium
	}

	majority := majorityBand(bandCounts)
	dissenting := make([]core.DissentingOpinion, 0)
	for i, name := range names {
		if bands[i] != majority {
			dissenting = append(dissenting, core.DissentingOpinion{
				Agent:          name,
				Recommendation: bands[i],
				Score:          scores[i],
			})
		}
	}

	return core.AgreementAnalysis{
		ScoreRange: core.ScoreRange{
			Min:     min,
			Max:     max,
			Average: mean,
			StdDev:  stdDev,
		},
		AgreementLevel:      level,
		DissentingOpinions:  dissenting,
		ConfidenceIndicator: indicator,
	}
}

// bandRank orders bands for deterministic majority tie-breaking.
var bandRank = map[string]int{
	core.RecommendStrongHire: 0,
	core.RecommendHire:       1,
	core.RecommendMaybe:      2,
	core.RecommendLeanNo:     3,
	core.RecommendReject:     4,
}

// majorityBand picks the band held by the most agents; ties go to the
// more favorable band.
func majorityBand(counts map[string]int) string {
	best := ""
	bestCount := -1
	for band, count := range counts {
		if count > bestCount || (count == bestCount && bandRank[band] < bandRank[best]) {
			best = band
			bestCount = count
		}
	}
	return best
}

func scoreStats(scores []float64) (mean, min, max, stdDev float64) {
	if len(scores) == 0 {
		return 0, 0, 0, 0
	}
	min = scores[0]
	max = scores[0]
	var sum float64
	for _, s := range scores {
		sum += s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	mean = sum / float64(len(scores))

	var variance float64
	for _, s := range scores {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(scores))
	stdDev = math.Sqrt(variance)
	return mean, min, max, stdDev
}

// computeConfidence derives the 0-1 confidence level from agent count
// and agreement shape.
func computeConfidence(validCount int, agreement core.AgreementAnalysis) float64 {
	confidence := float64(validCount) / 3.0

	if agreement.ScoreRange.StdDev < 0.1 {
		confidence *= 1.1
	}
	if agreement.AgreementLevel == core.AgreementUnanimous {
		confidence *= 1.15
	}
	if agreement.ScoreRange.StdDev > 0.2 {
		confidence *= 0.8
	}
	if agreement.AgreementLevel == core.AgreementSplit {
		confidence *= 0.85
	}

	return math.Max(0, math.Min(1, confidence))
}

// scoreCommentary maps the weighted score to the reasoning phrasing.
func scoreCommentary(score float64) string {
	switch {
	case score >= 0.80:
		return "an exceptionally strong candidate"
	case score >= 0.65:
		return "a strong candidate"
	case score >= 0.50:
		return "a candidate with potential but notable gaps"
	case score >= 0.35:
		return "a candidate below the bar for this role"
	default:
		return "a candidate who does not meet the requirements"
	}
}

// buildReasoning produces the deterministic consensus paragraph.
func buildReasoning(validCount int, weightedScore float64, agreement core.AgreementAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of 3 assessments completed with %s agreement. ", validCount, agreement.AgreementLevel)
	fmt.Fprintf(&b, "The weighted score of %.2f indicates %s.", weightedScore, scoreCommentary(weightedScore))

	if len(agreement.DissentingOpinions) > 0 {
		first := agreement.DissentingOpinions[0]
		fmt.Fprintf(&b, " The %s assessment dissents, recommending %s (score %.2f).",
			first.Agent, first.Recommendation, first.Score)
	}

	return b.String()
}

// mergeRecommendations merges the valid agents' buckets, appends one
// consensus-derived recruiter action, and deduplicates each bucket.
func (e *Engine) mergeRecommendations(names []string, results map[string]core.AgentResult, weightedScore float64) core.Recommendations {
	merged := core.Recommendations{
		ForRecruiter:   []string{},
		ForCandidate:   []string{},
		InterviewFocus: []string{},
	}

	for _, name := range names {
		recs := results[name].Recommendations
		merged.ForRecruiter = append(merged.ForRecruiter, recs.ForRecruiter...)
		merged.ForCandidate = append(merged.ForCandidate, recs.ForCandidate...)
		merged.InterviewFocus = append(merged.InterviewFocus, recs.InterviewFocus...)
	}

	switch {
	case weightedScore >= 0.7:
		merged.ForRecruiter = append(merged.ForRecruiter,
			"Strong consensus across assessments: consider fast-tracking this candidate")
	case weightedScore < 0.5:
		merged.ForRecruiter = append(merged.ForRecruiter,
			"Verify the candidate meets minimum requirements before proceeding")
	}

	merged.ForRecruiter = dedupeStrings(merged.ForRecruiter)
	merged.ForCandidate = dedupeStrings(merged.ForCandidate)
	merged.InterviewFocus = dedupeStrings(merged.InterviewFocus)
	return merged
}

func dedupeStrings(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
