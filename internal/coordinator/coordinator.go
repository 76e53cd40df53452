// Package coordinator runs the agent registry in parallel and joins
// the results. One failing agent never fails the batch: its slot is
// filled with a deterministic synthetic result instead.
package coordinator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/logging"
)

// Analyzer is the per-agent evaluation contract.
type Analyzer interface {
	Name() string
	Role() string
	Analyze(ctx context.Context, input core.EvaluationInput) (core.AgentResult, error)
}

// Coordinator holds a fixed registry of named agents.
type Coordinator struct {
	agents []Analyzer
	logger *logging.Logger
}

// New validates the registry and creates a coordinator. Registry
// faults are the only errors this layer ever raises.
func New(agents []Analyzer, logger *logging.Logger) (*Coordinator, error) {
	if len(agents) == 0 {
		return nil, core.ErrValidation(core.CodeEmptyRegistry, "agent registry is empty")
	}
	seen := make(map[string]bool, len(agents))
	for _, ag := range agents {
		name := ag.Name()
		if name == "" {
			return nil, core.ErrValidation(core.CodeEmptyRegistry, "agent with empty name in registry")
		}
		if seen[name] {
			return nil, core.ErrValidation(core.CodeEmptyRegistry,
				fmt.Sprintf("duplicate agent name in registry: %s", name))
		}
		seen[name] = true
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Coordinator{agents: agents, logger: logger}, nil
}

// AgentNames returns the registry key set in registration order.
func (c *Coordinator) AgentNames() []string {
	names := make([]string, len(c.agents))
	for i, ag := range c.agents {
		names[i] = ag.Name()
	}
	return names
}

// ExecuteAgents launches every agent concurrently and waits for all of
// them to settle. The returned map always has exactly one entry per
// registered agent regardless of completion order. No cancellation
// propagates between siblings; each receives the same immutable input
// snapshot.
func (c *Coordinator) ExecuteAgents(ctx context.Context, input core.EvaluationInput) (core.CoordinatorOutput, error) {
	start := time.Now()
	results := make([]core.AgentResult, len(c.agents))

	// Deliberately not errgroup.WithContext: a rejected agent must not
	// cancel the others, and goroutines always return nil. errgroup does
	// not recover goroutine panics, so each closure carries its own
	// recover; a panicking agent degrades to a synthetic failure like
	// any other rejected call.
	var g errgroup.Group
	for i, ag := range c.agents {
		i, ag := i, ag
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("agent analysis panicked",
						"agent", ag.Name(),
						"panic", r,
					)
					results[i] = c.failureResult(ag, fmt.Errorf("agent panicked: %v", r))
				}
			}()
			result, err := ag.Analyze(ctx, input)
			if err != nil {
				c.logger.Error("agent analysis failed",
					"agent", ag.Name(),
					"error", err,
				)
				results[i] = c.failureResult(ag, err)
				return nil
			}
			// The registry name is authoritative for the join key.
			result.Agent = ag.Name()
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	resultMap := make(map[string]core.AgentResult, len(results))
	for i, ag := range c.agents {
		resultMap[ag.Name()] = results[i]
	}

	elapsed := time.Since(start)
	c.logger.Info("agent batch completed",
		"agents", len(c.agents),
		"duration_ms", elapsed.Milliseconds(),
	)

	return core.CoordinatorOutput{
		AgentResults: resultMap,
		Metadata: core.CoordinatorMetadata{
			ExecutionTimeMS: elapsed.Milliseconds(),
			Parallel:        true,
			Timestamp:       time.Now().UTC(),
		},
	}, nil
}

// failureResult synthesizes the deterministic result for a rejected
// agent call, carrying the original error message.
func (c *Coordinator) failureResult(ag Analyzer, err error) core.AgentResult {
	return core.AgentResult{
		Agent:      ag.Name(),
		Role:       ag.Role(),
		Assessment: "",
		Score:      0.5,
		Highlights: []core.Insight{},
		Concerns: []core.Insight{
			{Text: "Assessment could not be completed", Relevance: core.DefaultLegacyRelevance, Type: core.InsightConcern},
		},
		Recommendations: core.Recommendations{
			ForRecruiter:   []string{"Please check the system and try again"},
			ForCandidate:   []string{},
			InterviewFocus: []string{},
		},
		Error:        true,
		ErrorMessage: err.Error(),
		Timestamp:    time.Now().UTC(),
	}
}
