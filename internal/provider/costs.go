package provider

import (
	"sync"
	"time"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
)

// modelPricing holds USD prices per million tokens.
type modelPricing struct {
	inputPerM  float64
	outputPerM float64
}

// Prices are approximations for budgeting, not billing.
var pricingTable = map[string]modelPricing{
	"gpt-4o":           {inputPerM: 2.50, outputPerM: 10.00},
	"gpt-4o-mini":      {inputPerM: 0.15, outputPerM: 0.60},
	"gpt-4.1":          {inputPerM: 2.00, outputPerM: 8.00},
	"gpt-4.1-mini":     {inputPerM: 0.40, outputPerM: 1.60},
	"gemini-2.5-pro":   {inputPerM: 1.25, outputPerM: 10.00},
	"gemini-2.5-flash": {inputPerM: 0.30, outputPerM: 2.50},
	"gemini-2.0-flash": {inputPerM: 0.10, outputPerM: 0.40},
}

// ModelUsage aggregates usage for one (provider, model) pair.
type ModelUsage struct {
	Calls            int           `json:"calls"`
	PromptTokens     int           `json:"prompt_tokens"`
	CompletionTokens int           `json:"completion_tokens"`
	CostUSD          float64       `json:"cost_usd"`
	TotalDuration    time.Duration `json:"-"`
}

// CostSnapshot is a point-in-time copy of accumulated usage.
type CostSnapshot struct {
	TotalCalls   int                   `json:"total_calls"`
	TotalTokens  int                   `json:"total_tokens"`
	TotalCostUSD float64               `json:"total_cost_usd"`
	PerModel     map[string]ModelUsage `json:"per_model"`
}

// CostTracker accumulates usage across concurrent completions. It is
// explicitly owned and injected rather than process-global; increments
// are mutex-guarded because sibling agent calls complete concurrently.
type CostTracker struct {
	mu       sync.Mutex
	perModel map[string]ModelUsage
}

// NewCostTracker creates an empty tracker.
func NewCostTracker() *CostTracker {
	return &CostTracker{perModel: make(map[string]ModelUsage)}
}

// Record adds one completion's usage.
func (t *CostTracker) Record(providerName, model string, usage core.TokenUsage, duration time.Duration) {
	key := providerName + "/" + model

	t.mu.Lock()
	defer t.mu.Unlock()

	entry := t.perModel[key]
	entry.Calls++
	entry.PromptTokens += usage.PromptTokens
	entry.CompletionTokens += usage.CompletionTokens
	entry.CostUSD += estimateCost(model, usage)
	entry.TotalDuration += duration
	t.perModel[key] = entry
}

// Snapshot returns a copy of the accumulated totals.
func (t *CostTracker) Snapshot() CostSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := CostSnapshot{PerModel: make(map[string]ModelUsage, len(t.perModel))}
	for key, entry := range t.perModel {
		snap.PerModel[key] = entry
		snap.TotalCalls += entry.Calls
		snap.TotalTokens += entry.PromptTokens + entry.CompletionTokens
		snap.TotalCostUSD += entry.CostUSD
	}
	return snap
}

func estimateCost(model string, usage core.TokenUsage) float64 {
	pricing, ok := pricingTable[model]
	if !ok {
		return 0
	}
	return float64(usage.PromptTokens)/1e6*pricing.inputPerM +
		float64(usage.CompletionTokens)/1e6*pricing.outputPerM
}
