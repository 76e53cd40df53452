package cmd

import (
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/agent"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/config"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/consensus"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/coordinator"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/logging"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/provider"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/summarizer"
)

// pipeline bundles the assembled evaluation stack.
type pipeline struct {
	summarizer *summarizer.Summarizer
	costs      *provider.CostTracker
}

// buildPipeline wires provider client, the three role agents, the
// coordinator, the consensus engine, and the summarizer from config.
// With dryRun set, the canned mock backend replaces the real provider.
func buildPipeline(cfg *config.Config, logger *logging.Logger, dryRun bool) (*pipeline, error) {
	var costs *provider.CostTracker
	if cfg.Costs.Enabled {
		costs = provider.NewCostTracker()
	}

	client, err := buildClient(cfg, logger, costs, dryRun)
	if err != nil {
		return nil, err
	}

	// agent.New scopes the logger to the role itself.
	agents := make([]coordinator.Analyzer, 0, 3)
	for _, role := range agent.Roles() {
		agents = append(agents, agent.New(role, client, logger))
	}

	coord, err := coordinator.New(agents, logger)
	if err != nil {
		return nil, err
	}

	engine := consensus.New(consensusOptions(cfg.Consensus)...)

	return &pipeline{
		summarizer: summarizer.New(coord, engine, logger),
		costs:      costs,
	}, nil
}

func buildClient(cfg *config.Config, logger *logging.Logger, costs *provider.CostTracker, dryRun bool) (core.ProviderClient, error) {
	providerCfg := provider.Config{
		Provider:    provider.Provider(cfg.Provider.Name),
		Model:       cfg.Provider.Model,
		APIKey:      cfg.Provider.APIKey,
		Temperature: float32(cfg.Provider.Temperature),
	}
	if dryRun {
		providerCfg.Provider = provider.ProviderMock
		providerCfg.Model = "mock"
		providerCfg.APIKey = ""
	}

	opts := []provider.Option{provider.WithLogger(logger)}
	if costs != nil {
		opts = append(opts, provider.WithCostTracker(costs))
	}
	return provider.New(providerCfg, opts...)
}

// consensusOptions converts the config tuning tables into engine
// options. Absent tables leave the engine on its defaults.
func consensusOptions(cfg config.ConsensusConfig) []consensus.Option {
	var opts []consensus.Option

	if len(cfg.Weights) > 0 {
		weights := make(consensus.Weights, len(cfg.Weights))
		for agentName, weight := range cfg.Weights {
			weights[agentName] = weight
		}
		opts = append(opts, consensus.WithWeights(weights))
	}

	if len(cfg.RoleProfiles) > 0 {
		profiles := consensus.DefaultRoleProfiles()
		for roleType, pc := range cfg.RoleProfiles {
			profiles[roleType] = consensus.RoleProfile{
				MinRelevance: pc.MinRelevance,
				MaxInsights:  pc.MaxInsights,
				Multipliers:  pc.Multipliers,
			}
		}
		opts = append(opts, consensus.WithRoleProfiles(profiles))
	}

	return opts
}
