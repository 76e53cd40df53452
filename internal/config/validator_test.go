package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "auto"},
		Server: ServerConfig{Addr: ":8484", RequestTimeout: "120s"},
		Provider: ProviderConfig{
			Name:        "openai",
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
		},
		Consensus: ConsensusConfig{
			Weights: map[string]float64{"leadership": 0.34, "technical": 0.33, "culture": 0.33},
		},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, NewValidator().Validate(validConfig()))
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"bad timeout", func(c *Config) { c.Server.RequestTimeout = "soon" }, "server.request_timeout"},
		{"bad provider", func(c *Config) { c.Provider.Name = "anthropic" }, "provider.name"},
		{"empty model", func(c *Config) { c.Provider.Model = "" }, "provider.model"},
		{"temperature too high", func(c *Config) { c.Provider.Temperature = 2.5 }, "provider.temperature"},
		{"negative weight", func(c *Config) { c.Consensus.Weights["culture"] = -1 }, "consensus.weights.culture"},
		{"bad profile relevance", func(c *Config) {
			c.Consensus.RoleProfiles = map[string]RoleProfileConfig{
				"executive": {MinRelevance: 150, MaxInsights: 5},
			}
		}, "consensus.role_profiles.executive.min_relevance"},
		{"zero max insights", func(c *Config) {
			c.Consensus.RoleProfiles = map[string]RoleProfileConfig{
				"general": {MinRelevance: 50, MaxInsights: 0},
			}
		}, "consensus.role_profiles.general.max_insights"},
		{"negative multiplier", func(c *Config) {
			c.Consensus.RoleProfiles = map[string]RoleProfileConfig{
				"general": {MinRelevance: 50, MaxInsights: 5, Multipliers: map[string]float64{"technical": -0.5}},
			}
		}, "consensus.role_profiles.general.multipliers.technical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := NewValidator().Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestValidationErrorsCollectAll(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "loud"
	cfg.Provider.Name = "unknown"

	err := NewValidator().Validate(cfg)
	require.Error(t, err)

	verrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, verrs, 2)
}
