// Package config loads and validates application configuration from
// flags, environment, and YAML files.
package config

// Config holds all application configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Consensus ConsensusConfig `mapstructure:"consensus"`
	Costs     CostsConfig     `mapstructure:"costs"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr           string `mapstructure:"addr"`
	RequestTimeout string `mapstructure:"request_timeout"`
}

// ProviderConfig configures the LLM backend shared by all agents.
type ProviderConfig struct {
	Name        string  `mapstructure:"name"`
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	Temperature float64 `mapstructure:"temperature"`
}

// ConsensusConfig tunes the consensus engine. The defaults are the
// heuristic constants the engine ships with; override with care.
type ConsensusConfig struct {
	Weights      map[string]float64           `mapstructure:"weights"`
	RoleProfiles map[string]RoleProfileConfig `mapstructure:"role_profiles"`
}

// RoleProfileConfig tunes insight aggregation for one role type.
type RoleProfileConfig struct {
	MinRelevance int                `mapstructure:"min_relevance"`
	MaxInsights  int                `mapstructure:"max_insights"`
	Multipliers  map[string]float64 `mapstructure:"multipliers"`
}

// CostsConfig configures usage/cost tracking.
type CostsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
