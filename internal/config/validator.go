package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{errors: make(ValidationErrors, 0)}
}

// Validate validates the entire configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.validateLog(&cfg.Log)
	v.validateServer(&cfg.Server)
	v.validateProvider(&cfg.Provider)
	v.validateConsensus(&cfg.Consensus)

	if v.errors.HasErrors() {
		return v.errors
	}
	return nil
}

func (v *Validator) validateLog(cfg *LogConfig) {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		v.addError("log.level", cfg.Level, "must be one of: debug, info, warn, error")
	}

	switch cfg.Format {
	case "auto", "text", "json":
	default:
		v.addError("log.format", cfg.Format, "must be one of: auto, text, json")
	}
}

func (v *Validator) validateServer(cfg *ServerConfig) {
	if cfg.Addr == "" {
		v.addError("server.addr", cfg.Addr, "must not be empty")
	}
	if cfg.RequestTimeout != "" {
		if _, err := time.ParseDuration(cfg.RequestTimeout); err != nil {
			v.addError("server.request_timeout", cfg.RequestTimeout, "must be a valid duration")
		}
	}
}

func (v *Validator) validateProvider(cfg *ProviderConfig) {
	switch cfg.Name {
	case "openai", "gemini", "mock":
	default:
		v.addError("provider.name", cfg.Name, "must be one of: openai, gemini, mock")
	}

	if cfg.Model == "" {
		v.addError("provider.model", cfg.Model, "must not be empty")
	}

	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		v.addError("provider.temperature", cfg.Temperature, "must be between 0 and 2")
	}
}

func (v *Validator) validateConsensus(cfg *ConsensusConfig) {
	for agent, weight := range cfg.Weights {
		if weight <= 0 {
			v.addError("consensus.weights."+agent, weight, "must be positive")
		}
	}

	for roleType, profile := range cfg.RoleProfiles {
		prefix := "consensus.role_profiles." + roleType
		if profile.MinRelevance < 0 || profile.MinRelevance > 100 {
			v.addError(prefix+".min_relevance", profile.MinRelevance, "must be between 0 and 100")
		}
		if profile.MaxInsights <= 0 {
			v.addError(prefix+".max_insights", profile.MaxInsights, "must be positive")
		}
		for agent, multiplier := range profile.Multipliers {
			if multiplier <= 0 {
				v.addError(prefix+".multipliers."+agent, multiplier, "must be positive")
			}
		}
	}
}

func (v *Validator) addError(field string, value interface{}, message string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	})
}
