// Package provider implements the uniform LLM client over a closed set
// of backends. The backend is chosen by exhaustive match at
// construction, so an unsupported provider is a compile-visible branch
// rather than a runtime registry miss.
package provider

import (
	"fmt"
	"strings"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/logging"
)

// Provider identifies a supported backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderMock   Provider = "mock"
)

// supportedModels lists the model set accepted per provider.
var supportedModels = map[Provider][]string{
	ProviderOpenAI: {
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4.1",
		"gpt-4.1-mini",
	},
	ProviderGemini: {
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.0-flash",
	},
	ProviderMock: {"mock"},
}

// Config configures a provider client. Validated once at construction
// and immutable thereafter.
type Config struct {
	Provider    Provider
	Model       string
	APIKey      string
	Temperature float32
}

// Option customizes client construction.
type Option func(*options)

type options struct {
	tracker *CostTracker
	logger  *logging.Logger
}

// WithCostTracker enables usage/cost accumulation on every completion.
func WithCostTracker(t *CostTracker) Option {
	return func(o *options) { o.tracker = t }
}

// WithLogger sets the client logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New validates the config and constructs the matching client.
func New(cfg Config, opts ...Option) (core.ProviderClient, error) {
	o := &options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return newOpenAIClient(cfg, o), nil
	case ProviderGemini:
		return newGeminiClient(cfg, o)
	case ProviderMock:
		return NewMockClient(cfg.Model), nil
	default:
		// validate already rejected unknown providers
		return nil, core.ErrConfiguration(core.CodeUnsupportedProvider,
			fmt.Sprintf("unsupported provider: %s", cfg.Provider))
	}
}

func validate(cfg Config) error {
	models, ok := supportedModels[cfg.Provider]
	if !ok {
		return core.ErrConfiguration(core.CodeUnsupportedProvider,
			fmt.Sprintf("unsupported provider: %q (supported: openai, gemini, mock)", cfg.Provider))
	}

	if !contains(models, cfg.Model) {
		return core.ErrConfiguration(core.CodeUnsupportedModel,
			fmt.Sprintf("model %q is not supported by provider %s (supported: %s)",
				cfg.Model, cfg.Provider, strings.Join(models, ", ")))
	}

	if cfg.Provider != ProviderMock && strings.TrimSpace(cfg.APIKey) == "" {
		return core.ErrConfiguration(core.CodeMissingAPIKey,
			fmt.Sprintf("API key for provider %s is missing or empty", cfg.Provider))
	}

	return nil
}

// SupportedModels returns the accepted model list for a provider.
func SupportedModels(p Provider) []string {
	models := supportedModels[p]
	out := make([]string, len(models))
	copy(out, models)
	return out
}

func contains(list []string, item string) bool {
	for _, s := range list {
		if s == item {
			return true
		}
	}
	return false
}
