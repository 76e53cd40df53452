package config

import (
	"github.com/google/renameio/v2"
)

// DefaultConfigYAML is written by `quorumhire init`. It documents the
// tunable surface; omitted values use the built-in defaults.
const DefaultConfigYAML = `# quorum-hire configuration
#
# The API key is read from the environment:
#   QUORUMHIRE_PROVIDER_API_KEY

log:
  level: info
  format: auto

server:
  addr: ":8484"
  request_timeout: 120s

# LLM backend shared by the three evaluation agents.
# Providers: openai | gemini | mock
provider:
  name: openai
  model: gpt-4o-mini
  temperature: 0.3

# Agent weight table for the weighted consensus score.
consensus:
  weights:
    leadership: 0.34
    technical: 0.33
    culture: 0.33
  # Per-role-type insight aggregation tuning. These constants were
  # tuned by inspection; override only with evidence.
  # role_profiles:
  #   executive:
  #     min_relevance: 65
  #     max_insights: 5
  #     multipliers:
  #       leadership: 1.3
  #       technical: 0.9
  #       culture: 1.1

costs:
  enabled: true
`

// WriteDefault writes the default config file atomically. Existing
// files are never overwritten; callers check existence first.
func WriteDefault(path string) error {
	return renameio.WriteFile(path, []byte(DefaultConfigYAML), 0o644)
}
