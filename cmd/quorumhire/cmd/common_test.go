package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/config"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
)

func defaultTestConfig() *config.Config {
	return &config.Config{
		Log:    config.LogConfig{Level: "error", Format: "json"},
		Server: config.ServerConfig{Addr: ":8484", RequestTimeout: "120s"},
		Provider: config.ProviderConfig{
			Name:        "mock",
			Model:       "mock",
			Temperature: 0.3,
		},
		Costs: config.CostsConfig{Enabled: true},
	}
}

func TestBuildPipelineWithMockProvider(t *testing.T) {
	p, err := buildPipeline(defaultTestConfig(), newLogger(defaultTestConfig()), false)
	require.NoError(t, err)
	require.NotNil(t, p.summarizer)
	require.NotNil(t, p.costs)
}

func TestBuildPipelineDryRunIgnoresProviderConfig(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Provider.Name = "openai"
	cfg.Provider.Model = "gpt-4o-mini"
	// No API key configured; dry-run must still work.
	p, err := buildPipeline(cfg, newLogger(cfg), true)
	require.NoError(t, err)
	require.NotNil(t, p.summarizer)
}

func TestBuildPipelineRejectsBadProvider(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Provider.Name = "openai"
	cfg.Provider.Model = "gpt-4o-mini"
	cfg.Provider.APIKey = ""

	_, err := buildPipeline(cfg, newLogger(cfg), false)
	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatConfig))
}

func TestConsensusOptions(t *testing.T) {
	assert.Empty(t, consensusOptions(config.ConsensusConfig{}))

	opts := consensusOptions(config.ConsensusConfig{
		Weights: map[string]float64{"leadership": 0.5},
		RoleProfiles: map[string]config.RoleProfileConfig{
			"executive": {MinRelevance: 70, MaxInsights: 4},
		},
	})
	assert.Len(t, opts, 2)
}

func TestReadInputFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidate.json")
	payload := `{"structuredData": {"name": "Jordan"}, "rawText": "` +
		strings.Repeat("x", 120) + `", "evaluationScores": {"overall": 0.8}}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	input, err := readInput(path)
	require.NoError(t, err)
	assert.Equal(t, "Jordan", input.StructuredData["name"])
	assert.Len(t, input.RawText, 120)
}

func TestReadInputMissingFile(t *testing.T) {
	_, err := readInput(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestWriteSummaryFormats(t *testing.T) {
	summary := core.EvaluationSummary{
		Summary: core.ConsensusSummary{
			OverallRecommendation: core.RecommendHire,
			WeightedScore:         0.7,
		},
		Metadata: core.SummaryMetadata{EvaluationID: "eval-1", Timestamp: time.Unix(0, 0).UTC()},
	}

	var jsonBuf bytes.Buffer
	require.NoError(t, writeSummary(&jsonBuf, summary, "json"))
	var jsonDoc map[string]interface{}
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &jsonDoc))
	assert.Equal(t, "hire", jsonDoc["summary"].(map[string]interface{})["overall_recommendation"])

	var yamlBuf bytes.Buffer
	require.NoError(t, writeSummary(&yamlBuf, summary, "yaml"))
	var yamlDoc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &yamlDoc))
	assert.Equal(t, "hire", yamlDoc["summary"].(map[string]interface{})["overall_recommendation"])

	require.Error(t, writeSummary(&bytes.Buffer{}, summary, "toml"))
}

func TestRunInitWritesConfig(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(cwd) }()
	require.NoError(t, os.Chdir(t.TempDir()))

	require.NoError(t, runInit(nil, nil))

	data, err := os.ReadFile(".quorumhire.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "provider:")

	// Second run without --force refuses to overwrite.
	initForce = false
	require.Error(t, runInit(nil, nil))

	initForce = true
	defer func() { initForce = false }()
	require.NoError(t, runInit(nil, nil))
}
