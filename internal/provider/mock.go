package provider

import (
	"context"
	"sync"
	"time"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
)

// defaultMockContent is a structurally valid assessment that passes
// every role's validation heuristic, used when no response is queued.
const defaultMockContent = `{
  "assessment": "The candidate shows solid leadership potential and strategic thinking, strong technical depth across the listed stack, and a collaborative culture fit with steady growth and measurable business impact over previous roles.",
  "score": 0.72,
  "highlights": [
    {"text": "Consistent delivery across roles", "relevance": 80, "reasoning": "Multiple positions with shipped outcomes"}
  ],
  "concerns": [
    {"text": "Limited exposure to large teams", "relevance": 60, "reasoning": "Largest reported team size is small"}
  ],
  "recommendations": {
    "for_recruiter": ["Proceed to a structured interview"],
    "for_candidate": [],
    "interview_focus": ["Ask about team scaling experience"]
  }
}`

// MockClient is a deterministic in-process provider used by tests and
// dry-run evaluations.
type MockClient struct {
	model string

	mu        sync.Mutex
	responses []string
	err       error
	calls     [][]core.ChatMessage
}

// NewMockClient creates a mock provider client.
func NewMockClient(model string) *MockClient {
	if model == "" {
		model = "mock"
	}
	return &MockClient{model: model}
}

// EnqueueResponse queues the next Complete content, FIFO.
func (m *MockClient) EnqueueResponse(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, content)
}

// FailWith makes every subsequent Complete return err.
func (m *MockClient) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the recorded message lists.
func (m *MockClient) Calls() [][]core.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]core.ChatMessage, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockClient) Provider() string { return string(ProviderMock) }

func (m *MockClient) SupportsStreaming() bool { return false }

func (m *MockClient) Complete(_ context.Context, messages []core.ChatMessage, _ core.CompletionOptions) (*core.StandardResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, messages)

	if m.err != nil {
		return nil, m.err
	}

	content := defaultMockContent
	if len(m.responses) > 0 {
		content = m.responses[0]
		m.responses = m.responses[1:]
	}

	return &core.StandardResponse{
		Content:      content,
		FinishReason: "stop",
		Usage:        core.TokenUsage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
		Model:        m.model,
		Provider:     m.Provider(),
		Timestamp:    time.Unix(0, 0).UTC(),
	}, nil
}

func (m *MockClient) Stream(_ context.Context, _ []core.ChatMessage, _ core.CompletionOptions) (<-chan core.StreamChunk, error) {
	return nil, core.ErrProvider(core.CodeProviderValidation, "streaming is not supported by the mock client")
}
