package core

import (
	"context"
	"time"
)

// ChatMessage is a single message in a provider conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionOptions tunes a single completion call. Zero values defer
// to the client's configured defaults.
type CompletionOptions struct {
	Model       string
	Temperature *float32
	MaxTokens   int
}

// TokenUsage reports token consumption for one completion.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// StandardResponse is the normalized provider output. Every backend is
// mapped onto this shape.
type StandardResponse struct {
	Content      string                 `json:"content"`
	FinishReason string                 `json:"finishReason"`
	Usage        TokenUsage             `json:"usage"`
	Model        string                 `json:"model"`
	Provider     string                 `json:"provider"`
	Timestamp    time.Time              `json:"timestamp"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// StreamChunk is one increment of a streaming completion. The final
// chunk has Done=true and carries usage when the backend reports it.
type StreamChunk struct {
	Delta string
	Done  bool
	Usage *TokenUsage
}

// ProviderClient is the uniform interface to a pluggable LLM backend.
// Implementations always request a JSON-object-shaped reply, classify
// errors into the DomainError taxonomy, and perform no retries.
type ProviderClient interface {
	// Provider returns the backend identifier ("openai", "gemini", "mock").
	Provider() string

	// Complete sends the message list and returns the normalized response.
	Complete(ctx context.Context, messages []ChatMessage, opts CompletionOptions) (*StandardResponse, error)

	// Stream yields incremental deltas followed by a final usage-bearing
	// chunk. Only valid when SupportsStreaming reports true.
	Stream(ctx context.Context, messages []ChatMessage, opts CompletionOptions) (<-chan StreamChunk, error)

	// SupportsStreaming reports whether Stream is implemented.
	SupportsStreaming() bool
}
