package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
)

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantCode string
	}{
		{
			name:     "unsupported provider",
			cfg:      Config{Provider: "anthropic", Model: "x", APIKey: "k"},
			wantCode: core.CodeUnsupportedProvider,
		},
		{
			name:     "unsupported model",
			cfg:      Config{Provider: ProviderOpenAI, Model: "gpt-2", APIKey: "k"},
			wantCode: core.CodeUnsupportedModel,
		},
		{
			name:     "missing api key",
			cfg:      Config{Provider: ProviderOpenAI, Model: "gpt-4o-mini", APIKey: "  "},
			wantCode: core.CodeMissingAPIKey,
		},
		{
			name:     "gemini missing api key",
			cfg:      Config{Provider: ProviderGemini, Model: "gemini-2.5-flash"},
			wantCode: core.CodeMissingAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)

			var domErr *core.DomainError
			require.True(t, errors.As(err, &domErr))
			assert.Equal(t, core.ErrCatConfig, domErr.Category)
			assert.Equal(t, tt.wantCode, domErr.Code)
			assert.False(t, domErr.Retryable)
		})
	}
}

func TestNewMockNeedsNoKey(t *testing.T) {
	client, err := New(Config{Provider: ProviderMock, Model: "mock"})
	require.NoError(t, err)
	assert.Equal(t, "mock", client.Provider())
	assert.False(t, client.SupportsStreaming())
}

func TestNewOpenAIClient(t *testing.T) {
	client, err := New(Config{Provider: ProviderOpenAI, Model: "gpt-4o-mini", APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, "openai", client.Provider())
	assert.True(t, client.SupportsStreaming())
}

func TestSupportedModelsIsACopy(t *testing.T) {
	models := SupportedModels(ProviderOpenAI)
	require.NotEmpty(t, models)
	models[0] = "tampered"
	assert.NotEqual(t, "tampered", SupportedModels(ProviderOpenAI)[0])
}

func TestMockClientQueueAndDefault(t *testing.T) {
	client := NewMockClient("mock")
	client.EnqueueResponse(`{"custom": true}`)

	first, err := client.Complete(context.Background(), nil, core.CompletionOptions{})
	require.NoError(t, err)
	assert.Equal(t, `{"custom": true}`, first.Content)

	second, err := client.Complete(context.Background(), nil, core.CompletionOptions{})
	require.NoError(t, err)
	assert.Contains(t, second.Content, `"score": 0.72`)
	assert.Equal(t, 150, second.Usage.TotalTokens)
}

func TestMockClientFailWith(t *testing.T) {
	client := NewMockClient("mock")
	wantErr := core.ErrProvider(core.CodeNetworkError, "down")
	client.FailWith(wantErr)

	_, err := client.Complete(context.Background(), nil, core.CompletionOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, wantErr))
}

func TestMockClientRecordsCalls(t *testing.T) {
	client := NewMockClient("mock")
	messages := []core.ChatMessage{{Role: core.RoleUser, Content: "hi"}}

	_, err := client.Complete(context.Background(), messages, core.CompletionOptions{})
	require.NoError(t, err)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "hi", calls[0][0].Content)
}
