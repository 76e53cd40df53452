package provider

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/logging"
)

func TestGeminiClassifyError(t *testing.T) {
	client := &geminiClient{logger: logging.NewNop()}

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"rate limit", genai.APIError{Code: http.StatusTooManyRequests, Message: "slow down"}, core.CodeRateLimitExceeded},
		{"quota", genai.APIError{Code: http.StatusTooManyRequests, Message: "quota exceeded"}, core.CodeInsufficientQuota},
		{"bad key", genai.APIError{Code: http.StatusForbidden, Message: "forbidden"}, core.CodeInvalidAPIKey},
		{"model not found", genai.APIError{Code: http.StatusNotFound, Message: "unknown model"}, core.CodeModelNotFound},
		{"token limit", genai.APIError{Code: http.StatusBadRequest, Message: "input token count exceeds limit"}, core.CodeContextLengthExceeded},
		{"bad request", genai.APIError{Code: http.StatusBadRequest, Message: "invalid argument"}, core.CodeProviderValidation},
		{"server error", genai.APIError{Code: http.StatusServiceUnavailable, Message: "unavailable"}, core.CodeUnknown},
		{"plain error", errors.New("dial tcp: connection refused"), core.CodeNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := client.classifyError(tt.err)

			var domErr *core.DomainError
			require.True(t, errors.As(got, &domErr))
			assert.Equal(t, core.ErrCatProvider, domErr.Category)
			assert.Equal(t, tt.wantCode, domErr.Code)
		})
	}
}

func TestGeminiStreamUnsupported(t *testing.T) {
	client := &geminiClient{logger: logging.NewNop()}
	assert.False(t, client.SupportsStreaming())

	_, err := client.Stream(nil, nil, core.CompletionOptions{}) //nolint:staticcheck // nil ctx is fine for the guard path
	require.Error(t, err)

	var domErr *core.DomainError
	require.True(t, errors.As(err, &domErr))
	assert.Equal(t, core.CodeProviderValidation, domErr.Code)
}
