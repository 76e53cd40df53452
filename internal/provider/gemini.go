package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/logging"
)

// geminiClient adapts the Gemini API to the ProviderClient contract.
type geminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	tracker     *CostTracker
	logger      *logging.Logger
}

func newGeminiClient(cfg Config, o *options) (*geminiClient, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, core.ErrConfiguration(core.CodeInvalidAPIKey, "creating gemini client").WithCause(err)
	}

	return &geminiClient{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		tracker:     o.tracker,
		logger:      o.logger.WithProvider("gemini"),
	}, nil
}

func (c *geminiClient) Provider() string { return string(ProviderGemini) }

// SupportsStreaming reports false: the streaming variant is only wired
// for the OpenAI backend; callers fall back to Complete.
func (c *geminiClient) SupportsStreaming() bool { return false }

// Complete sends the conversation and normalizes the response. The
// JSON response MIME type forces a JSON-object-shaped reply.
func (c *geminiClient) Complete(ctx context.Context, messages []core.ChatMessage, opts core.CompletionOptions) (*core.StandardResponse, error) {
	start := time.Now()

	model := c.model
	if opts.Model != "" {
		model = opts.Model
	}
	temperature := c.temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: m.Content}},
			}
		case core.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, c.classifyError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, core.ErrProvider(core.CodeUnknown, "gemini returned no candidates")
	}

	text := resp.Text()
	if text == "" {
		return nil, core.ErrProvider(core.CodeContentFiltered, "gemini returned no text content")
	}

	var usage core.TokenUsage
	if resp.UsageMetadata != nil {
		usage = core.TokenUsage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	duration := time.Since(start)

	if c.tracker != nil {
		c.tracker.Record(c.Provider(), model, usage, duration)
	}

	c.logger.Debug("completion finished",
		"model", model,
		"tokens", usage.TotalTokens,
		"duration_ms", duration.Milliseconds(),
	)

	return &core.StandardResponse{
		Content:      text,
		FinishReason: string(resp.Candidates[0].FinishReason),
		Usage:        usage,
		Model:        model,
		Provider:     c.Provider(),
		Timestamp:    time.Now().UTC(),
	}, nil
}

// Stream is not implemented for the Gemini backend.
func (c *geminiClient) Stream(_ context.Context, _ []core.ChatMessage, _ core.CompletionOptions) (<-chan core.StreamChunk, error) {
	return nil, core.ErrProvider(core.CodeProviderValidation, "streaming is not supported by the gemini client")
}

// classifyError maps Gemini API failures onto the provider taxonomy.
func (c *geminiClient) classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return core.ErrProvider(core.CodeTimeout, "gemini request timed out").WithCause(err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			if strings.Contains(strings.ToLower(msg), "quota") {
				return core.ErrProvider(core.CodeInsufficientQuota, msg).WithCause(err)
			}
			return core.ErrProvider(core.CodeRateLimitExceeded, msg).WithCause(err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return core.ErrProvider(core.CodeInvalidAPIKey, msg).WithCause(err)
		case http.StatusNotFound:
			return core.ErrProvider(core.CodeModelNotFound, msg).WithCause(err)
		case http.StatusBadRequest:
			lower := strings.ToLower(msg)
			if strings.Contains(lower, "token") && strings.Contains(lower, "exceed") {
				return core.ErrProvider(core.CodeContextLengthExceeded, msg).WithCause(err)
			}
			return core.ErrProvider(core.CodeProviderValidation, msg).WithCause(err)
		default:
			return core.ErrProvider(core.CodeUnknown, msg).WithCause(err)
		}
	}

	return core.ErrProvider(core.CodeNetworkError, err.Error()).WithCause(err)
}
