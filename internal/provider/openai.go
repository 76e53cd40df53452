package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
	"github.com/hugo-lorenzo-mato/quorum-hire/internal/logging"
)

// openaiClient adapts the OpenAI chat completions API to the
// ProviderClient contract.
type openaiClient struct {
	client      *openai.Client
	model       string
	temperature float32
	tracker     *CostTracker
	logger      *logging.Logger
}

func newOpenAIClient(cfg Config, o *options) *openaiClient {
	return &openaiClient{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		tracker:     o.tracker,
		logger:      o.logger.WithProvider("openai"),
	}
}

func (c *openaiClient) Provider() string { return string(ProviderOpenAI) }

func (c *openaiClient) SupportsStreaming() bool { return true }

// Complete sends the conversation and normalizes the response. The
// request always demands a JSON-object reply.
func (c *openaiClient) Complete(ctx context.Context, messages []core.ChatMessage, opts core.CompletionOptions) (*core.StandardResponse, error) {
	start := time.Now()
	req := c.buildRequest(messages, opts)

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, c.classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, core.ErrProvider(core.CodeUnknown, "openai returned no choices")
	}

	usage := core.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	duration := time.Since(start)

	if c.tracker != nil {
		c.tracker.Record(c.Provider(), resp.Model, usage, duration)
	}

	c.logger.Debug("completion finished",
		"model", resp.Model,
		"tokens", usage.TotalTokens,
		"duration_ms", duration.Milliseconds(),
	)

	return &core.StandardResponse{
		Content:      resp.Choices[0].Message.Content,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage:        usage,
		Model:        resp.Model,
		Provider:     c.Provider(),
		Timestamp:    time.Now().UTC(),
		Metadata: map[string]interface{}{
			"response_id": resp.ID,
		},
	}, nil
}

// Stream yields deltas and a final usage-bearing chunk.
func (c *openaiClient) Stream(ctx context.Context, messages []core.ChatMessage, opts core.CompletionOptions) (<-chan core.StreamChunk, error) {
	req := c.buildRequest(messages, opts)
	req.Stream = true
	req.StreamOptions = &openai.StreamOptions{IncludeUsage: true}

	stream, err := c.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, c.classifyError(err)
	}

	out := make(chan core.StreamChunk)
	go c.pumpStream(ctx, stream, out)
	return out, nil
}

// chatStream is the receive side of a completion stream; satisfied by
// *openai.ChatCompletionStream.
type chatStream interface {
	Recv() (openai.ChatCompletionStreamResponse, error)
	Close() error
}

// pumpStream forwards deltas and a final usage-bearing chunk. Every
// send races consumer abandonment; an unread channel after
// cancellation must not pin this goroutine.
func (c *openaiClient) pumpStream(ctx context.Context, stream chatStream, out chan<- core.StreamChunk) {
	defer close(out)
	defer stream.Close()

	send := func(chunk core.StreamChunk) bool {
		select {
		case out <- chunk:
			return true
		case <-ctx.Done():
			return false
		}
	}

	var usage *core.TokenUsage
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			send(core.StreamChunk{Done: true, Usage: usage})
			return
		}
		if err != nil {
			c.logger.Warn("stream aborted", "error", err)
			send(core.StreamChunk{Done: true, Usage: usage})
			return
		}
		if chunk.Usage != nil {
			usage = &core.TokenUsage{
				PromptTokens:     chunk.Usage.PromptTokens,
				CompletionTokens: chunk.Usage.CompletionTokens,
				TotalTokens:      chunk.Usage.TotalTokens,
			}
		}
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			if !send(core.StreamChunk{Delta: chunk.Choices[0].Delta.Content}) {
				return
			}
		}
	}
}

func (c *openaiClient) buildRequest(messages []core.ChatMessage, opts core.CompletionOptions) openai.ChatCompletionRequest {
	model := c.model
	if opts.Model != "" {
		model = opts.Model
	}
	temperature := c.temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	oaiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		oaiMessages = append(oaiMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    oaiMessages,
		Temperature: temperature,
		MaxTokens:   opts.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
}

// classifyError maps API failures onto the provider error taxonomy.
func (c *openaiClient) classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return core.ErrProvider(core.CodeTimeout, "openai request timed out").WithCause(err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		switch apiErr.HTTPStatusCode {
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
			if strings.Contains(lower, "context length") || strings.Contains(lower, "maximum context") {
				return core.ErrProvider(core.CodeContextLengthExceeded, msg).WithCause(err)
			}
			if strings.Contains(lower, "content") && strings.Contains(lower, "filter") {
				return core.ErrProvider(core.CodeContentFiltered, msg).WithCause(err)
			}
			return core.ErrProvider(core.CodeProviderValidation, msg).WithCause(err)
		default:
			return core.ErrProvider(core.CodeUnknown, msg).WithCause(err)
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return core.ErrProvider(core.CodeNetworkError, reqErr.Error()).WithCause(err)
	}

	return core.ErrProvider(core.CodeNetworkError, err.Error()).WithCause(err)
}
