package research

import (
	"context"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultAnthropicModel = "claude-haiku-4-5-20251001"

// AnthropicOption configures the Anthropic client.
type AnthropicOption func(*anthropicClient)

// WithAnthropicModel overrides the default model.
func WithAnthropicModel(model string) AnthropicOption {
	return func(c *anthropicClient) { c.model = model }
}

// WithAnthropicRateLimit overrides the default request rate (2 req/s).
func WithAnthropicRateLimit(rps float64) AnthropicOption {
	return func(c *anthropicClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type anthropicClient struct {
	client  sdk.Client
	model   string
	limiter *rate.Limiter
}

// NewAnthropic creates a Claude-backed research client. Unlike the
// Perplexity backend it does not return search citations; the citations
// slice is always empty.
func NewAnthropic(apiKey string, opts ...AnthropicOption) Client {
	c := &anthropicClient{
		client:  sdk.NewClient(option.WithAPIKey(apiKey)),
		model:   defaultAnthropicModel,
		limiter: rate.NewLimiter(2, 2),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *anthropicClient) Research(ctx context.Context, req Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "anthropic: rate limit wait")
		}
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: 2000,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.UserPrompt())),
		},
		Temperature: sdk.Float(0.2),
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, eris.Wrap(err, "anthropic: create message")
	}

	var content string
	for _, block := range msg.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return &Response{
		Content: content,
		Model:   string(msg.Model),
		Usage: Usage{
			PromptTokens:     int(msg.Usage.InputTokens),
			CompletionTokens: int(msg.Usage.OutputTokens),
		},
	}, nil
}
