package research

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultPerplexityBaseURL = "https://api.perplexity.ai"
	defaultPerplexityModel   = "sonar"
)

// chatMessage is a single message in a chat-completions conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for POST /chat/completions.
type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	Temperature         float64       `json:"temperature"`
	MaxTokens           int           `json:"max_tokens"`
	ReturnCitations     bool          `json:"return_citations"`
	SearchRecencyFilter string        `json:"search_recency_filter,omitempty"`
}

// chatResponse is the response from POST /chat/completions.
type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int         `json:"index"`
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
	Usage     struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// PerplexityOption configures the Perplexity client.
type PerplexityOption func(*perplexityClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) PerplexityOption {
	return func(c *perplexityClient) { c.baseURL = url }
}

// WithModel overrides the default model.
func WithModel(model string) PerplexityOption {
	return func(c *perplexityClient) { c.model = model }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) PerplexityOption {
	return func(c *perplexityClient) { c.http = hc }
}

// WithRateLimit overrides the default request rate (2 req/s).
func WithRateLimit(rps float64) PerplexityOption {
	return func(c *perplexityClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type perplexityClient struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
	limiter *rate.Limiter
}

// NewPerplexity creates a Perplexity-backed research client.
func NewPerplexity(apiKey string, opts ...PerplexityOption) Client {
	c := &perplexityClient{
		apiKey:  apiKey,
		baseURL: defaultPerplexityBaseURL,
		model:   defaultPerplexityModel,
		limiter: rate.NewLimiter(2, 2),
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *perplexityClient) Research(ctx context.Context, req Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "perplexity: rate limit wait")
		}
	}

	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.UserPrompt()})

	body, err := json.Marshal(chatRequest{
		Model:               c.model,
		Messages:            messages,
		Temperature:         0.2,
		MaxTokens:           2000,
		ReturnCitations:     true,
		SearchRecencyFilter: "month",
	})
	if err != nil {
		return nil, eris.Wrap(err, "perplexity: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "perplexity: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "perplexity: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "perplexity: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("perplexity: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "perplexity: unmarshal response")
	}
	if len(result.Choices) == 0 {
		return nil, eris.New("perplexity: response has no choices")
	}

	return &Response{
		Content:   result.Choices[0].Message.Content,
		Citations: result.Citations,
		Model:     result.Model,
		Usage: Usage{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
		},
	}, nil
}
