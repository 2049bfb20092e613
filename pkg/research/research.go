// Package research abstracts the search-augmented language-model service
// that answers natural-language civic queries with cited free text. The
// response content carries no schema guarantee; callers treat it as
// untrusted input.
package research

import "context"

// Request is one research query. CandidateName and Context, when set, are
// folded into the user prompt the same way for every backend so cache keys
// stay stable across providers.
type Request struct {
	Query         string `json:"query"`
	CandidateName string `json:"candidate_name,omitempty"`
	Context       string `json:"context,omitempty"`
	System        string `json:"system,omitempty"`
}

// Usage reports token consumption for cost accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Response is the collaborator's answer: free text plus citation URLs.
type Response struct {
	Content   string   `json:"content"`
	Citations []string `json:"citations"`
	Model     string   `json:"model"`
	Usage     Usage    `json:"usage"`
}

// Client performs research queries against one backend.
type Client interface {
	Research(ctx context.Context, req Request) (*Response, error)
}

// UserPrompt renders the effective user-facing prompt for a request.
func (r Request) UserPrompt() string {
	prompt := r.Query
	if r.CandidateName != "" {
		prompt = "Research " + r.CandidateName + " - " + r.Query
	}
	if r.Context != "" {
		prompt += "\n\nContext: " + r.Context
	}
	return prompt
}
