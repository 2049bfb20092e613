// Package cost tracks research API spend. Perplexity bills a flat rate
// per search query; Anthropic bills per token.
package cost

import "sync"

// Rates holds per-provider pricing configuration.
type Rates struct {
	Anthropic  map[string]ModelRate `yaml:"anthropic" mapstructure:"anthropic"`
	Perplexity PerplexityRate       `yaml:"perplexity" mapstructure:"perplexity"`
}

// ModelRate holds per-model token pricing (per million tokens).
type ModelRate struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// PerplexityRate holds Perplexity pricing.
type PerplexityRate struct {
	PerQuery float64 `yaml:"per_query" mapstructure:"per_query"`
}

// Calculator computes costs for API usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Claude computes the cost for a Claude API call. Unknown models cost 0.
func (c *Calculator) Claude(model string, input, output int) float64 {
	rate, ok := c.rates.Anthropic[model]
	if !ok {
		return 0
	}
	return (float64(input)/1e6)*rate.Input + (float64(output)/1e6)*rate.Output
}

// PerplexityQuery returns the flat cost per Perplexity query.
func (c *Calculator) PerplexityQuery() float64 {
	return c.rates.Perplexity.PerQuery
}

// DefaultRates returns the default pricing rates.
func DefaultRates() Rates {
	return Rates{
		Anthropic: map[string]ModelRate{
			"claude-haiku-4-5-20251001":  {Input: 0.80, Output: 4.00},
			"claude-sonnet-4-5-20250929": {Input: 3.00, Output: 15.00},
		},
		Perplexity: PerplexityRate{PerQuery: 0.005},
	}
}

// Totals is a snapshot of accumulated spend.
type Totals struct {
	Queries   int     `json:"queries"`
	CacheHits int     `json:"cacheHits"`
	USD       float64 `json:"usd"`
}

// Tracker accumulates spend across research calls. Safe for concurrent use.
type Tracker struct {
	calc *Calculator

	mu        sync.Mutex
	queries   int
	cacheHits int
	usd       float64
}

// NewTracker creates a Tracker backed by calc.
func NewTracker(calc *Calculator) *Tracker {
	return &Tracker{calc: calc}
}

// RecordPerplexity records one billed Perplexity query.
func (t *Tracker) RecordPerplexity() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queries++
	t.usd += t.calc.PerplexityQuery()
}

// RecordClaude records one billed Claude call.
func (t *Tracker) RecordClaude(model string, input, output int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queries++
	t.usd += t.calc.Claude(model, input, output)
}

// RecordCacheHit records a request served from cache at no cost.
func (t *Tracker) RecordCacheHit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cacheHits++
}

// Totals returns a snapshot of accumulated spend.
func (t *Tracker) Totals() Totals {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Totals{Queries: t.queries, CacheHits: t.cacheHits, USD: t.usd}
}
