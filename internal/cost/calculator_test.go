package cost

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRates() Rates {
	return Rates{
		Anthropic: map[string]ModelRate{
			"haiku":  {Input: 0.80, Output: 4.00},
			"sonnet": {Input: 3.00, Output: 15.00},
		},
		Perplexity: PerplexityRate{PerQuery: 0.005},
	}
}

func TestClaude(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testRates())

	tests := []struct {
		name   string
		model  string
		input  int
		output int
		want   float64
	}{
		{name: "haiku", model: "haiku", input: 1000000, output: 100000, want: 0.80 + 0.40},
		{name: "sonnet", model: "sonnet", input: 500000, output: 200000, want: 1.50 + 3.00},
		{name: "unknown model", model: "gpt-x", input: 1000000, output: 1000000, want: 0},
		{name: "zero usage", model: "haiku", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, calc.Claude(tt.model, tt.input, tt.output), 1e-9)
		})
	}
}

func TestPerplexityQuery(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testRates())
	assert.InDelta(t, 0.005, calc.PerplexityQuery(), 1e-9)
}

func TestTracker(t *testing.T) {
	t.Parallel()
	tr := NewTracker(NewCalculator(testRates()))

	tr.RecordPerplexity()
	tr.RecordPerplexity()
	tr.RecordClaude("haiku", 1000000, 100000)
	tr.RecordCacheHit()

	totals := tr.Totals()
	assert.Equal(t, 3, totals.Queries)
	assert.Equal(t, 1, totals.CacheHits)
	assert.InDelta(t, 0.01+1.20, totals.USD, 1e-9)
}

func TestTrackerConcurrent(t *testing.T) {
	t.Parallel()
	tr := NewTracker(NewCalculator(testRates()))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.RecordPerplexity()
			tr.RecordCacheHit()
		}()
	}
	wg.Wait()

	totals := tr.Totals()
	assert.Equal(t, 50, totals.Queries)
	assert.Equal(t, 50, totals.CacheHits)
	assert.InDelta(t, 0.25, totals.USD, 1e-9)
}

func TestDefaultRates(t *testing.T) {
	t.Parallel()
	rates := DefaultRates()
	assert.NotEmpty(t, rates.Anthropic)
	assert.Greater(t, rates.Perplexity.PerQuery, 0.0)
}
