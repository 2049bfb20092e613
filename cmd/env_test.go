package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/whoisrunning/civic-research/internal/config"
	"github.com/whoisrunning/civic-research/internal/cost"
	"github.com/whoisrunning/civic-research/internal/model"
)

func TestCostRatesMerge(t *testing.T) {
	rates := costRates(config.PricingConfig{
		Anthropic: map[string]config.ModelPricing{
			"claude-haiku-4-5-20251001": {Input: 1.00, Output: 5.00},
		},
		Perplexity: config.PerplexityPricing{PerQuery: 0.01},
	})

	assert.Equal(t, cost.ModelRate{Input: 1.00, Output: 5.00}, rates.Anthropic["claude-haiku-4-5-20251001"])
	// Models not overridden keep their defaults.
	assert.Equal(t, cost.ModelRate{Input: 3.00, Output: 15.00}, rates.Anthropic["claude-sonnet-4-5-20250929"])
	assert.Equal(t, 0.01, rates.Perplexity.PerQuery)
}

func TestCostRatesDefaults(t *testing.T) {
	rates := costRates(config.PricingConfig{})
	assert.Equal(t, cost.DefaultRates(), rates)
}

func TestExportContributions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	contributions := []model.Contribution{
		{
			ID:          "c1",
			SessionID:   "cs_1",
			AmountCents: 2500,
			Currency:    "usd",
			Email:       "donor@example.com",
			Recurring:   true,
			Status:      model.ContributionActive,
			CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	require.NoError(t, exportContributions(contributions, path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "cs_1", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "2500", sheet.Rows[1].Cells[2].String())
	assert.Equal(t, "true", sheet.Rows[1].Cells[5].String())
}
