package parser

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/whoisrunning/civic-research/internal/model"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// Row types mirror the record shapes with yaml tags; the model types stay
// json-only.
type trendingRow struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Office        string  `yaml:"office"`
	State         string  `yaml:"state"`
	Party         string  `yaml:"party"`
	SearchCount   int     `yaml:"search_count"`
	PercentChange float64 `yaml:"percent_change"`
	Trend         string  `yaml:"trend"`
}

type winnerRow struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Office         string  `yaml:"office"`
	State          string  `yaml:"state"`
	Party          string  `yaml:"party"`
	ElectionDate   string  `yaml:"election_date"`
	VotePercentage float64 `yaml:"vote_percentage"`
}

type fallbackData struct {
	Trending []trendingRow `yaml:"trending"`
	Winners  []winnerRow   `yaml:"winners"`
}

var fallback = func() fallbackData {
	var d fallbackData
	if err := yaml.Unmarshal(fallbackYAML, &d); err != nil {
		panic("parser: bad embedded fallback data: " + err.Error())
	}
	return d
}()

// FallbackTrending returns the placeholder trending set, always flagged
// Estimated.
func FallbackTrending() []model.TrendingEntry {
	out := make([]model.TrendingEntry, 0, len(fallback.Trending))
	for _, r := range fallback.Trending {
		out = append(out, model.TrendingEntry{
			ID:            r.ID,
			Name:          r.Name,
			Office:        r.Office,
			State:         r.State,
			Party:         model.Party(r.Party),
			SearchCount:   r.SearchCount,
			PercentChange: r.PercentChange,
			Trend:         model.TrendDirection(r.Trend),
			Estimated:     true,
		})
	}
	return out
}

// FallbackWinners returns the placeholder winners set, always flagged
// Estimated.
func FallbackWinners() []model.WinnerEntry {
	out := make([]model.WinnerEntry, 0, len(fallback.Winners))
	for _, r := range fallback.Winners {
		out = append(out, model.WinnerEntry{
			ID:             r.ID,
			Name:           r.Name,
			Office:         r.Office,
			State:          r.State,
			Party:          model.Party(r.Party),
			ElectionDate:   r.ElectionDate,
			VotePercentage: r.VotePercentage,
			Estimated:      true,
		})
	}
	return out
}
