package model

// TrendDirection indicates which way a trending candidate's attention is
// moving.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// TrendingEntry is one candidate in the "most talked about" list. SearchCount
// and PercentChange are synthetic filler unless Estimated is false; the
// research text rarely carries real numbers for them.
type TrendingEntry struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Office        string         `json:"office"`
	State         string         `json:"state"`
	Party         Party          `json:"party"`
	SearchCount   int            `json:"search_count"`
	PercentChange float64        `json:"percent_change"`
	Trend         TrendDirection `json:"trend"`
	Estimated     bool           `json:"estimated"` // numeric fields are placeholder, not extracted
}

// WinnerEntry is one recent election winner. ElectionDate is the raw matched
// text ("November 5, 2024", "Recent") or a normalized ISO date when parsing
// succeeded.
type WinnerEntry struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Office         string  `json:"office"`
	State          string  `json:"state"`
	Party          Party   `json:"party"`
	ElectionDate   string  `json:"election_date"`
	VotePercentage float64 `json:"vote_percentage"`
	Estimated      bool    `json:"estimated"` // vote percentage is placeholder, not extracted
}

// ElectedOfficial is a currently-serving official returned by the
// politicians-by-location lookup.
type ElectedOfficial struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Office string `json:"office"`
	Party  Party  `json:"party"`
}
