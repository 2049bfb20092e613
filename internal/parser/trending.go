package parser

import (
	"math/rand/v2"
	"time"

	"github.com/whoisrunning/civic-research/internal/model"
)

// Defaults applied when a field extraction misses. The party default is
// model.PartyUnknown everywhere; display labels are a presentation concern.
const (
	defaultOffice       = "Political Office"
	defaultWinnerOffice = "Elected Office"
	defaultState        = "United States"
)

// ParseTrending extracts up to five trending candidates from content. The
// search count is always synthetic, and the percent change is synthetic
// unless the text carried an explicit percentage; synthetic records are
// flagged Estimated. Randomness never decides which records exist or their
// order, only the filler numbers.
func ParseTrending(content string) []model.TrendingEntry {
	entries := ParseList(content, TrendingProfile)
	out := make([]model.TrendingEntry, 0, len(entries))
	for _, e := range entries {
		te := model.TrendingEntry{
			ID:          model.MakeID(e.Name),
			Name:        e.Name,
			Office:      e.Office,
			State:       e.State,
			Party:       e.Party,
			SearchCount: 5000 + rand.IntN(15000),
			Trend:       model.TrendUp,
			Estimated:   true,
		}
		if !e.OfficeOK {
			te.Office = defaultOffice
		}
		if !e.StateOK {
			te.State = defaultState
		}
		if e.VoteOK {
			te.PercentChange = e.Vote
			te.Estimated = false
		} else {
			te.PercentChange = 5 + rand.Float64()*40
		}
		out = append(out, te)
	}
	return out
}

// ParseWinners extracts up to five recent election winners. A missing
// election date becomes a random recent date and a missing vote share a
// plausible winning percentage; either substitution marks the record
// Estimated.
func ParseWinners(content string) []model.WinnerEntry {
	entries := ParseList(content, WinnersProfile)
	out := make([]model.WinnerEntry, 0, len(entries))
	for _, e := range entries {
		we := model.WinnerEntry{
			ID:     model.MakeID(e.Name),
			Name:   e.Name,
			Office: e.Office,
			State:  e.State,
			Party:  e.Party,
		}
		if !e.OfficeOK {
			we.Office = defaultWinnerOffice
		}
		if !e.StateOK {
			we.State = defaultState
		}
		if e.DateOK {
			we.ElectionDate = e.Date
		} else {
			we.ElectionDate = time.Now().AddDate(0, 0, -rand.IntN(90)).Format("2006-01-02")
			we.Estimated = true
		}
		if e.VoteOK {
			we.VotePercentage = e.Vote
		} else {
			we.VotePercentage = 50 + rand.Float64()*15
			we.Estimated = true
		}
		out = append(out, we)
	}
	return out
}

// ParseOfficials extracts currently-serving elected officials, uncapped.
func ParseOfficials(content string) []model.ElectedOfficial {
	entries := ParseList(content, OfficialsProfile)
	out := make([]model.ElectedOfficial, 0, len(entries))
	for _, e := range entries {
		eo := model.ElectedOfficial{
			ID:     model.MakeID(e.Name),
			Name:   e.Name,
			Office: e.Office,
			Party:  e.Party,
		}
		if !e.OfficeOK {
			eo.Office = "Elected Official"
		}
		out = append(out, eo)
	}
	return out
}
