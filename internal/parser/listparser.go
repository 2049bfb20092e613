// Package parser turns raw research-model answers into structured records.
// One parameterized list engine drives the flat record shapes (trending,
// winners, officials, candidate search); the candidate-detail and
// policy-impact parsers have their own block logic. Parsers never fail: a
// block without a name is skipped, a missing field gets the caller's
// default, and worst case the output list is empty.
package parser

import (
	"strings"

	"github.com/whoisrunning/civic-research/internal/extract"
	"github.com/whoisrunning/civic-research/internal/model"
)

// Item is one record-sized span of response text: the detected name plus the
// full block it came from. Labeled fields ("Party: ...") often appear on
// lines after the header, so field extraction always runs against Block, not
// just the header line.
type Item struct {
	Name  string
	Block string
}

// Items segments content into per-record blocks. A line that matches the
// list-item detector and yields a name opens a new block; every following
// line up to the next such header joins the open block. Lines outside any
// block are narrative filler and are dropped, as are list items with no
// extractable name.
func Items(content string) []Item {
	var items []Item
	var block strings.Builder
	open := false

	flush := func() {
		if open {
			items[len(items)-1].Block = block.String()
			block.Reset()
			open = false
		}
	}

	for _, line := range strings.Split(content, "\n") {
		rest, isItem := extract.ListItem(line)
		if isItem {
			if name, ok := extract.Name(rest); ok && !isFieldLabel(name) {
				flush()
				items = append(items, Item{Name: name})
				block.WriteString(line)
				open = true
				continue
			}
			// No usable name: a field bullet ("- Party: ...") inside the
			// open block, or junk outside one.
		}
		if open {
			block.WriteByte('\n')
			block.WriteString(line)
		}
	}
	flush()
	return items
}

// fieldLabels are bullet prefixes that describe a field of the current
// record, not a new record. "- Party: Democrat" must join the open block
// instead of becoming a candidate named "Party".
var fieldLabels = map[string]struct{}{
	"name": {}, "party": {}, "office": {}, "office won": {}, "state": {},
	"county": {}, "city": {}, "title": {}, "position": {}, "website": {},
	"election date": {}, "vote percentage": {}, "date": {}, "source": {},
	"bio": {}, "background": {}, "search count": {}, "trend": {},
	"why trending": {}, "why they're trending": {}, "current position": {},
	"key positions": {}, "recent news": {},
}

func isFieldLabel(name string) bool {
	_, ok := fieldLabels[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Entry is the field bundle the list engine extracts from one block. The OK
// flags preserve the miss/hit distinction so each record constructor applies
// its own defaults.
type Entry struct {
	Name     string
	Party    model.Party
	PartyOK  bool
	Office   string
	OfficeOK bool
	State    string
	StateOK  bool
	Date     string
	DateOK   bool
	Vote     float64
	VoteOK   bool
}

// Profile configures the list engine for one record shape: which labels name
// the office field, whether dates and vote percentages are wanted, and the
// output cap (0 means uncapped).
type Profile struct {
	OfficeLabels []string
	WantDate     bool
	WantVote     bool
	MaxRecords   int
}

// Profiles for each flat record shape. The label sets mirror what the
// research model emits for each prompt.
var (
	TrendingProfile = Profile{
		OfficeLabels: []string{"Office", "Title", "Position"},
		WantVote:     true, // an explicit percentage becomes the trend change
		MaxRecords:   5,
	}
	WinnersProfile = Profile{
		OfficeLabels: []string{"Office Won", "Office"},
		WantDate:     true,
		WantVote:     true,
		MaxRecords:   5,
	}
	OfficialsProfile = Profile{
		OfficeLabels: []string{"Office", "Title", "Position"},
	}
	CandidatesProfile = Profile{
		OfficeLabels: []string{"Office", "Position"},
	}
)

// ParseList runs the list engine over content and returns one Entry per
// usable block, capped by the profile.
func ParseList(content string, p Profile) []Entry {
	items := Items(content)
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		e := Entry{Name: it.Name}
		e.Party, e.PartyOK = extract.Party(it.Block)
		if v, ok := extract.LabeledField(it.Block, "State"); ok {
			e.State, e.StateOK = v, true
		} else {
			e.State, e.StateOK = extract.State(it.Block)
		}
		e.Office, e.OfficeOK = extract.Office(it.Block, p.OfficeLabels...)
		if p.WantDate {
			if v, ok := extract.LabeledField(it.Block, "Election Date"); ok {
				e.Date, e.DateOK = v, true
			} else {
				e.Date, e.DateOK = extract.Date(it.Block)
			}
		}
		if p.WantVote {
			e.Vote, e.VoteOK = extract.Percent(it.Block)
		}
		entries = append(entries, e)
	}
	if p.MaxRecords > 0 && len(entries) > p.MaxRecords {
		entries = entries[:p.MaxRecords]
	}
	return entries
}
