package parser

import (
	"strings"

	"github.com/whoisrunning/civic-research/internal/extract"
	"github.com/whoisrunning/civic-research/internal/model"
)

// ParseCandidates extracts a flat candidate list from a search response.
// Fields the text omits are backfilled from the caller's search filters:
// the user asked for candidates in a specific place, so the place is known
// even when the model doesn't repeat it.
func ParseCandidates(content string, params model.SearchParams) []model.Candidate {
	entries := ParseList(content, CandidatesProfile)
	out := make([]model.Candidate, 0, len(entries))
	for _, e := range entries {
		c := model.Candidate{
			ID:       model.MakeID(e.Name),
			Name:     e.Name,
			Party:    e.Party,
			Office:   e.Office,
			State:    e.State,
			County:   params.County,
			City:     params.City,
			Ideology: []string{},
		}
		if !e.OfficeOK {
			if params.Office != "" {
				c.Office = params.Office
			} else {
				c.Office = "Unknown Office"
			}
		}
		if !e.StateOK {
			if params.State != "" {
				c.State = params.State
			} else {
				c.State = "Unknown"
			}
		}
		out = append(out, c)
	}
	return out
}

// Caps for the detail parser's derived collections.
const (
	maxQuotes       = 3
	maxArticles     = 3
	maxBioSentences = 3
	maxPositions    = 5
)

// ideologyTags maps keyword presence in the ideology block to a display tag.
// Order fixes the tag order in the output.
var ideologyTags = []struct {
	keywords []string
	tag      string
}{
	{[]string{"healthcare", "health care"}, "Healthcare Reform"},
	{[]string{"climate", "environment"}, "Environmental Protection"},
	{[]string{"education"}, "Education"},
	{[]string{"economy", "economic"}, "Economic Policy"},
	{[]string{"criminal justice"}, "Criminal Justice Reform"},
	{[]string{"immigration"}, "Immigration"},
	{[]string{"housing"}, "Housing"},
}

// ParseDetail combines the three independently-fetched research blocks for
// one candidate (profile, ideology, resources) into a full record. Unlike the
// list parsers it is keyword- and sentence-driven: the blocks are prose, not
// lists.
func ParseDetail(id, name, profile, ideology, resources string) model.Candidate {
	c := model.Candidate{
		ID:    id,
		Name:  name,
		State: defaultState,
	}

	c.Party, _ = extract.Party(profile)

	if office, ok := extract.Office(profile, "Office", "Current Office", "Position"); ok {
		c.Office = office
	} else {
		c.Office = defaultOffice
	}

	if state, ok := extract.State(profile); ok {
		c.State = state
	}

	// Bio: the first few substantial sentences of the profile block.
	var bio []string
	for _, s := range extract.Sentences(profile) {
		if len(s) > 20 {
			bio = append(bio, s)
			if len(bio) == maxBioSentences {
				break
			}
		}
	}
	if len(bio) > 0 {
		c.Bio = strings.Join(bio, ". ") + "."
	}

	lower := strings.ToLower(ideology)
	for _, it := range ideologyTags {
		for _, kw := range it.keywords {
			if strings.Contains(lower, kw) {
				c.Ideology = append(c.Ideology, it.tag)
				break
			}
		}
	}
	if len(c.Ideology) == 0 {
		c.Ideology = []string{"Public Service"}
	}

	c.KeyPositions = extract.StanceSentences(ideology, 30, 200, maxPositions)

	for _, q := range extract.Quotes(ideology) {
		c.Quotes = append(c.Quotes, model.Quote{
			Text:   q,
			Source: "Recent Statement",
			Date:   extractQuoteDate(ideology),
		})
		if len(c.Quotes) == maxQuotes {
			break
		}
	}

	c.Resources = parseResources(resources)
	return c
}

func extractQuoteDate(block string) string {
	if d, ok := extract.Date(block); ok {
		return d
	}
	return ""
}

// parseResources classifies every URL in the resources block: video hosts
// become video resources (unlimited), everything else an article, capped.
func parseResources(content string) []model.Resource {
	var out []model.Resource
	articles := 0
	for _, u := range extract.URLs(content) {
		if extract.IsVideoURL(u) {
			out = append(out, model.Resource{
				Type:   model.ResourceVideo,
				Title:  "Campaign Video",
				URL:    u,
				Source: "YouTube",
			})
			continue
		}
		if articles < maxArticles {
			out = append(out, model.Resource{
				Type:   model.ResourceArticle,
				Title:  "Recent Article",
				URL:    u,
				Source: "News Source",
			})
			articles++
		}
	}
	return out
}
