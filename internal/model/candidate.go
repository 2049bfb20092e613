package model

import "strings"

// Party is a candidate's political party affiliation. The set is closed;
// anything the research text doesn't clearly identify maps to PartyUnknown.
type Party string

const (
	PartyDemocrat    Party = "Democrat"
	PartyRepublican  Party = "Republican"
	PartyIndependent Party = "Independent"
	PartyLibertarian Party = "Libertarian"
	PartyGreen       Party = "Green"
	PartyUnknown     Party = "Unknown"
)

// DisplayParty maps the unknown case to a presentation label. Call sites that
// historically showed "Other" or "Independent" for unclassified parties apply
// this at the boundary instead of baking the default into the parser.
func DisplayParty(p Party, unknownLabel string) string {
	if p == PartyUnknown {
		return unknownLabel
	}
	return string(p)
}

// Candidate is a parsed candidate profile. Every field is best-effort output
// of text extraction; only ID and Name are guaranteed non-empty.
type Candidate struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Party        Party        `json:"party"`
	Office       string       `json:"office"`
	State        string       `json:"state"`
	County       string       `json:"county,omitempty"`
	City         string       `json:"city,omitempty"`
	Ideology     []string     `json:"ideology"`
	Bio          string       `json:"bio,omitempty"`
	Website      string       `json:"website,omitempty"`
	SocialMedia  *SocialMedia `json:"social_media,omitempty"`
	KeyPositions []string     `json:"key_positions,omitempty"`
	Quotes       []Quote      `json:"quotes,omitempty"`
	Resources    []Resource   `json:"resources,omitempty"`
}

// SocialMedia holds optional social profile links.
type SocialMedia struct {
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Quote is a statement attributed to a candidate.
type Quote struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// ResourceType classifies a linked resource.
type ResourceType string

const (
	ResourceVideo    ResourceType = "video"
	ResourceArticle  ResourceType = "article"
	ResourceDocument ResourceType = "document"
)

// Resource is an external link (campaign video, news article) tied to a
// candidate.
type Resource struct {
	Type   ResourceType `json:"type"`
	Title  string       `json:"title"`
	URL    string       `json:"url"`
	Source string       `json:"source"`
}

// SearchParams are the caller-supplied filters for a candidate search. They
// double as backfill values for fields the research text omits.
type SearchParams struct {
	Name   string `json:"name,omitempty"`
	State  string `json:"state,omitempty"`
	County string `json:"county,omitempty"`
	City   string `json:"city,omitempty"`
	Office string `json:"office,omitempty"`
}

// MakeID derives a stable slug identifier from a display name: lower-cased,
// runs of non-alphanumeric characters collapsed to a single hyphen, leading
// and trailing hyphens trimmed. The same name always yields the same ID.
func MakeID(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}
