package extract

import (
	"regexp"

	"github.com/whoisrunning/civic-research/internal/model"
)

// Party keyword matchers, checked in priority order: an explicit
// single-letter parenthetical beats a full word, so "(R) ... criticized
// Democrats" classifies as Republican.
var (
	parenDemRe = regexp.MustCompile(`\(D\)`)
	parenRepRe = regexp.MustCompile(`\(R\)`)
	parenIndRe = regexp.MustCompile(`\(I\)`)

	wordDemRe  = regexp.MustCompile(`(?i)\bDemocrat(?:ic)?\b`)
	wordRepRe  = regexp.MustCompile(`(?i)\b(?:Republican|GOP)\b`)
	wordIndRe  = regexp.MustCompile(`(?i)\bIndependent\b`)
	wordLibRe  = regexp.MustCompile(`(?i)\bLibertarian\b`)
	wordGrnRe  = regexp.MustCompile(`(?i)\bGreen Party\b`)
)

// Party classifies the party affiliation mentioned in text. It returns
// (PartyUnknown, false) when no keyword matches; the caller decides what
// label to show for the unclassified case.
func Party(text string) (model.Party, bool) {
	switch {
	case parenDemRe.MatchString(text):
		return model.PartyDemocrat, true
	case parenRepRe.MatchString(text):
		return model.PartyRepublican, true
	case parenIndRe.MatchString(text):
		return model.PartyIndependent, true
	case wordDemRe.MatchString(text):
		return model.PartyDemocrat, true
	case wordRepRe.MatchString(text):
		return model.PartyRepublican, true
	case wordIndRe.MatchString(text):
		return model.PartyIndependent, true
	case wordLibRe.MatchString(text):
		return model.PartyLibertarian, true
	case wordGrnRe.MatchString(text):
		return model.PartyGreen, true
	}
	return model.PartyUnknown, false
}
