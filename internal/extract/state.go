package extract

import (
	"regexp"
	"strings"
)

// stateNames is the canonical enumeration the state matcher checks against:
// the 50 states plus the District of Columbia. Longer names first so
// "West Virginia" wins over "Virginia".
var stateNames = []string{
	"District of Columbia",
	"Massachusetts", "New Hampshire", "North Carolina", "North Dakota",
	"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"West Virginia", "Connecticut", "Mississippi", "Washington",
	"California", "Louisiana", "Minnesota", "New Jersey", "New Mexico",
	"Tennessee", "Wisconsin", "Alabama", "Arizona", "Arkansas", "Colorado",
	"Delaware", "Florida", "Georgia", "Illinois", "Indiana", "Kentucky",
	"Maryland", "Michigan", "Missouri", "Montana", "Nebraska", "New York",
	"Oklahoma", "Virginia", "Vermont", "Wyoming", "Alaska", "Hawaii",
	"Kansas", "Nevada", "Oregon", "Idaho", "Maine", "Texas", "Iowa",
	"Ohio", "Utah",
}

var stateRe = func() *regexp.Regexp {
	quoted := make([]string, len(stateNames))
	for i, n := range stateNames {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}()

// canonicalState maps a lower-cased match back to its canonical spelling.
var canonicalState = func() map[string]string {
	m := make(map[string]string, len(stateNames))
	for _, n := range stateNames {
		m[strings.ToLower(n)] = n
	}
	return m
}()

// State finds the first US state name (or DC) mentioned in text, matched
// case-insensitively on word boundaries, and returns its canonical spelling.
func State(text string) (string, bool) {
	m := stateRe.FindString(text)
	if m == "" {
		return "", false
	}
	return canonicalState[strings.ToLower(m)], true
}
