package extract

import (
	"regexp"
	"strings"
	"time"
)

var monthDateRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.?\s+(\d{1,2})(?:,?\s*(\d{4}))?`)

var isoDateRe = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

// Date finds the first month-name or ISO date in text and returns it. When
// the match parses cleanly it is normalized to YYYY-MM-DD; otherwise the raw
// matched substring is returned so callers never lose the signal the text
// carried.
func Date(text string) (string, bool) {
	if m := isoDateRe.FindString(text); m != "" {
		return m, true
	}
	m := monthDateRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	raw := strings.TrimSpace(m[0])
	if norm, ok := normalizeDate(m[1], m[2], m[3]); ok {
		return norm, true
	}
	return raw, true
}

func normalizeDate(month, day, year string) (string, bool) {
	if year == "" {
		return "", false
	}
	for _, layout := range []string{"January 2 2006", "Jan 2 2006"} {
		t, err := time.Parse(layout, strings.TrimSuffix(month, ".")+" "+day+" "+year)
		if err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
