// Package extract contains the low-level text matchers the record parsers
// are built from. Every matcher is a pure function over a line or block of
// untrusted research text; on a miss it returns its zero value and false
// rather than a default, so the caller owns fallback policy. No matcher
// panics on malformed input.
package extract

import (
	"regexp"
	"strings"
)

// listItemRe recognizes the start of a list record: a numbered marker
// ("1.", "1)"), a bullet (-, •, *), optionally wrapped in markdown bold.
var listItemRe = regexp.MustCompile(`^\s*(?:\*\*)?(?:\d+[.)]\s*|[-•]\s*|\*\s+)(?:\*\*)?\s*(.*)$`)

// ListItem reports whether line opens a new list record. On a match it
// returns the remainder of the line after the marker.
func ListItem(line string) (rest string, ok bool) {
	m := listItemRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// minNameLen rejects spurious matches such as bare initials or stray
// markup fragments.
const minNameLen = 4

// nameDelims end a name within a list-item remainder.
const nameDelims = "-:(,\n"

// Name extracts a display name from the remainder of a list-item line: the
// text before the first delimiter, with bold markup stripped. Names shorter
// than four characters are rejected.
func Name(rest string) (string, bool) {
	cut := strings.IndexAny(rest, nameDelims)
	if cut < 0 {
		cut = len(rest)
	}
	name := strings.ReplaceAll(rest[:cut], "**", "")
	name = strings.TrimSpace(name)
	if len(name) < minNameLen {
		return "", false
	}
	return name, true
}

// BoldSpan returns the first **bold** span in text, unwrapped.
func BoldSpan(text string) (string, bool) {
	start := strings.Index(text, "**")
	if start < 0 {
		return "", false
	}
	end := strings.Index(text[start+2:], "**")
	if end < 0 {
		return "", false
	}
	span := strings.TrimSpace(text[start+2 : start+2+end])
	if span == "" {
		return "", false
	}
	return span, true
}
