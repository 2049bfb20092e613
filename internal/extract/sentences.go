package extract

import "strings"

// Sentences splits text on sentence terminators and returns the trimmed,
// non-empty pieces. Splitting is deliberately naive: the research text is
// prose, not structured data, and a lost abbreviation costs nothing here.
func Sentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start:i]); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// stanceVerbs mark a sentence as a policy-position statement.
var stanceVerbs = []string{"support", "advocate", "propose", "oppose", "believe"}

// StanceSentences returns up to max sentences from text that read like policy
// positions: between minLen and maxLen characters and containing at least one
// stance verb.
func StanceSentences(text string, minLen, maxLen, max int) []string {
	var out []string
	for _, s := range Sentences(text) {
		if len(s) <= minLen || len(s) >= maxLen {
			continue
		}
		lower := strings.ToLower(s)
		for _, v := range stanceVerbs {
			if strings.Contains(lower, v) {
				out = append(out, s)
				break
			}
		}
		if len(out) >= max {
			break
		}
	}
	return out
}
