package extract

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// MinQuoteLen filters out quoted fragments ("very", "no") that are not real
// statements.
const MinQuoteLen = 20

var quotedRe = regexp.MustCompile(`"([^"\n]+)"`)

// Quotes returns every double-quoted span in text at least MinQuoteLen
// characters long, in order of appearance.
func Quotes(text string) []string {
	var out []string
	for _, m := range quotedRe.FindAllStringSubmatch(text, -1) {
		if len(m[1]) >= MinQuoteLen {
			out = append(out, m[1])
		}
	}
	return out
}

var urlRe = regexp.MustCompile(`https?://[^\s)>\]"]+`)

// URLs returns every http(s) URL token in text, with trailing punctuation
// trimmed.
func URLs(text string) []string {
	var out []string
	for _, m := range urlRe.FindAllString(text, -1) {
		out = append(out, strings.TrimRight(m, ".,;:"))
	}
	return out
}

// videoHosts are the known video-sharing domains. Anything else classifies
// as an article.
var videoHosts = []string{"youtube.com", "youtu.be", "vimeo.com"}

// IsVideoURL reports whether raw points at a known video-sharing host.
func IsVideoURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, vh := range videoHosts {
		if host == vh || strings.HasSuffix(host, "."+vh) {
			return true
		}
	}
	return false
}

var percentRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// Percent finds the first percentage in text and parses it as a float
// (e.g. "54.8%" -> 54.8).
func Percent(text string) (float64, bool) {
	m := percentRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
