package extract

import (
	"regexp"
	"strings"
	"sync"
)

// LabeledField matches "Label: value" anywhere in text (the research model
// often emits fields as "**Party:** Democrat" on their own lines). Markdown
// bold around label or value is tolerated; the value runs to end of line.
func LabeledField(text, label string) (string, bool) {
	re := labeledFieldRe(label)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	val := strings.TrimSpace(strings.ReplaceAll(m[1], "*", ""))
	if val == "" {
		return "", false
	}
	return val, true
}

var labeledFieldCache sync.Map // label -> *regexp.Regexp

func labeledFieldRe(label string) *regexp.Regexp {
	if re, ok := labeledFieldCache.Load(label); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?im)` + regexp.QuoteMeta(label) + `:\s*\*{0,2}([^*\n]+)`)
	labeledFieldCache.Store(label, re)
	return re
}

var (
	officeProseRe = regexp.MustCompile(`(?i)\b(?:running for|candidate for|seeking|elected to|currently serves as|holds office of|won the)\s+([^,.\n]+)`)
	officeTitleRe = regexp.MustCompile(`(?i)\b(?:Senator|Representative|Governor|Mayor|President|Congressman|Congresswoman|U\.?S\.? House|U\.?S\.? Senate)\b`)
)

// Office extracts an office or title from text. Labeled fields win, then
// prose patterns ("running for X"), then a bare well-known title word.
// Callers supply the label set because different response shapes use
// different labels ("Office:", "Office Won:", "Title:").
func Office(text string, labels ...string) (string, bool) {
	for _, label := range labels {
		if v, ok := LabeledField(text, label); ok {
			return v, true
		}
	}
	if m := officeProseRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := officeTitleRe.FindString(text); m != "" {
		return m, true
	}
	return "", false
}
