package parser

import (
	"strings"

	"github.com/whoisrunning/civic-research/internal/extract"
	"github.com/whoisrunning/civic-research/internal/model"
)

const (
	maxPointsPerCategory = 3
	minPointLen          = 30
	maxTitleLen          = 100
)

// ParseImpacts segments a policy-analysis response by category header and
// extracts up to three impact points per category. Sections whose header
// doesn't resolve to one of the fixed categories are dropped.
func ParseImpacts(content string) []model.PolicyImpact {
	var impacts []model.PolicyImpact
	for _, sec := range splitSections(content) {
		header, ok := extract.BoldSpan(sec)
		if !ok {
			continue
		}
		cat, ok := MatchCategory(header)
		if !ok {
			continue
		}
		body := sec[strings.Index(sec, header)+len(header):]
		body = strings.TrimLeft(body, "*: \t\n")
		for _, point := range splitPoints(body) {
			if len(point) < minPointLen {
				continue
			}
			impacts = append(impacts, model.PolicyImpact{
				Category:    cat,
				Title:       impactTitle(point, string(cat)),
				Description: point,
			})
			if countCategory(impacts, cat) >= maxPointsPerCategory {
				break
			}
		}
	}
	return impacts
}

// splitSections cuts content at every bold header line ("**Healthcare**" or
// "3. **Healthcare**"), keeping the header with its section.
func splitSections(content string) []string {
	lines := strings.Split(content, "\n")
	var sections []string
	var cur strings.Builder
	for _, line := range lines {
		if isSectionHeader(line) && cur.Len() > 0 {
			sections = append(sections, cur.String())
			cur.Reset()
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	if cur.Len() > 0 {
		sections = append(sections, cur.String())
	}
	return sections
}

func isSectionHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimLeft(trimmed, "#0123456789.) ")
	if !strings.HasPrefix(trimmed, "**") {
		return false
	}
	span, ok := extract.BoldSpan(trimmed)
	if !ok {
		return false
	}
	_, matched := MatchCategory(span)
	return matched
}

// splitPoints breaks a section body into bullet points or paragraphs.
func splitPoints(body string) []string {
	var points []string
	var cur strings.Builder
	flush := func() {
		if p := strings.TrimSpace(cur.String()); p != "" {
			points = append(points, p)
		}
		cur.Reset()
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if rest, ok := extract.ListItem(line); ok {
			flush()
			cur.WriteString(strings.TrimSpace(rest))
			continue
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(trimmed)
	}
	flush()
	return points
}

// impactTitle derives a short title from the leading clause of a point,
// truncated with an ellipsis past 100 characters.
func impactTitle(point, fallback string) string {
	title := fallback
	if idx := strings.IndexAny(point, ":."); idx > 0 {
		title = strings.TrimSpace(point[:idx])
	} else if point != "" {
		title = point
	}
	title = strings.ReplaceAll(title, "*", "")
	title = strings.TrimSpace(title)
	if title == "" {
		title = fallback
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen] + "..."
	}
	return title
}

// categoryKeywords is the fallback mapping when a header doesn't contain a
// category name verbatim.
var categoryKeywords = []struct {
	keywords []string
	cat      model.PolicyCategory
}{
	{[]string{"tax"}, model.CategoryTax},
	{[]string{"education", "school"}, model.CategoryEducation},
	{[]string{"health", "medical"}, model.CategoryHealthcare},
	{[]string{"housing", "rent"}, model.CategoryHousing},
	{[]string{"employment", "job", "wage"}, model.CategoryEmployment},
	{[]string{"transport"}, model.CategoryTransportation},
	{[]string{"social", "assistance", "benefit"}, model.CategorySocialServices},
}

// MatchCategory resolves free text to one of the fixed policy categories:
// substring containment against the category names first, then keyword
// fallbacks.
func MatchCategory(text string) (model.PolicyCategory, bool) {
	norm := strings.ToLower(strings.TrimSpace(text))
	if norm == "" {
		return "", false
	}
	for _, cat := range model.PolicyCategories {
		cl := strings.ToLower(string(cat))
		if strings.Contains(norm, cl) || (len(norm) >= 4 && strings.Contains(cl, norm)) {
			return cat, true
		}
	}
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(norm, kw) {
				return ck.cat, true
			}
		}
	}
	return "", false
}

// GroupImpacts maps impacts into a category-keyed mapping, preserving
// within-category order. Pure presentation grouping: no filtering, no dedup.
func GroupImpacts(impacts []model.PolicyImpact) map[model.PolicyCategory][]model.PolicyImpact {
	grouped := make(map[model.PolicyCategory][]model.PolicyImpact)
	for _, im := range impacts {
		grouped[im.Category] = append(grouped[im.Category], im)
	}
	return grouped
}

func countCategory(impacts []model.PolicyImpact, cat model.PolicyCategory) int {
	n := 0
	for _, im := range impacts {
		if im.Category == cat {
			n++
		}
	}
	return n
}
