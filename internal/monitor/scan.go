package monitor

import (
	"regexp"
	"strings"
)

// contextWindow is the number of characters kept on each side of a keyword
// match when extracting its surrounding context.
const contextWindow = 30

func normalizeText(item ContentItem) string {
	return strings.ToLower(item.Title + " " + item.Description)
}

// Scan checks every content item against the taxonomy and returns one
// Evidence entry per item that had at least one keyword match. Categories and
// keywords are visited in declaration order, so repeated runs over identical
// input yield identical evidence lists. All matches are recorded: one item
// can hit several categories and several keywords within a category.
func Scan(items []ContentItem, tax *Taxonomy) []Evidence {
	var evidence []Evidence
	for _, item := range items {
		text := normalizeText(item)
		var matches []SponsorMatch
		for _, cat := range tax.Categories() {
			for _, kw := range cat.Keywords {
				if !strings.Contains(text, kw) {
					continue
				}
				matches = append(matches, SponsorMatch{
					Keyword:    kw,
					CategoryID: cat.ID,
					Context:    extractContext(text, kw),
				})
			}
		}
		if len(matches) > 0 {
			evidence = append(evidence, Evidence{Content: item, Matches: matches})
		}
	}
	return evidence
}

// extractContext returns the keyword's first occurrence with up to
// contextWindow characters on each side, clamped to the text bounds.
func extractContext(text, keyword string) string {
	idx := strings.Index(text, keyword)
	if idx < 0 {
		return ""
	}
	start := idx - contextWindow
	if start < 0 {
		start = 0
	}
	end := idx + len(keyword) + contextWindow
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}

// promoPatterns recognise promotional-code constructs: a code/cupom/use
// prefix or a leading "!" command followed by 3-10 alphanumerics.
var promoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)código[:\s]*[a-z0-9]{3,10}`),
	regexp.MustCompile(`(?i)cupom[:\s]*[a-z0-9]{3,10}`),
	regexp.MustCompile(`(?i)use[:\s]*[a-z0-9]{3,10}`),
	regexp.MustCompile(`(?i)![a-z0-9]{3,10}`),
}

// DetectPromoPatterns extracts promotional-code matches from the items'
// title and description. Duplicates are preserved: match frequency feeds the
// risk score.
func DetectPromoPatterns(items []ContentItem) []string {
	var found []string
	for _, item := range items {
		text := item.Title + " " + item.Description
		for _, re := range promoPatterns {
			found = append(found, re.FindAllString(text, -1)...)
		}
	}
	return found
}
