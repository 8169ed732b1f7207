package summarize

import (
	"regexp"

	"golang.org/x/net/html"

	"github.com/use-agent/pagesift/dom"
	"github.com/use-agent/pagesift/models"
)

// matcher is one entry of the fixed text-pattern catalogue. Field names
// the semantic field the matcher corresponds to ("" when it only feeds
// the pattern inventory).
type matcher struct {
	name  string
	field string
	re    *regexp.Regexp
}

// The catalogue order is fixed; pattern groups are reported in this order.
var matchers = []matcher{
	{"currency", "price", regexp.MustCompile(`(?i)(?:₹|Rs\.?|INR|USD|EUR|\$|€|£)\s?[0-9][0-9,]*(?:\.[0-9]+)?`)},
	{"rating", "rating", regexp.MustCompile(`(?i)[0-9](?:\.[0-9])?\s*(?:out of\s*[0-9]+|/\s?[0-9]+|★|stars?)`)},
	{"reviews", "reviews", regexp.MustCompile(`(?i)\(?[0-9][0-9,]*\)?\s*(?:reviews?|ratings?|votes?)`)},
	{"percent", "", regexp.MustCompile(`(?i)[0-9]{1,3}\s?%(?:\s*off)?`)},
	{"email", "", regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[A-Za-z]{2,}`)},
	{"phone", "", regexp.MustCompile(`\+?[0-9]{1,4}[\s\-][0-9]{3,4}[\s\-][0-9]{3,5}`)},
}

// scanTextPatterns runs every catalogue matcher over the own text of
// every element node, recording the matcher name, matched text, and the
// owning node's path. At most maxExamples hits are retained per matcher;
// counts cover all hits.
func scanTextPatterns(doc *dom.Document, maxExamples int) []models.PatternGroup {
	hits := make(map[string][]models.PatternMatch, len(matchers))
	counts := make(map[string]int, len(matchers))

	doc.Walk(func(n *html.Node, path string) {
		if n.Data == "script" || n.Data == "style" {
			return
		}
		text := dom.OwnText(n)
		if text == "" {
			return
		}
		for _, m := range matchers {
			for _, match := range m.re.FindAllString(text, -1) {
				counts[m.name]++
				if len(hits[m.name]) < maxExamples {
					hits[m.name] = append(hits[m.name], models.PatternMatch{Text: match, Path: path})
				}
			}
		}
	})

	var groups []models.PatternGroup
	for _, m := range matchers {
		if counts[m.name] == 0 {
			continue
		}
		groups = append(groups, models.PatternGroup{
			Matcher:  m.name,
			Count:    counts[m.name],
			Examples: hits[m.name],
		})
	}
	return groups
}
