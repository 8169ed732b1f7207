package summarize

import (
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/use-agent/pagesift/dom"
	"github.com/use-agent/pagesift/models"
)

// SemanticFields are the fixed keys of the field-hint map.
var SemanticFields = []string{"title", "price", "image", "link", "rating", "reviews"}

// maxHintsPerField caps the candidate list per semantic field.
const maxHintsPerField = 5

// candidate is one proposed selector before recurrence ranking.
type candidate struct {
	selector  string
	attribute string
	source    string
}

// buildFieldHints assembles the field-hint map. Candidates come from
// text-pattern matches (the matcher's owning node yields a selector) and
// from structural heuristics (img/src, anchors, headings). Each
// candidate is ranked by the fraction of reference-group instances in
// which it matches at least one node: a field recurring across most
// instances of a repeating structure is more likely a real per-item
// field than an incidental match.
func buildFieldHints(doc *dom.Document, patterns []models.PatternGroup, ref *group) map[string][]models.FieldHint {
	byField := make(map[string][]candidate, len(SemanticFields))
	add := func(field string, c candidate) {
		for _, existing := range byField[field] {
			if existing.selector == c.selector && existing.attribute == c.attribute {
				return
			}
		}
		byField[field] = append(byField[field], c)
	}

	// Pattern-derived candidates: the selector of each matching node.
	pathIndex := nodeSelectorsByPath(doc)
	for _, pg := range patterns {
		m := matcherByName(pg.Matcher)
		if m == nil || m.field == "" {
			continue
		}
		for _, hit := range pg.Examples {
			if sel, ok := pathIndex[hit.Path]; ok {
				add(m.field, candidate{selector: sel, source: pg.Matcher})
			}
		}
	}

	// Structural candidates.
	doc.Walk(func(n *html.Node, _ string) {
		switch n.Data {
		case "img":
			if src, ok := dom.Attr(n, "src"); ok && src != "" {
				add("image", candidate{selector: "img", attribute: "src", source: "structure"})
			}
			if alt, ok := dom.Attr(n, "alt"); ok && strings.TrimSpace(alt) != "" {
				add("title", candidate{selector: "img", attribute: "alt", source: "structure"})
			}
			if ds, ok := dom.Attr(n, "data-src"); ok && ds != "" {
				add("image", candidate{selector: "img", attribute: "data-src", source: "structure"})
			}
		case "a":
			if href, ok := dom.Attr(n, "href"); ok && href != "" {
				add("link", candidate{selector: "a", attribute: "href", source: "structure"})
			}
		case "h1", "h2", "h3":
			add("title", candidate{selector: n.Data, source: "structure"})
		}
	})

	hints := make(map[string][]models.FieldHint, len(SemanticFields))
	for _, field := range SemanticFields {
		hints[field] = rankCandidates(doc, byField[field], ref)
	}
	return hints
}

// nodeSelectorsByPath maps every element path to its synthesized
// selector (tag plus leading class), for resolving pattern hits back to
// selector candidates.
func nodeSelectorsByPath(doc *dom.Document) map[string]string {
	index := make(map[string]string)
	doc.Walk(func(n *html.Node, path string) {
		index[path] = suggestSelector(signatureOf(n))
	})
	return index
}

func matcherByName(name string) *matcher {
	for i := range matchers {
		if matchers[i].name == name {
			return &matchers[i]
		}
	}
	return nil
}

// rankCandidates scores each candidate by cross-instance recurrence in
// the reference group and returns the top hints sorted by confidence
// (ties broken by selector string for determinism). Candidates matching
// no instance are dropped. Without a reference group the whole document
// is the single instance.
func rankCandidates(doc *dom.Document, cands []candidate, ref *group) []models.FieldHint {
	if len(cands) == 0 {
		return nil
	}
	instances := []*html.Node{doc.Root()}
	if ref != nil {
		instances = ref.nodes
	}

	var hints []models.FieldHint
	for _, c := range cands {
		sel, err := cascadia.Parse(c.selector)
		if err != nil {
			continue
		}
		matched := 0
		for _, inst := range instances {
			if cascadia.Query(inst, sel) != nil {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		hints = append(hints, models.FieldHint{
			Selector:   c.selector,
			Attribute:  c.attribute,
			Confidence: float64(matched) / float64(len(instances)),
			Source:     c.source,
		})
	}
	sort.SliceStable(hints, func(i, j int) bool {
		if hints[i].Confidence != hints[j].Confidence {
			return hints[i].Confidence > hints[j].Confidence
		}
		return hints[i].Selector < hints[j].Selector
	})
	if len(hints) > maxHintsPerField {
		hints = hints[:maxHintsPerField]
	}
	return hints
}
