package summarize

import (
	"sort"

	"golang.org/x/net/html"

	"github.com/use-agent/pagesift/dom"
	"github.com/use-agent/pagesift/models"
)

// containerTags are the tags considered plausible record containers when
// picking the suggested container group.
var containerTags = map[string]struct{}{
	"div": {}, "li": {}, "article": {}, "section": {}, "a": {},
}

// minContainerCount is the occurrence floor for a suggested container.
const minContainerCount = 3

// group is one set of structurally interchangeable nodes, collected
// during the single traversal.
type group struct {
	sig       models.Signature
	nodes     []*html.Node
	paths     []string
	firstSeen int // pre-order position of the first occurrence
}

// mineGroups assigns a signature to every element node in pre-order and
// groups nodes by signature key.
func mineGroups(doc *dom.Document) []*group {
	byKey := make(map[uint64]*group)
	var order []*group
	pos := 0
	doc.Walk(func(n *html.Node, path string) {
		sig := signatureOf(n)
		key := signatureKey(sig)
		g, ok := byKey[key]
		if !ok {
			g = &group{sig: sig, firstSeen: pos}
			byKey[key] = g
			order = append(order, g)
		}
		g.nodes = append(g.nodes, n)
		g.paths = append(g.paths, path)
		pos++
	})
	return order
}

// repeatedGroups keeps groups with at least two occurrences, sorted
// descending by count with ties broken by first occurrence, truncated to
// topN. Each kept group carries up to sampleSize serialized occurrences
// drawn from across the group (start, middle, end).
func repeatedGroups(groups []*group, topN, sampleSize int) ([]models.RepeatedGroup, []*group) {
	var repeated []*group
	for _, g := range groups {
		if len(g.nodes) >= 2 {
			repeated = append(repeated, g)
		}
	}
	sort.SliceStable(repeated, func(i, j int) bool {
		if len(repeated[i].nodes) != len(repeated[j].nodes) {
			return len(repeated[i].nodes) > len(repeated[j].nodes)
		}
		return repeated[i].firstSeen < repeated[j].firstSeen
	})
	if len(repeated) > topN {
		repeated = repeated[:topN]
	}

	out := make([]models.RepeatedGroup, 0, len(repeated))
	for _, g := range repeated {
		out = append(out, models.RepeatedGroup{
			Signature:         g.sig,
			Count:             len(g.nodes),
			SuggestedSelector: suggestSelector(g.sig),
			SamplePath:        g.paths[0],
			Samples:           sampleMarkup(g.nodes, sampleSize),
		})
	}
	return out, repeated
}

// sampleMarkup serializes up to sampleSize nodes spread across the group.
func sampleMarkup(nodes []*html.Node, sampleSize int) []string {
	if len(nodes) == 0 || sampleSize <= 0 {
		return nil
	}
	idxs := []int{0, len(nodes) / 2, len(nodes) - 1}
	seen := make(map[int]struct{})
	var samples []string
	for _, i := range idxs {
		if len(samples) >= sampleSize {
			break
		}
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		if markup := dom.Render(nodes[i]); markup != "" {
			samples = append(samples, markup)
		}
	}
	for i := range nodes {
		if len(samples) >= sampleSize {
			break
		}
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		if markup := dom.Render(nodes[i]); markup != "" {
			samples = append(samples, markup)
		}
	}
	return samples
}

// suggestedContainer picks the first ranked group with enough occurrences
// and a plausible container tag.
func suggestedContainer(ranked []models.RepeatedGroup) *models.RepeatedGroup {
	for i := range ranked {
		g := &ranked[i]
		if g.Count < minContainerCount {
			continue
		}
		if _, ok := containerTags[g.Signature.Tag]; ok {
			return g
		}
	}
	return nil
}

// referenceGroup returns the group backing the suggested container, or
// the densest repeated group when no container qualifies. Used to rank
// field-hint candidates by cross-instance recurrence.
func referenceGroup(ranked []models.RepeatedGroup, repeated []*group) *group {
	if c := suggestedContainer(ranked); c != nil {
		for _, g := range repeated {
			if g.sig.Tag == c.Signature.Tag && g.paths[0] == c.SamplePath {
				return g
			}
		}
	}
	if len(repeated) > 0 {
		return repeated[0]
	}
	return nil
}
