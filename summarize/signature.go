package summarize

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/net/html"

	"github.com/use-agent/pagesift/dom"
	"github.com/use-agent/pagesift/models"
)

// childBucket maps an element-child count to its signature bucket.
func childBucket(count int) string {
	switch {
	case count == 0:
		return "0"
	case count <= 2:
		return "1-2"
	case count <= 5:
		return "3-5"
	default:
		return "6+"
	}
}

// signatureOf computes the structural signature of an element node:
// lowercase tag, sorted unique class tokens, bucketed child count.
func signatureOf(n *html.Node) models.Signature {
	classes := dom.Classes(n)
	uniq := make([]string, 0, len(classes))
	seen := make(map[string]struct{}, len(classes))
	for _, c := range classes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		uniq = append(uniq, c)
	}
	sort.Strings(uniq)
	return models.Signature{
		Tag:         strings.ToLower(n.Data),
		Classes:     uniq,
		ChildBucket: childBucket(dom.ElementChildCount(n)),
	}
}

// signatureKey hashes a signature into a comparable group key.
func signatureKey(sig models.Signature) uint64 {
	h := xxhash.New()
	h.WriteString(sig.Tag)
	for _, c := range sig.Classes {
		h.WriteString("\x1f")
		h.WriteString(c)
	}
	h.WriteString("\x1e")
	h.WriteString(sig.ChildBucket)
	return h.Sum64()
}

// suggestSelector synthesizes a CSS-equivalent selector from a signature:
// the tag plus its leading class, e.g. "div.product".
func suggestSelector(sig models.Signature) string {
	if len(sig.Classes) > 0 {
		return sig.Tag + "." + sig.Classes[0]
	}
	return sig.Tag
}
