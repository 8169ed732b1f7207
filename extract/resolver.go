// Package extract applies a selector configuration to a parsed document:
// container resolution, per-field fallback candidates, attribute and
// regex post-processing, and per-field provenance.
package extract

import (
	"log/slog"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"github.com/use-agent/pagesift/dom"
	"github.com/use-agent/pagesift/models"
)

// queryAll evaluates one candidate selector of the given kind within a
// scope node, returning matches in document order. Unparseable
// candidates are skipped, never fatal.
func queryAll(scope *html.Node, kind models.SelectorKind, candidate string) []*html.Node {
	switch kind {
	case models.KindCSS:
		sel, err := cascadia.Parse(candidate)
		if err != nil {
			slog.Warn("skipping invalid css selector", "selector", candidate, "error", err)
			return nil
		}
		return cascadia.QueryAll(scope, sel)
	case models.KindXPath:
		expr, err := xpath.Compile(candidate)
		if err != nil {
			slog.Warn("skipping invalid xpath expression", "expr", candidate, "error", err)
			return nil
		}
		return htmlquery.QuerySelectorAll(scope, expr)
	default:
		return nil
	}
}

// rawValue extracts the candidate's raw string from a matched node:
// the configured attribute's value, or the element text by default.
// The result is whitespace-normalized.
func rawValue(n *html.Node, spec *models.SelectorSpec) string {
	if spec.Attribute != "" {
		val, ok := dom.Attr(n, spec.Attribute)
		if !ok {
			return ""
		}
		return dom.CollapseSpace(val)
	}
	return dom.Text(n)
}

// resolveField resolves one field's spec within a scope node. Candidates
// are evaluated in order; the first candidate yielding a non-empty raw
// value wins, with ties among a candidate's matches resolving to the
// first match in document order. A configured regex is a strict filter:
// once a candidate is fixed, a failed regex match yields missing even
// though raw text existed, and later candidates are never consulted.
func resolveField(scope *html.Node, spec *models.SelectorSpec) (string, int) {
	if spec.Kind == models.KindRegex {
		return resolveRegexField(scope, spec)
	}
	for i, candidate := range spec.Selectors {
		for _, n := range queryAll(scope, spec.Kind, candidate) {
			raw := rawValue(n, spec)
			if raw == "" {
				continue
			}
			if re := spec.Pattern(); re != nil {
				m := re.FindStringSubmatch(raw)
				if m == nil {
					return "", models.MissingCandidate
				}
				if val := dom.CollapseSpace(m[1]); val != "" {
					return val, i
				}
				return "", models.MissingCandidate
			}
			return raw, i
		}
	}
	return "", models.MissingCandidate
}

// resolveRegexField bypasses node-scoped traversal: the spec's pattern
// runs directly over the container's full text, returning the first
// capture group.
func resolveRegexField(scope *html.Node, spec *models.SelectorSpec) (string, int) {
	m := spec.Pattern().FindStringSubmatch(dom.Text(scope))
	if m == nil {
		return "", models.MissingCandidate
	}
	val := dom.CollapseSpace(m[1])
	if val == "" {
		return "", models.MissingCandidate
	}
	return val, 0
}

// ResolveContainer evaluates the container spec's candidates in order
// against the whole document. The first candidate yielding one or more
// nodes becomes the scope list — first match wins, never a union across
// candidates. Returns the nodes and the winning candidate index, or
// (nil, MissingCandidate) when nothing matched.
func ResolveContainer(doc *dom.Document, spec *models.SelectorSpec) ([]*html.Node, int) {
	for i, candidate := range spec.Selectors {
		if nodes := queryAll(doc.Root(), spec.Kind, candidate); len(nodes) > 0 {
			return nodes, i
		}
	}
	return nil, models.MissingCandidate
}

// ResolveContainerHTML parses raw HTML and resolves a container spec
// against it.
func ResolveContainerHTML(htmlText string, spec *models.SelectorSpec) ([]*html.Node, error) {
	if err := models.ValidateContainerSpec(spec); err != nil {
		return nil, err
	}
	doc, err := dom.Parse(htmlText)
	if err != nil {
		return nil, models.NewSiftError(models.ErrCodeParseFailure, "document could not be parsed", err)
	}
	nodes, _ := ResolveContainer(doc, spec)
	return nodes, nil
}
