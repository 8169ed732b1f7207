// Package dom provides a read-only tree view of a parsed HTML document.
//
// A Document wraps the golang.org/x/net/html node tree. It is immutable
// after Parse and safe to share across concurrent analyses; all accessors
// are pure functions over the tree.
package dom

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
	size int
}

// Parse builds a Document from raw HTML text.
func Parse(htmlText string) (*Document, error) {
	if strings.TrimSpace(htmlText) == "" {
		return nil, fmt.Errorf("empty document")
	}
	root, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return nil, err
	}
	return &Document{root: root, size: len(htmlText)}, nil
}

// Root returns the document root node.
func (d *Document) Root() *html.Node { return d.root }

// SizeBytes returns the byte length of the source text.
func (d *Document) SizeBytes() int { return d.size }

// Walk visits every element node in pre-order, passing the node and its
// tree path (see Path).
func (d *Document) Walk(fn func(n *html.Node, path string)) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			fn(n, Path(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
}

// Path returns a stable tree-path identifier for an element node, in the
// form "/html[1]/body[1]/div[2]/span[1]". Indexes count same-tag element
// siblings starting at 1. Paths are unique within a document and are used
// for deduplication and sample retrieval.
func Path(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	var parts []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		idx := 1
		for sib := cur.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if sib.Type == html.ElementNode && sib.Data == cur.Data {
				idx++
			}
		}
		parts = append(parts, fmt.Sprintf("%s[%d]", cur.Data, idx))
	}
	// Reverse into root-first order.
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}

// Text returns the whitespace-normalized text content of a subtree:
// all text nodes concatenated, runs of whitespace collapsed to single
// spaces, surrounding whitespace trimmed. Script and style contents are
// skipped.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		switch cur.Type {
		case html.TextNode:
			b.WriteString(cur.Data)
			b.WriteByte(' ')
		case html.ElementNode:
			if cur.Data == "script" || cur.Data == "style" {
				return
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return CollapseSpace(b.String())
}

// OwnText returns the normalized text of the node's direct text children
// only, excluding descendant elements.
func OwnText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteByte(' ')
		}
	}
	return CollapseSpace(b.String())
}

// CollapseSpace trims a string and collapses internal whitespace runs to
// single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Attr returns the value of the named attribute and whether it exists.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Classes returns the node's class tokens in attribute order.
func Classes(n *html.Node) []string {
	cls, ok := Attr(n, "class")
	if !ok {
		return nil
	}
	return strings.Fields(cls)
}

// ElementChildCount returns the number of element children.
func ElementChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

// Render returns the outer HTML of a node. Returns "" on render failure.
func Render(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// Depth returns the maximum element nesting depth below n.
func Depth(n *html.Node) int {
	max := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if d := Depth(c) + 1; d > max {
			max = d
		}
	}
	return max
}
