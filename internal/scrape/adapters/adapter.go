// Package adapters holds the site-specific HTML extractors for the
// two scraped sources. Both build on a small set of shared node-tree
// helpers.
package adapters

import (
	"strings"

	"golang.org/x/net/html"
)

// BaseAdapter provides common node-tree helpers for site adapters.
type BaseAdapter struct{}

// ParseHTML parses an HTML string into a node tree.
func (b *BaseAdapter) ParseHTML(htmlContent string) (*html.Node, error) {
	return html.Parse(strings.NewReader(htmlContent))
}

// ExtractText extracts the text content of a node, collapsing child
// nodes with single spaces.
func (b *BaseAdapter) ExtractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(b.ExtractText(c))
		buf.WriteString(" ")
	}
	return strings.TrimSpace(buf.String())
}

// HasClass checks if a node carries a specific CSS class.
func (b *BaseAdapter) HasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, class := range strings.Fields(attr.Val) {
				if class == className {
					return true
				}
			}
		}
	}
	return false
}

// HasClasses checks if a node carries every one of the given classes.
func (b *BaseAdapter) HasClasses(n *html.Node, classNames ...string) bool {
	for _, class := range classNames {
		if !b.HasClass(n, class) {
			return false
		}
	}
	return true
}

// GetAttribute gets an attribute value from a node.
func (b *BaseAdapter) GetAttribute(n *html.Node, attrKey string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrKey {
			return attr.Val
		}
	}
	return ""
}

// IsElement checks if a node is an element with the given tag.
func (b *BaseAdapter) IsElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

// FindAll finds all nodes matching a predicate, in document order.
func (b *BaseAdapter) FindAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

// FindFirst finds the first node matching a predicate.
func (b *BaseAdapter) FindFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}

// Comments returns every comment node in the document, in order. The
// NHPP pages delimit their sections with HTML comments, which the
// extractor uses as landmarks.
func (b *BaseAdapter) Comments(n *html.Node) []*html.Node {
	return b.FindAll(n, func(node *html.Node) bool {
		return node.Type == html.CommentNode
	})
}

// NextSiblingElement returns the next sibling of n that is an element
// with the given tag, or nil.
func (b *BaseAdapter) NextSiblingElement(n *html.Node, tag string) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if b.IsElement(s, tag) {
			return s
		}
	}
	return nil
}

// FindFirstDescendant finds the first descendant element of n with the
// given tag, excluding n itself.
func (b *BaseAdapter) FindFirstDescendant(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := b.FindFirst(c, func(node *html.Node) bool {
			return b.IsElement(node, tag)
		}); found != nil {
			return found
		}
	}
	return nil
}

// ChildElements returns the direct child elements of n with the given
// tag, without descending further.
func (b *BaseAdapter) ChildElements(n *html.Node, tag string) []*html.Node {
	var results []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b.IsElement(c, tag) {
			results = append(results, c)
		}
	}
	return results
}
