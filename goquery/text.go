package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// collapse trims s and collapses inner whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// textOf returns the collapsed text content of n.
func textOf(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node, _ int) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return collapse(b.String())
}

// linkTextLen returns the rune length of all anchor text inside n.
func linkTextLen(n *html.Node) int {
	total := 0
	walk(n, func(c *html.Node, _ int) bool {
		if c.Type == html.ElementNode && c.Data == "a" {
			total += utf8.RuneCountInString(textOf(c))
			return false
		}
		return true
	})
	return total
}

// linkDensity is the share of the text of n that sits inside links.
func linkDensity(n *html.Node) float64 {
	textLen := utf8.RuneCountInString(textOf(n))
	if textLen == 0 {
		return 0
	}
	return float64(linkTextLen(n)) / float64(textLen)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// classAndID returns the lower-cased class and id attributes of n.
func classAndID(n *html.Node) string {
	return strings.ToLower(attr(n, "class") + " " + attr(n, "id"))
}

func isElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, t := range tags {
		if n.Data == t {
			return true
		}
	}
	return false
}

// hasAncestor reports whether any ancestor of n is one of tags.
func hasAncestor(n *html.Node, tags ...string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if isElement(p, tags...) {
			return true
		}
	}
	return false
}

// resolve makes ref absolute against the document base. Returns "" for
// non-HTTP references. Relative references are kept as-is without a base.
func (d *document) resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || isNonHTTPLink(ref) || strings.HasPrefix(ref, "#") {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if d.base != nil {
		u = d.base.ResolveReference(u)
	}
	if u.IsAbs() && u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
