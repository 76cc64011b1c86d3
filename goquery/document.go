package goquery

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
	"golang.org/x/net/html"
)

// document is one parsed page and the state shared by the extraction steps.
// The tree is cleaned once after parsing and never modified afterwards.
type document struct {
	doc  *goquery.Document
	base *url.URL
	lang *artex.Language
	cfg  artex.Config
	now  time.Time

	// index holds the document order and depth of every node.
	index map[*html.Node]position

	// metas lists meta name/property/itemprop entries in document order.
	metas []metaEntry

	// jsonLD holds JSON-LD objects, article types first.
	jsonLD []map[string]any

	// content is the selected article region, in document order.
	content []*html.Node

	warnings []string
}

type position struct {
	order int
	depth int
}

type metaEntry struct {
	key     string
	content string
}

var hiddenStyle = regexp.MustCompile(`(?i)display\s*:\s*none|visibility\s*:\s*hidden`)

// parse builds a document from page. Scripts, styles, comments and hidden
// elements are removed and oversized trees truncated.
func parse(page *artex.Page, cfg artex.Config, now time.Time) (*document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, artex.Errorf(artex.EINVALID, "failed to parse HTML: %v", err)
	}

	d := &document{doc: doc, cfg: cfg, now: now}
	d.base = baseURL(doc, page.URL)
	d.jsonLD = d.collectJSONLD()

	doc.Find("script, style, noscript, template").Remove()
	removeComments(doc.Nodes[0])
	doc.Find("[hidden], [aria-hidden='true'], [style]").Each(func(_ int, sel *goquery.Selection) {
		if _, ok := sel.Attr("hidden"); ok {
			sel.Remove()
			return
		}
		if v, _ := sel.Attr("aria-hidden"); strings.EqualFold(v, "true") {
			sel.Remove()
			return
		}
		if style, _ := sel.Attr("style"); hiddenStyle.MatchString(style) {
			sel.Remove()
		}
	})

	if n := truncate(doc.Nodes[0], cfg.MaxDepth, cfg.MaxNodes); n > 0 {
		d.warn("document tree truncated, %d nodes dropped", n)
	}

	d.index = indexNodes(doc.Nodes[0])
	d.metas = collectMetas(doc)
	return d, nil
}

func (d *document) warn(format string, args ...any) {
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

// baseURL resolves the page URL against a <base href>, if any.
func baseURL(doc *goquery.Document, pageURL string) *url.URL {
	base, err := url.Parse(pageURL)
	if err != nil || pageURL == "" {
		base = nil
	}
	href, ok := doc.Find("base[href]").First().Attr("href")
	if !ok {
		return base
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return base
	}
	if base == nil {
		if ref.IsAbs() {
			return ref
		}
		return nil
	}
	return base.ResolveReference(ref)
}

func removeComments(root *html.Node) {
	var comments []*html.Node
	walk(root, func(n *html.Node, _ int) bool {
		if n.Type == html.CommentNode {
			comments = append(comments, n)
		}
		return true
	})
	for _, c := range comments {
		c.Parent.RemoveChild(c)
	}
}

// truncate removes nodes deeper than maxDepth and every node after the
// first maxNodes in document order. It returns the number of removed
// subtrees.
func truncate(root *html.Node, maxDepth, maxNodes int) int {
	type frame struct {
		n     *html.Node
		depth int
	}
	removed, count := 0, 0
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n.Parent != nil && (f.depth > maxDepth || count >= maxNodes) {
			f.n.Parent.RemoveChild(f.n)
			removed++
			continue
		}
		count++
		for c := f.n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, frame{c, f.depth + 1})
		}
	}
	return removed
}

// walk visits nodes in document order without recursion. Returning false
// from fn skips the children of n.
func walk(root *html.Node, fn func(n *html.Node, depth int) bool) {
	type frame struct {
		n     *html.Node
		depth int
	}
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.n, f.depth) {
			continue
		}
		for c := f.n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, frame{c, f.depth + 1})
		}
	}
}

func indexNodes(root *html.Node) map[*html.Node]position {
	index := make(map[*html.Node]position)
	walk(root, func(n *html.Node, depth int) bool {
		index[n] = position{order: len(index), depth: depth}
		return true
	})
	return index
}

func collectMetas(doc *goquery.Document) []metaEntry {
	var metas []metaEntry
	doc.Find("meta[content]").Each(func(_ int, sel *goquery.Selection) {
		content := collapse(sel.AttrOr("content", ""))
		for _, attr := range []string{"property", "name", "itemprop", "http-equiv"} {
			if key := strings.ToLower(strings.TrimSpace(sel.AttrOr(attr, ""))); key != "" {
				metas = append(metas, metaEntry{key: key, content: content})
				return
			}
		}
	})
	return metas
}

// meta returns the first non-empty content among keys, in key order.
func (d *document) meta(keys ...string) string {
	for _, key := range keys {
		for _, m := range d.metas {
			if m.key == key && m.content != "" {
				return m.content
			}
		}
	}
	return ""
}

var articleTypes = regexp.MustCompile(`(?i)article|posting|report`)

// collectJSONLD decodes every JSON-LD block, flattening arrays and @graph.
// Invalid blocks are dropped with a warning.
func (d *document) collectJSONLD() []map[string]any {
	var objects []map[string]any
	d.doc.Find("script[type]").Each(func(_ int, sel *goquery.Selection) {
		if !strings.EqualFold(strings.TrimSpace(sel.AttrOr("type", "")), "application/ld+json") {
			return
		}
		var v any
		if err := json.Unmarshal([]byte(sel.Text()), &v); err != nil {
			d.warn("invalid JSON-LD dropped: %v", err)
			return
		}
		objects = append(objects, flattenLD(v)...)
	})
	sort.SliceStable(objects, func(i, j int) bool {
		return articleTypes.MatchString(ldType(objects[i])) && !articleTypes.MatchString(ldType(objects[j]))
	})
	return objects
}

func flattenLD(v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		var out []map[string]any
		for _, item := range t {
			out = append(out, flattenLD(item)...)
		}
		return out
	case map[string]any:
		out := []map[string]any{t}
		if graph, ok := t["@graph"]; ok {
			out = append(out, flattenLD(graph)...)
		}
		return out
	}
	return nil
}

func ldType(obj map[string]any) string {
	switch t := obj["@type"].(type) {
	case string:
		return t
	case []any:
		var parts []string
		for _, p := range t {
			if s, ok := p.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// ld returns the first value of key across JSON-LD objects.
func (d *document) ld(key string) (any, bool) {
	for _, obj := range d.jsonLD {
		if v, ok := obj[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// ldArticle is ld restricted to article-typed objects, for keys such as
// name and image that sites also set on WebSite or Organization objects.
func (d *document) ldArticle(key string) (any, bool) {
	for _, obj := range d.jsonLD {
		if !articleTypes.MatchString(ldType(obj)) {
			continue
		}
		if v, ok := obj[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// ldText reduces a JSON-LD value to text: strings as-is, objects by their
// name, url or @value, arrays by their first usable element.
func ldText(v any) string {
	switch t := v.(type) {
	case string:
		return collapse(t)
	case map[string]any:
		for _, k := range []string{"name", "url", "@value", "@id"} {
			if s := ldText(t[k]); s != "" {
				return s
			}
		}
	case []any:
		for _, item := range t {
			if s := ldText(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// ldURL is like ldText but prefers url fields of objects.
func ldURL(v any) string {
	switch t := v.(type) {
	case map[string]any:
		for _, k := range []string{"url", "contentUrl", "@id"} {
			if s := ldText(t[k]); s != "" {
				return s
			}
		}
	case []any:
		for _, item := range t {
			if s := ldURL(item); s != "" {
				return s
			}
		}
	}
	return ldText(v)
}

// ldTexts is ldText applied to each element of an array.
func ldTexts(v any) []string {
	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}
	var out []string
	for _, item := range items {
		if s := ldText(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// before reports whether a precedes b in document order.
func (d *document) before(a, b *html.Node) bool {
	return d.index[a].order < d.index[b].order
}
