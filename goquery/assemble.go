package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
	"golang.org/x/net/html"
)

// Subtrees never part of article text.
var skipTags = map[string]bool{
	"nav": true, "aside": true, "footer": true, "form": true, "button": true,
	"select": true, "input": true, "textarea": true, "menu": true, "dialog": true,
	"iframe": true, "svg": true, "canvas": true, "object": true, "embed": true,
}

// Elements that start a new paragraph.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true, "header": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	"pre": true, "blockquote": true, "figure": true, "figcaption": true,
	"table": true, "thead": true, "tbody": true, "tr": true, "td": true, "th": true,
	"address": true, "hr": true, "br": true, "body": true,
}

// assembly is the text, images and links of the article region.
type assembly struct {
	paragraphs []string
	images     []string
	links      []string
}

type assembler struct {
	d          *document
	buf        strings.Builder
	out        assembly
	seenImages map[string]bool
	seenLinks  map[string]bool
}

// assemble walks nodes in document order and rebuilds one paragraph per
// block. Fragments under the minimum word count are dropped, as are
// non-paragraph blocks dominated by links.
func (d *document) assemble(nodes []*html.Node) assembly {
	a := &assembler{
		d:          d,
		out:        assembly{paragraphs: []string{}, images: []string{}, links: []string{}},
		seenImages: make(map[string]bool),
		seenLinks:  make(map[string]bool),
	}
	for _, n := range nodes {
		a.visit(n, true)
		a.flush()
	}
	return a.out
}

func (a *assembler) visit(n *html.Node, root bool) {
	switch n.Type {
	case html.TextNode:
		a.buf.WriteString(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	if skipTags[n.Data] {
		return
	}
	switch n.Data {
	case "img":
		a.addImage(a.d.resolve(imageSource(n)))
		return
	case "a":
		a.addLink(a.d.resolve(attr(n, "href")))
	}

	block := blockTags[n.Data]
	if block && !root && n.Data != "p" && a.linkHeavy(n) {
		return
	}
	if block {
		a.flush()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		a.visit(c, false)
	}
	if block {
		a.flush()
	}
}

// linkHeavy reports whether the links of n carry most of its text.
func (a *assembler) linkHeavy(n *html.Node) bool {
	return linkDensity(n) > a.d.cfg.HighLinkDensity
}

func (a *assembler) flush() {
	text := collapse(a.buf.String())
	a.buf.Reset()
	if artex.Words(text) < a.d.cfg.MinParagraphWords {
		return
	}
	a.out.paragraphs = append(a.out.paragraphs, text)
}

func (a *assembler) addImage(src string) {
	if src == "" || a.seenImages[src] {
		return
	}
	a.seenImages[src] = true
	a.out.images = append(a.out.images, src)
}

func (a *assembler) addLink(href string) {
	if href == "" || a.seenLinks[href] {
		return
	}
	a.seenLinks[href] = true
	a.out.links = append(a.out.links, href)
}

// text joins the paragraphs with blank lines.
func (as assembly) text() string {
	return strings.Join(as.paragraphs, "\n\n")
}

// renderHTML returns the outer HTML of nodes, one per line.
func renderHTML(nodes []*html.Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		s, err := goquery.OuterHtml(goquery.NewDocumentFromNode(n).Selection)
		if err != nil {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}
