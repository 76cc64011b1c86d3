package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
	"golang.org/x/net/html"
)

// nonEmpty adapts a string result to the strategy signature.
func nonEmpty(s string) (string, bool) {
	s = cleanText(s)
	return s, s != ""
}

func nonEmptyList(items []string) ([]string, bool) {
	return items, len(items) > 0
}

// cleanText collapses whitespace and drops replacement characters.
func cleanText(s string) string {
	return collapse(strings.ReplaceAll(s, "\uFFFD", ""))
}

var titleChain = []artex.Strategy[*document, string]{
	{Name: "og:title", Extract: func(d *document) (string, bool) {
		return nonEmpty(d.meta("og:title", "twitter:title"))
	}},
	{Name: "json-ld headline", Extract: func(d *document) (string, bool) {
		if v, ok := d.ld("headline"); ok {
			if s, ok := nonEmpty(ldText(v)); ok {
				return s, true
			}
		}
		if v, ok := d.ldArticle("name"); ok {
			return nonEmpty(ldText(v))
		}
		return "", false
	}},
	{Name: "title tag", Extract: (*document).titleTag},
	{Name: "content heading", Extract: (*document).contentHeading},
}

var titleSeparators = regexp.MustCompile(`\s*\|\s*|\s+[-–—»·:]\s+|:\s+`)

// titleTag splits <title> on site-name separators and keeps the segment
// matching the first <h1>, else the longest segment that is not the site name.
func (d *document) titleTag() (string, bool) {
	title := cleanText(d.doc.Find("title").First().Text())
	if title == "" {
		return "", false
	}
	parts := titleSeparators.Split(title, -1)
	if len(parts) == 1 {
		return title, true
	}

	hint := strings.ToLower(cleanText(d.doc.Find("h1").First().Text()))
	siteName := strings.ToLower(d.meta("og:site_name", "application-name"))
	best := ""
	for _, p := range parts {
		p = strings.TrimSpace(p)
		lower := strings.ToLower(p)
		if p == "" || lower == siteName {
			continue
		}
		if hint != "" && lower == hint {
			return p, true
		}
		if utf8.RuneCountInString(p) > utf8.RuneCountInString(best) {
			best = p
		}
	}
	if best == "" {
		return title, true
	}
	return best, true
}

// contentHeading returns the highest-level heading inside the article region.
func (d *document) contentHeading() (string, bool) {
	if len(d.content) == 0 {
		return "", false
	}
	for _, h := range []string{"h1", "h2", "h3"} {
		for _, n := range d.content {
			var found *html.Node
			walk(n, func(c *html.Node, _ int) bool {
				if found == nil && isElement(c, h) {
					found = c
				}
				return found == nil
			})
			if found == nil {
				continue
			}
			if s, ok := nonEmpty(textOf(found)); ok {
				return s, true
			}
		}
	}
	return "", false
}

var authorChain = []artex.Strategy[*document, []string]{
	{Name: "structured", Extract: func(d *document) ([]string, bool) { return nonEmptyList(d.structuredAuthors()) }},
	{Name: "byline", Extract: func(d *document) ([]string, bool) { return nonEmptyList(d.bylineAuthors()) }},
	{Name: "rel author", Extract: func(d *document) ([]string, bool) { return nonEmptyList(d.relAuthors()) }},
}

func (d *document) structuredAuthors() []string {
	var raw []string
	for _, key := range []string{"author", "creator"} {
		if v, ok := d.ld(key); ok {
			raw = append(raw, ldTexts(v)...)
		}
	}
	for _, key := range []string{"author", "article:author", "dc.creator", "dcterms.creator", "parsely-author", "sailthru.author", "byl"} {
		for _, m := range d.metas {
			if m.key == key && m.content != "" {
				raw = append(raw, m.content)
			}
		}
	}
	d.doc.Find("[itemprop~='author']").Each(func(_ int, sel *goquery.Selection) {
		if sel.Is("meta") {
			return
		}
		if name := sel.Find("[itemprop~='name']").First(); name.Length() > 0 {
			raw = append(raw, name.Text())
			return
		}
		raw = append(raw, sel.Text())
	})

	var names []string
	for _, r := range raw {
		if strings.HasPrefix(r, "http://") || strings.HasPrefix(r, "https://") {
			continue
		}
		names = append(names, splitNames(r, 1)...)
	}
	return dedupe(names)
}

var (
	bylineClass  = regexp.MustCompile(`(?i)byline|byl\b|\bauthor|\bwriter|dateline`)
	bylinePrefix = regexp.MustCompile(`(?i)^\s*(?:by|from|von|por|par|di|door)\s+`)
)

// bylineAuthors looks for a byline near the top of the article: an element
// with a byline-like class or id, or a short "By <Name>" line.
func (d *document) bylineAuthors() []string {
	scope := d.bylineScope()
	for _, n := range scope {
		var names []string
		walk(n, func(c *html.Node, _ int) bool {
			if names != nil || c.Type != html.ElementNode {
				return names == nil
			}
			if bylineClass.MatchString(classAndID(c)) {
				text := textOf(c)
				if utf8.RuneCountInString(text) <= 200 {
					if found := splitNames(text, 2); len(found) > 0 {
						names = found
						return false
					}
				}
			}
			return true
		})
		if len(names) > 0 {
			return dedupe(names)
		}
	}

	blocks := 0
	for _, n := range scope {
		var names []string
		walk(n, func(c *html.Node, _ int) bool {
			if names != nil || blocks >= 8 {
				return false
			}
			if !isElement(c, "p", "div", "span", "address", "li") {
				return true
			}
			text := textOf(c)
			if text == "" || utf8.RuneCountInString(text) > 120 {
				return true
			}
			blocks++
			if bylinePrefix.MatchString(text) {
				if found := splitNames(text, 2); len(found) > 0 {
					names = found
				}
				return false
			}
			return true
		})
		if len(names) > 0 {
			return dedupe(names)
		}
	}
	return nil
}

// bylineScope is the article region preceded by up to three element
// siblings of its first node, or the body when no article was found.
func (d *document) bylineScope() []*html.Node {
	if len(d.content) == 0 {
		return d.doc.Find("body").Nodes
	}
	var before []*html.Node
	for s := d.content[0].PrevSibling; s != nil && len(before) < 3; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			before = append([]*html.Node{s}, before...)
		}
	}
	return append(before, d.content...)
}

func (d *document) relAuthors() []string {
	var names []string
	d.doc.Find("a[rel~='author']").Each(func(_ int, sel *goquery.Selection) {
		names = append(names, splitNames(sel.Text(), 1)...)
	})
	return dedupe(names)
}

var (
	nameSeparators = regexp.MustCompile(`(?i)\s*(?:,|;|&|\||\band\b|\bund\b|\bet\b|\by\b)\s*`)
	// roleSuffix matches a job title trailing a name, as in
	// "Jane Doe, Staff Writer" or "John Roe Senior Reporter".
	roleSuffix = regexp.MustCompile(`(?i)(?:^|\s+)(?:(?:senior|chief|staff|contributing|special|political|foreign|associate|managing|deputy|news|sports)\s+)*(?:writer|reporter|correspondent|editor|contributor|columnist|staff)s?$`)
)

// splitNames parses a byline into names, dropping job titles. Names carry between minWords and
// five words and no digits.
func splitNames(text string, minWords int) []string {
	text = bylinePrefix.ReplaceAllString(cleanText(text), "")
	var names []string
	for _, part := range nameSeparators.Split(text, -1) {
		part = strings.TrimFunc(bylinePrefix.ReplaceAllString(part, ""), func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSpace(r)
		})
		part = roleSuffix.ReplaceAllString(part, "")
		if part == "" || strings.IndexFunc(part, unicode.IsDigit) >= 0 {
			continue
		}
		words := len(strings.Fields(part))
		if words < minWords || words > 5 {
			continue
		}
		names = append(names, part)
	}
	return names
}

// dedupe removes case-insensitive duplicates, keeping first-seen order.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

var canonicalChain = []artex.Strategy[*document, string]{
	{Name: "link canonical", Extract: func(d *document) (string, bool) {
		href, _ := d.doc.Find("link[rel~='canonical']").First().Attr("href")
		return nonEmpty(d.resolve(href))
	}},
	{Name: "og:url", Extract: func(d *document) (string, bool) {
		return nonEmpty(d.resolve(d.meta("og:url")))
	}},
	{Name: "request URL", Extract: func(d *document) (string, bool) {
		if d.base == nil {
			return "", false
		}
		return d.base.String(), true
	}},
}

var imageChain = []artex.Strategy[*document, string]{
	{Name: "og:image", Extract: func(d *document) (string, bool) {
		if s := d.resolve(d.meta("og:image", "og:image:url", "og:image:secure_url", "twitter:image", "twitter:image:src")); s != "" {
			return s, true
		}
		if v, ok := d.ldArticle("image"); ok {
			if s := d.resolve(ldURL(v)); s != "" {
				return s, true
			}
		}
		href, _ := d.doc.Find("link[rel='image_src']").First().Attr("href")
		return nonEmpty(d.resolve(href))
	}},
	{Name: "largest content image", Extract: func(d *document) (string, bool) {
		return d.largestImage(d.content)
	}},
	{Name: "first image", Extract: func(d *document) (string, bool) {
		var src string
		d.doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if s, _, ok := d.qualifyingImage(sel.Nodes[0]); ok {
				src = s
				return false
			}
			return true
		})
		return src, src != ""
	}},
}

var badImage = regexp.MustCompile(`(?i)icon|logo|sprite|avatar|pixel|spacer|blank\.|badge|emoji|1x1|\.svg(\?|$)|\.ico(\?|$)`)

// largestImage returns the qualifying image with the largest declared area
// inside nodes. Images without declared size rank below sized ones.
func (d *document) largestImage(nodes []*html.Node) (string, bool) {
	best, bestArea := "", -1
	for _, n := range nodes {
		walk(n, func(c *html.Node, _ int) bool {
			if !isElement(c, "img") {
				return true
			}
			if src, area, ok := d.qualifyingImage(c); ok && area > bestArea {
				best, bestArea = src, area
			}
			return false
		})
	}
	return best, best != ""
}

// qualifyingImage returns the resolved source and declared area of an
// image that is large enough and not an icon or logo.
func (d *document) qualifyingImage(n *html.Node) (string, int, bool) {
	src := d.resolve(imageSource(n))
	if src == "" || badImage.MatchString(src) || badImage.MatchString(classAndID(n)) {
		return "", 0, false
	}
	w, wok := dimension(attr(n, "width"))
	h, hok := dimension(attr(n, "height"))
	if (wok && w < d.cfg.MinImageWidth) || (hok && h < d.cfg.MinImageHeight) {
		return "", 0, false
	}
	area := 0
	if wok && hok {
		area = w * h
	}
	return src, area, true
}

func imageSource(n *html.Node) string {
	for _, key := range []string{"src", "data-src", "data-lazy-src", "data-original"} {
		if v := strings.TrimSpace(attr(n, key)); v != "" && !strings.HasPrefix(v, "data:") {
			return v
		}
	}
	return ""
}

func dimension(v string) (int, bool) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

var descriptionChain = []artex.Strategy[*document, string]{
	{Name: "meta description", Extract: func(d *document) (string, bool) {
		return nonEmpty(d.meta("description", "og:description", "twitter:description"))
	}},
	{Name: "json-ld description", Extract: func(d *document) (string, bool) {
		v, _ := d.ld("description")
		return nonEmpty(ldText(v))
	}},
}

var siteNameChain = []artex.Strategy[*document, string]{
	{Name: "og:site_name", Extract: func(d *document) (string, bool) {
		return nonEmpty(d.meta("og:site_name", "application-name"))
	}},
	{Name: "json-ld publisher", Extract: func(d *document) (string, bool) {
		v, _ := d.ld("publisher")
		return nonEmpty(ldText(v))
	}},
}

var languageChain = []artex.Strategy[*document, string]{
	{Name: "html lang", Extract: func(d *document) (string, bool) {
		return nonEmpty(primaryTag(d.doc.Find("html").AttrOr("lang", "")))
	}},
	{Name: "meta language", Extract: func(d *document) (string, bool) {
		return nonEmpty(primaryTag(d.meta("content-language", "language", "og:locale", "dc.language")))
	}},
	{Name: "json-ld language", Extract: func(d *document) (string, bool) {
		v, _ := d.ld("inLanguage")
		return nonEmpty(primaryTag(ldText(v)))
	}},
}

// primaryTag reduces a language tag such as "en-US" to "en".
func primaryTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_,; "); i >= 0 {
		tag = tag[:i]
	}
	if len(tag) < 2 || len(tag) > 3 {
		return ""
	}
	return tag
}

func (d *document) favicon() string {
	for _, sel := range []string{"link[rel~='icon']", "link[rel='apple-touch-icon']"} {
		if href, ok := d.doc.Find(sel).First().Attr("href"); ok {
			if s := d.resolve(href); s != "" {
				return s
			}
		}
	}
	return ""
}

func (d *document) metaKeywords() []string {
	var out []string
	for _, part := range strings.Split(d.meta("keywords", "news_keywords"), ",") {
		if s := cleanText(part); s != "" {
			out = append(out, s)
		}
	}
	return dedupe(out)
}

var tagHref = regexp.MustCompile(`/tags?/|/topics?/|[?&]keyword=`)

// tags returns rel=tag link texts, else texts of links to tag pages.
func (d *document) tags() []string {
	collect := func(sel *goquery.Selection) []string {
		var out []string
		sel.Each(func(_ int, a *goquery.Selection) {
			if s := cleanText(a.Text()); s != "" && utf8.RuneCountInString(s) <= 50 {
				out = append(out, s)
			}
		})
		return dedupe(out)
	}
	if tags := collect(d.doc.Find("a[rel~='tag']")); len(tags) > 0 {
		return tags
	}
	return collect(d.doc.Find("a[href]").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return tagHref.MatchString(a.AttrOr("href", ""))
	}))
}

func (d *document) metaMap() map[string]string {
	m := make(map[string]string, len(d.metas))
	for _, e := range d.metas {
		if _, ok := m[e.key]; !ok && e.content != "" {
			m[e.key] = e.content
		}
	}
	return m
}
