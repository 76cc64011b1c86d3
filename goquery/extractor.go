// Package goquery implements the native article extraction engine: it
// normalizes the parsed tree, scores nodes by content density to locate the
// article body, runs the metadata strategy chains and assembles the text.
package goquery

import (
	"strings"
	"time"

	"github.com/fwojciec/artex"
)

// Ensure Extractor implements artex.ContentExtractor at compile time.
var _ artex.ContentExtractor = (*Extractor)(nil)

// Extractor extracts article content and metadata from decoded pages.
type Extractor struct {
	Config    artex.Config
	Languages artex.LanguageRegistry

	// Now returns the current time, used to reject future publish dates.
	Now func() time.Time
}

// NewExtractor creates a new Extractor.
func NewExtractor(cfg artex.Config, languages artex.LanguageRegistry) *Extractor {
	return &Extractor{
		Config:    cfg,
		Languages: languages,
		Now:       time.Now,
	}
}

// ExtractContent locates the article in page and extracts everything but
// the summary and keywords. A page without usable content yields an empty
// result, not an error.
func (e *Extractor) ExtractContent(page *artex.Page) (*artex.Result, error) {
	res := artex.NewResult()
	res.URL = page.URL
	if strings.TrimSpace(page.HTML) == "" {
		return res, nil
	}

	d, err := parse(page, e.Config, e.Now())
	if err != nil {
		return nil, err
	}

	declared, _, _ := artex.FirstOf(d, languageChain)
	code := primaryTag(page.Language)
	if code == "" {
		code = declared
	}
	if code == "" {
		if body := d.doc.Find("body"); body.Length() > 0 {
			code = e.Languages.Detect(textOf(body.Nodes[0]))
		}
	}
	if code == "" {
		code = artex.DefaultLanguage
	}
	d.lang = e.Languages.Language(code)
	res.Language = d.lang.Code

	d.content = d.locate()
	body := d.assemble(d.content)
	res.Text = body.text()
	res.Images = body.images
	res.Links = body.links
	res.HTML = renderHTML(d.content)

	res.Title, _, _ = artex.FirstOf(d, titleChain)
	if authors, _, ok := artex.FirstOf(d, authorChain); ok {
		res.Authors = authors
	}
	if t, _, ok := artex.FirstOf(d, dateChain); ok {
		res.PublishDate = &t
	}
	res.TopImage, _, _ = artex.FirstOf(d, imageChain)
	res.CanonicalURL, _, _ = artex.FirstOf(d, canonicalChain)
	res.Description, _, _ = artex.FirstOf(d, descriptionChain)
	res.SiteName, _, _ = artex.FirstOf(d, siteNameChain)
	res.Type = d.meta("og:type")
	res.Favicon = d.favicon()
	res.MetaKeywords = d.metaKeywords()
	res.Tags = d.tags()
	res.Meta = d.metaMap()
	res.Warnings = append(res.Warnings, d.warnings...)
	return res, nil
}
