// Package trafilatura adapts go-trafilatura as an alternative content engine.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/goquery"
	"github.com/fwojciec/artex/language"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements artex.ContentExtractor at compile time.
var _ artex.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract article content from pages.
type Extractor struct {
	Config artex.Config
}

// NewExtractor creates a new Extractor.
func NewExtractor(cfg artex.Config) *Extractor {
	return &Extractor{Config: cfg}
}

// ExtractContent runs go-trafilatura with its fallback extractors over page.
// Pages trafilatura cannot handle yield an empty result with a warning.
func (e *Extractor) ExtractContent(page *artex.Page) (*artex.Result, error) {
	res := artex.NewResult()
	res.URL = page.URL
	if strings.TrimSpace(page.HTML) == "" {
		return res, nil
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
		IncludeLinks:   true,
	}
	if u, err := url.Parse(page.URL); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(page.HTML), opts)
	if err != nil {
		res.Warnings = append(res.Warnings, "trafilatura: "+err.Error())
		return res, nil
	}

	if result.ContentNode != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		body, err := goquery.Assemble(contentHTML, page.URL, e.Config)
		if err != nil {
			return nil, err
		}
		res.HTML = contentHTML
		res.Text = body.Text
		res.Images = body.Images
		res.Links = body.Links
	}

	meta := result.Metadata
	res.Title = strings.TrimSpace(meta.Title)
	res.Authors = goquery.SplitByline(strings.ReplaceAll(meta.Author, ";", ","))
	if !meta.Date.IsZero() {
		date := meta.Date
		res.PublishDate = &date
	}
	res.TopImage = meta.Image
	res.Description = strings.TrimSpace(meta.Description)
	res.SiteName = strings.TrimSpace(meta.Sitename)
	res.CanonicalURL = meta.URL
	res.Language = language.Normalize(meta.Language)
	res.Tags = append(res.Tags, meta.Tags...)
	return res, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
