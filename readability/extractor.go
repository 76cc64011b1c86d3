// Package readability adapts go-readability as an alternative content engine.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/goquery"
	"github.com/fwojciec/artex/language"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements artex.ContentExtractor at compile time.
var _ artex.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract article content from pages.
type Extractor struct {
	Config artex.Config
}

// NewExtractor creates a new Extractor.
func NewExtractor(cfg artex.Config) *Extractor {
	return &Extractor{Config: cfg}
}

// ExtractContent runs go-readability over page. Pages readability cannot
// handle yield an empty result with a warning.
func (e *Extractor) ExtractContent(page *artex.Page) (*artex.Result, error) {
	res := artex.NewResult()
	res.URL = page.URL
	if strings.TrimSpace(page.HTML) == "" {
		return res, nil
	}

	var pageURL *url.URL
	if page.URL != "" {
		if u, err := url.Parse(page.URL); err == nil && u.IsAbs() {
			pageURL = u
		}
	}

	article, err := readability.FromReader(strings.NewReader(page.HTML), pageURL)
	if err != nil {
		res.Warnings = append(res.Warnings, "readability: "+err.Error())
		return res, nil
	}

	body, err := goquery.Assemble(article.Content, page.URL, e.Config)
	if err != nil {
		return nil, err
	}
	res.Title = strings.TrimSpace(article.Title)
	res.HTML = article.Content
	res.Text = body.Text
	res.Images = body.Images
	res.Links = body.Links
	res.Authors = goquery.SplitByline(article.Byline)
	res.PublishDate = article.PublishedTime
	res.TopImage = article.Image
	res.Favicon = article.Favicon
	res.Description = strings.TrimSpace(article.Excerpt)
	res.SiteName = strings.TrimSpace(article.SiteName)
	res.Language = language.Normalize(article.Language)
	if pageURL != nil {
		res.CanonicalURL = pageURL.String()
	}
	return res, nil
}
