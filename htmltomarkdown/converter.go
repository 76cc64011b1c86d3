// Package htmltomarkdown renders extracted article HTML as Markdown.
package htmltomarkdown

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/artex"
)

// Ensure Converter implements artex.Converter at compile time.
var _ artex.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative links and images against domain.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown. Empty content converts to
// an empty string.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	var result string
	var err error
	if c.domain != "" {
		result, err = c.conv.ConvertString(html, converter.WithDomain(c.domain))
	} else {
		result, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", fmt.Errorf("converting to markdown: %w", err)
	}
	return result, nil
}

// Document renders res as a Markdown document: the title as a heading,
// a byline with authors and publish date, then the article body.
func Document(conv artex.Converter, res *artex.Result) (string, error) {
	body, err := conv.Convert(res.HTML)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if res.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", res.Title)
	}
	var byline []string
	if len(res.Authors) > 0 {
		byline = append(byline, strings.Join(res.Authors, ", "))
	}
	if res.PublishDate != nil {
		byline = append(byline, res.PublishDate.Format("2006-01-02"))
	}
	if len(byline) > 0 {
		fmt.Fprintf(&b, "*%s*\n\n", strings.Join(byline, " · "))
	}
	if res.CanonicalURL != "" {
		fmt.Fprintf(&b, "<%s>\n\n", res.CanonicalURL)
	}
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	return b.String(), nil
}
