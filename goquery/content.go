package goquery

import (
	"time"

	"github.com/fwojciec/artex"
)

// Assembly is the text, images and links rebuilt from content HTML.
type Assembly struct {
	Text   string
	Images []string
	Links  []string
}

// Assemble rebuilds paragraph text, images and links from article HTML
// produced by another engine, resolving references against pageURL.
func Assemble(contentHTML, pageURL string, cfg artex.Config) (*Assembly, error) {
	out := &Assembly{Images: []string{}, Links: []string{}}
	d, err := parse(&artex.Page{HTML: contentHTML, URL: pageURL}, cfg, time.Time{})
	if err != nil {
		return nil, err
	}
	body := d.doc.Find("body").Nodes
	if len(body) == 0 {
		return out, nil
	}
	as := d.assemble(body)
	out.Text = as.text()
	out.Images = as.images
	out.Links = as.links
	return out, nil
}

// SplitByline parses a free-form byline such as "By Jane Doe and John Roe"
// into author names.
func SplitByline(byline string) []string {
	return dedupe(splitNames(byline, 1))
}
