package main_test

import (
	"bytes"
	"context"
	"strings"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/batch"
	main "github.com/fwojciec/artex/cmd/artex"
	"github.com/fwojciec/artex/htmltomarkdown"
	"github.com/fwojciec/artex/mock"
)

// articlePage is a news page whose body the goquery engine selects over
// the surrounding navigation.
const articlePage = `<!DOCTYPE html>
<html lang="en">
<head>
  <title>Harbor dredging plan approved | Coastal Times</title>
  <meta property="og:title" content="Harbor dredging plan approved">
  <meta name="author" content="Jane Doe">
  <meta property="article:published_time" content="2025-07-27T09:30:00Z">
</head>
<body>
  <nav><a href="/">Home</a> <a href="/world">World</a> <a href="/sports">Sports</a></nav>
  <article class="article-body">
    <h1>Harbor dredging plan approved</h1>
    <p>The harbor council approved the long debated dredging plan on Monday, clearing the way for larger cargo ships to reach the eastern docks.</p>
    <p>Council members voted seven to two in favor, after hearing from shipping companies, fishermen, and residents who live along the waterfront.</p>
    <p>Work on the harbor is expected to begin in the spring and last about two years, according to the port authority, which will oversee the project.</p>
    <p>Opponents said the dredging could disturb fish habitats, but the council added conditions requiring regular water quality reports during the work.</p>
  </article>
  <footer><a href="/about">About</a> <a href="/contact">Contact</a></footer>
</body>
</html>`

// newDeps returns Dependencies writing to fresh buffers, with a single
// mock engine named goquery.
func newDeps(extract func(*artex.Input) (*artex.Result, error)) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:       context.Background(),
		Stdin:     strings.NewReader(""),
		Stdout:    stdout,
		Stderr:    stderr,
		Converter: htmltomarkdown.NewConverter(),
		Engines: []batch.Engine{
			{Name: artex.EngineGoquery, Extractor: &mock.Extractor{ExtractFn: extract}},
		},
	}
	return deps, stdout, stderr
}

func textResult(title, text string) *artex.Result {
	res := artex.NewResult()
	res.Title = title
	res.Text = text
	return res
}
