package readability_test

import (
	"testing"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const article = `<!DOCTYPE html>
<html lang="en-US">
<head>
<title>Harbor plan approved</title>
<meta name="author" content="Jane Doe">
</head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article>
<h1>Harbor plan approved</h1>
<p>The city council approved a new plan for the harbor on Tuesday, and the vote was close.</p>
<p>Officials said the project would take three years to complete and would cost more than expected.</p>
<p>Residents who live near the water have raised concerns about <a href="/noise">noise and traffic</a> during construction.</p>
</article>
<footer>Copyright 2025</footer>
</body>
</html>`

func TestExtractor_ExtractContent(t *testing.T) {
	t.Parallel()

	t.Run("empty page yields empty result", func(t *testing.T) {
		t.Parallel()

		res, err := readability.NewExtractor(artex.DefaultConfig()).ExtractContent(&artex.Page{URL: "https://example.com/a"})

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a", res.URL)
		assert.Empty(t, res.Text)
		assert.NotNil(t, res.Authors)
	})

	t.Run("extracts article text without navigation", func(t *testing.T) {
		t.Parallel()

		res, err := readability.NewExtractor(artex.DefaultConfig()).ExtractContent(&artex.Page{HTML: article, URL: "https://example.com/news/a"})

		require.NoError(t, err)
		assert.Equal(t, "Harbor plan approved", res.Title)
		assert.Contains(t, res.Text, "The city council approved a new plan")
		assert.Contains(t, res.Text, "\n\n")
		assert.NotContains(t, res.Text, "Home Nav Link")
		assert.Contains(t, res.HTML, "Officials said")
		assert.Contains(t, res.Links, "https://example.com/noise")
		assert.Equal(t, "https://example.com/news/a", res.CanonicalURL)
	})
}
