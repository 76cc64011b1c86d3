package goquery_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/goquery"
	"github.com/fwojciec/artex/language"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paragraphs = []string{
	"The city council approved a new plan for the harbor on Tuesday, and the vote was close.",
	"Officials said the project would take three years to complete and would cost more than expected.",
	"Residents who live near the water have raised concerns about noise and traffic during construction.",
	"The mayor said that the plan includes new parks, bike lanes, and a public market by the docks.",
	"Work on the first phase is expected to begin in the spring, pending a final review by the state.",
}

func articleBody() string {
	var b strings.Builder
	for _, p := range paragraphs {
		b.WriteString("<p>" + p + "</p>\n")
	}
	return b.String()
}

func navigation() string {
	var b strings.Builder
	b.WriteString("<nav><ul>")
	for _, item := range []string{"Home", "World", "Politics", "Business", "Tech", "Science", "Health", "Sports", "Arts", "Opinion"} {
		b.WriteString(`<li><a href="/` + strings.ToLower(item) + `">` + item + `</a></li>`)
	}
	b.WriteString("</ul></nav>")
	return b.String()
}

var fixedNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func newExtractor(cfg artex.Config) *goquery.Extractor {
	e := goquery.NewExtractor(cfg, language.NewRegistry())
	e.Now = func() time.Time { return fixedNow }
	return e
}

func extract(t *testing.T, html, url string) *artex.Result {
	t.Helper()
	res, err := newExtractor(artex.DefaultConfig()).ExtractContent(&artex.Page{HTML: html, URL: url})
	require.NoError(t, err)
	return res
}

func TestExtractor_SelectsArticleOverNavigation(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Harbor plan approved | City News</title></head><body>` +
		navigation() + `<article>` + articleBody() + `</article></body></html>`

	res := extract(t, html, "https://example.com/news/harbor")

	assert.Equal(t, strings.Join(paragraphs, "\n\n"), res.Text)
	assert.NotContains(t, res.Text, "Politics")
	assert.True(t, strings.HasPrefix(res.HTML, "<article>"))
	assert.Equal(t, "Harbor plan approved", res.Title)
	assert.Equal(t, "en", res.Language)
}

func TestExtractor_EmptyInput(t *testing.T) {
	t.Parallel()

	res := extract(t, "", "")

	assert.Empty(t, res.Title)
	assert.Empty(t, res.Text)
	assert.Empty(t, res.HTML)
	assert.Empty(t, res.Authors)
	assert.Nil(t, res.PublishDate)
	assert.Empty(t, res.TopImage)
	assert.Empty(t, res.CanonicalURL)
	assert.Empty(t, res.Images)
	assert.Empty(t, res.Language)
	assert.NotNil(t, res.Authors)
	assert.NotNil(t, res.Images)
	assert.NotNil(t, res.Links)
}

func TestExtractor_HiddenContent(t *testing.T) {
	t.Parallel()

	t.Run("text only inside display none yields empty text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div style="display: none">` + articleBody() + `</div></body></html>`

		res := extract(t, html, "")

		assert.Empty(t, res.Text)
		assert.Empty(t, res.HTML)
	})

	t.Run("hidden elements are removed from the article", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>` + articleBody() +
			`<p style="visibility:hidden">Secret hidden text that must never appear anywhere.</p>` +
			`<p aria-hidden="true">Screen reader hidden text that must not appear.</p>` +
			`<p hidden>Attribute hidden text that should be dropped too.</p>` +
			`<script>var tracking = "script text should vanish";</script>` +
			`<!-- a comment that is not content -->` +
			`</article></body></html>`

		res := extract(t, html, "")

		assert.Contains(t, res.Text, paragraphs[0])
		assert.NotContains(t, res.Text, "Secret")
		assert.NotContains(t, res.Text, "Screen reader")
		assert.NotContains(t, res.Text, "Attribute hidden")
		assert.NotContains(t, res.Text, "tracking")
		assert.NotContains(t, res.HTML, "comment")
	})
}

func TestExtractor_NoCandidate(t *testing.T) {
	t.Parallel()

	res := extract(t, `<html><body><nav><a href="/a">Home</a> <a href="/b">About</a></nav><p>Hi</p></body></html>`, "")

	assert.Empty(t, res.Text)
	assert.Empty(t, res.HTML)
}

func TestExtractor_TieBreakUsesDocumentOrder(t *testing.T) {
	t.Parallel()

	cfg := artex.DefaultConfig()
	cfg.SiblingThreshold = 1
	block := `<p>` + paragraphs[0] + `</p><p>` + paragraphs[1] + `</p>`
	html := `<html><body><div id="story-1">` + block + `</div><div id="story-2">` + block + `</div></body></html>`

	res, err := newExtractor(cfg).ExtractContent(&artex.Page{HTML: html})

	require.NoError(t, err)
	assert.Contains(t, res.HTML, `id="story-1"`)
	assert.NotContains(t, res.HTML, `id="story-2"`)
}

func TestExtractor_MergesQualifyingSiblings(t *testing.T) {
	t.Parallel()

	html := `<html><body><div id="wrap">` +
		`<div class="story">` + articleBody() + `</div>` +
		`<div class="story-continued"><p>` + paragraphs[2] + ` More of the story follows after the break.</p></div>` +
		`<div class="promo"><a href="/x">Subscribe now</a></div>` +
		`</div></body></html>`

	res := extract(t, html, "")

	assert.Contains(t, res.Text, "More of the story follows")
	assert.NotContains(t, res.Text, "Subscribe")
	assert.Less(t, strings.Index(res.Text, paragraphs[4]), strings.Index(res.Text, "More of the story"))
}

func TestExtractor_Assembly(t *testing.T) {
	t.Parallel()

	html := `<html><body><article>` +
		`<p>` + paragraphs[0] + `</p>` +
		`<p>Word</p>` +
		`<p>— … —</p>` +
		`<p>See <a href="/docs/plan">the plan</a> and <a href="https://other.example/ref">the reference</a> for details.</p>` +
		`<div class="share"><a href="https://facebook.com/share">Facebook</a> <a href="https://twitter.com/share">Twitter</a></div>` +
		`<img src="/img/one.jpg"><p>` + paragraphs[1] + ` <a href="/docs/plan">Plan again</a></p>` +
		`<figure><img src="/img/one.jpg"><img data-src="/img/two.jpg"><figcaption>Two photos of the harbor front.</figcaption></figure>` +
		`<p><a href="mailto:desk@example.com">Email the desk</a> or <a href="#top">jump up</a> today.</p>` +
		`</article></body></html>`

	res := extract(t, html, "https://example.com/news/a")

	assert.Equal(t, []string{
		paragraphs[0],
		"See the plan and the reference for details.",
		paragraphs[1] + " Plan again",
		"Two photos of the harbor front.",
		"Email the desk or jump up today.",
	}, strings.Split(res.Text, "\n\n"))
	assert.Equal(t, []string{"https://example.com/img/one.jpg", "https://example.com/img/two.jpg"}, res.Images)
	assert.Equal(t, []string{"https://example.com/docs/plan", "https://other.example/ref"}, res.Links)
}

func TestExtractor_Title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		head string
		body string
		want string
	}{
		{
			name: "og:title beats title tag",
			head: `<meta property="og:title" content="X"><title>X | SiteName</title>`,
			want: "X",
		},
		{
			name: "json-ld headline",
			head: `<script type="application/ld+json">{"@type":"NewsArticle","headline":"Structured headline"}</script><title>Other | Site</title>`,
			want: "Structured headline",
		},
		{
			name: "json-ld site name is not the title",
			head: `<script type="application/ld+json">{"@type":"WebSite","name":"City News"}</script><title>Harbor plan approved | City News</title>`,
			want: "Harbor plan approved",
		},
		{
			name: "json-ld article name",
			head: `<script type="application/ld+json">[{"@type":"WebSite","name":"City News"},{"@type":"Article","name":"Named article"}]</script><title>Other | Site</title>`,
			want: "Named article",
		},
		{
			name: "title tag keeps longest segment",
			head: `<title>Harbor plan approved after long debate - City News</title>`,
			want: "Harbor plan approved after long debate",
		},
		{
			name: "title tag skips site name",
			head: `<meta property="og:site_name" content="The Very Long Site Name Gazette"><title>Short news | The Very Long Site Name Gazette</title>`,
			want: "Short news",
		},
		{
			name: "title tag prefers segment matching h1",
			head: `<title>Brief | Longer section label here</title>`,
			body: `<h1>Brief</h1>`,
			want: "Brief",
		},
		{
			name: "heading inside article",
			body: `<article><h2>Section heading</h2>` + articleBody() + `</article>`,
			want: "Section heading",
		},
		{
			name: "no title at all",
			body: `<p>x</p>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := extract(t, `<html><head>`+tt.head+`</head><body>`+tt.body+`</body></html>`, "")

			assert.Equal(t, tt.want, res.Title)
		})
	}
}

func TestExtractor_Authors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		head string
		body string
		want []string
	}{
		{
			name: "json-ld and meta authors deduplicated",
			head: `<script type="application/ld+json">{"@type":"NewsArticle","author":[{"@type":"Person","name":"Jane Doe"},{"@type":"Person","name":"John Roe"}]}</script>` +
				`<meta name="author" content="JANE DOE">`,
			body: `<article>` + articleBody() + `</article>`,
			want: []string{"Jane Doe", "John Roe"},
		},
		{
			name: "profile URLs are not names",
			head: `<meta property="article:author" content="https://example.com/staff/jane"><meta name="author" content="Jane Doe">`,
			want: []string{"Jane Doe"},
		},
		{
			name: "byline class",
			body: `<article><p class="byline">By Alice Smith and Bob Jones</p>` + articleBody() + `</article>`,
			want: []string{"Alice Smith", "Bob Jones"},
		},
		{
			name: "by line text",
			body: `<article><p>By Carol White</p>` + articleBody() + `</article>`,
			want: []string{"Carol White"},
		},
		{
			name: "byline class drops job title",
			body: `<article><p class="byline">Jane Doe, Staff Writer</p>` + articleBody() + `</article>`,
			want: []string{"Jane Doe"},
		},
		{
			name: "by line drops job title",
			body: `<article><p>By Jane Doe, Staff Writer</p>` + articleBody() + `</article>`,
			want: []string{"Jane Doe"},
		},
		{
			name: "job titles on several authors",
			body: `<article><p class="byline">By Alice Smith, Senior Reporter and Bob Jones, Foreign Correspondent</p>` + articleBody() + `</article>`,
			want: []string{"Alice Smith", "Bob Jones"},
		},
		{
			name: "byline drops dates",
			body: `<article><div class="author-line">By Erin Gray | July 29, 2025</div>` + articleBody() + `</article>`,
			want: []string{"Erin Gray"},
		},
		{
			name: "rel author links",
			body: `<article>` + articleBody() + `<div class="meta-info">Written for us by <a rel="author" href="/u/dan">Dan Brown</a></div></article>`,
			want: []string{"Dan Brown"},
		},
		{
			name: "no authors",
			body: `<article>` + articleBody() + `</article>`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := extract(t, `<html><head>`+tt.head+`</head><body>`+tt.body+`</body></html>`, "")

			assert.Equal(t, tt.want, res.Authors)
		})
	}
}

func TestExtractor_PublishDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		head string
		body string
		want time.Time
	}{
		{
			name: "article published time",
			head: `<meta property="article:published_time" content="2025-07-29T10:00:00+02:00">`,
			want: time.Date(2025, 7, 29, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "json-ld date published",
			head: `<script type="application/ld+json">{"@type":"NewsArticle","datePublished":"2025-07-20"}</script>`,
			want: time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "date in url path",
			url:  "https://example.com/2025/07/28/harbor-plan",
			want: time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "visible published line",
			body: `<p class="date">Published on July 27, 2025</p>`,
			want: time.Date(2025, 7, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "visible spanish date",
			body: `<p>Publicado el 29 de julio de 2025</p>`,
			want: time.Date(2025, 7, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "time element",
			body: `<time datetime="2025-06-01T09:30:00Z">June 1</time>`,
			want: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "meta wins over url",
			url:  "https://example.com/2020/01/01/old",
			head: `<meta name="pubdate" content="2025-07-01">`,
			want: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := extract(t, `<html><head>`+tt.head+`</head><body>`+tt.body+articleBody()+`</body></html>`, tt.url)

			require.NotNil(t, res.PublishDate)
			assert.True(t, tt.want.Equal(*res.PublishDate), "got %v", res.PublishDate)
		})
	}

	rejected := []struct {
		name string
		url  string
		head string
	}{
		{"far future", "", `<meta property="article:published_time" content="2031-01-01T00:00:00Z">`},
		{"ambiguous day and month", "", `<meta name="date" content="03/04/2025">`},
		{"garbage", "", `<meta name="date" content="sometime last week">`},
		{"impossible url date", "https://example.com/2025/02/31/x", ""},
	}

	for _, tt := range rejected {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()

			res := extract(t, `<html><head>`+tt.head+`</head><body>`+articleBody()+`</body></html>`, tt.url)

			assert.Nil(t, res.PublishDate)
		})
	}
}

func TestExtractor_TopImage(t *testing.T) {
	t.Parallel()

	t.Run("og:image resolved against page URL", func(t *testing.T) {
		t.Parallel()

		res := extract(t, `<html><head><meta property="og:image" content="/img/lead.jpg"></head><body><article>`+articleBody()+`</article></body></html>`,
			"https://example.com/news/a")

		assert.Equal(t, "https://example.com/img/lead.jpg", res.TopImage)
	})

	t.Run("json-ld article image", func(t *testing.T) {
		t.Parallel()

		head := `<script type="application/ld+json">{"@type":"NewsArticle","image":{"@type":"ImageObject","url":"/lead.jpg"}}</script>`
		res := extract(t, `<html><head>`+head+`</head><body><article>`+articleBody()+`</article></body></html>`, "https://example.com/")

		assert.Equal(t, "https://example.com/lead.jpg", res.TopImage)
	})

	t.Run("json-ld organization image is not the top image", func(t *testing.T) {
		t.Parallel()

		head := `<script type="application/ld+json">{"@type":"Organization","name":"City News","image":"/org-logo.png"}</script>`
		body := `<article><img src="/b.jpg" width="800" height="600">` + articleBody() + `</article>`
		res := extract(t, `<html><head>`+head+`</head><body>`+body+`</body></html>`, "https://example.com/")

		assert.Equal(t, "https://example.com/b.jpg", res.TopImage)
	})

	t.Run("largest qualifying image in content", func(t *testing.T) {
		t.Parallel()

		body := `<article>` +
			`<img src="/static/logo.png" width="900" height="900">` +
			`<img src="/tiny.jpg" width="50" height="50">` +
			`<img src="/a.jpg" width="600" height="400">` +
			`<img src="/b.jpg" width="800" height="600">` +
			articleBody() + `</article>`

		res := extract(t, `<html><body>`+body+`</body></html>`, "https://example.com/")

		assert.Equal(t, "https://example.com/b.jpg", res.TopImage)
	})

	t.Run("first qualifying image anywhere", func(t *testing.T) {
		t.Parallel()

		body := `<header><img src="/favicon.ico"><img src="/banner.jpg"></header><article>` + articleBody() + `</article>`

		res := extract(t, `<html><body>`+body+`</body></html>`, "https://example.com/")

		assert.Equal(t, "https://example.com/banner.jpg", res.TopImage)
	})
}

func TestExtractor_CanonicalURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		head string
		url  string
		want string
	}{
		{"link canonical", `<link rel="canonical" href="/news/canon"><meta property="og:url" content="https://example.com/og">`, "https://example.com/news/a?utm=1", "https://example.com/news/canon"},
		{"og:url", `<meta property="og:url" content="https://example.com/og">`, "https://example.com/news/a", "https://example.com/og"},
		{"request URL", ``, "https://example.com/news/a", "https://example.com/news/a"},
		{"nothing", ``, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := extract(t, `<html><head>`+tt.head+`</head><body>`+articleBody()+`</body></html>`, tt.url)

			assert.Equal(t, tt.want, res.CanonicalURL)
		})
	}
}

func TestExtractor_SupplementaryMetadata(t *testing.T) {
	t.Parallel()

	html := `<html lang="en-GB"><head>
<meta name="description" content="A plan for the harbor.">
<meta name="keywords" content="harbor, council, Harbor ,plan">
<meta property="og:site_name" content="City News">
<meta property="og:type" content="article">
<link rel="shortcut icon" href="/favicon.ico">
</head><body><article>` + articleBody() + `
<a rel="tag" href="/tag/harbor">Harbor</a> <a rel="tag" href="/tag/council">Council</a>
</article></body></html>`

	res := extract(t, html, "https://example.com/news/a")

	assert.Equal(t, "A plan for the harbor.", res.Description)
	assert.Equal(t, []string{"harbor", "council", "plan"}, res.MetaKeywords)
	assert.Equal(t, "City News", res.SiteName)
	assert.Equal(t, "article", res.Type)
	assert.Equal(t, "https://example.com/favicon.ico", res.Favicon)
	assert.Equal(t, []string{"Harbor", "Council"}, res.Tags)
	assert.Equal(t, "en", res.Language)
	assert.Equal(t, "City News", res.Meta["og:site_name"])
	assert.Equal(t, "article", res.Meta["og:type"])
}

func TestExtractor_DeclaredLanguageWins(t *testing.T) {
	t.Parallel()

	res, err := newExtractor(artex.DefaultConfig()).ExtractContent(&artex.Page{
		HTML:     `<html lang="en"><body><article>` + articleBody() + `</article></body></html>`,
		Language: "de-AT",
	})

	require.NoError(t, err)
	assert.Equal(t, "de", res.Language)
}

func TestExtractor_Warnings(t *testing.T) {
	t.Parallel()

	t.Run("invalid JSON-LD", func(t *testing.T) {
		t.Parallel()

		res := extract(t, `<html><head><script type="application/ld+json">{broken</script></head><body>`+articleBody()+`</body></html>`, "")

		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "invalid JSON-LD")
	})

	t.Run("truncated tree", func(t *testing.T) {
		t.Parallel()

		cfg := artex.DefaultConfig()
		cfg.MaxNodes = 20
		html := `<html><body><article>` + strings.Repeat(articleBody(), 5) + `</article></body></html>`

		res, err := newExtractor(cfg).ExtractContent(&artex.Page{HTML: html})

		require.NoError(t, err)
		require.NotEmpty(t, res.Warnings)
		assert.Contains(t, res.Warnings[0], "truncated")
		assert.Less(t, strings.Count(res.Text, "\n\n")+1, 25)
	})

	t.Run("deep nesting does not hang", func(t *testing.T) {
		t.Parallel()

		cfg := artex.DefaultConfig()
		cfg.MaxDepth = 64
		html := `<html><body>` + strings.Repeat("<div>", 5000) + `<p>` + paragraphs[0] + `</p>` + strings.Repeat("</div>", 5000) + `</body></html>`

		res, err := newExtractor(cfg).ExtractContent(&artex.Page{HTML: html})

		require.NoError(t, err)
		assert.Contains(t, strings.Join(res.Warnings, " "), "truncated")
	})
}

func TestExtractor_Idempotent(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Harbor plan | City News</title><meta name="author" content="Jane Doe"></head><body>` +
		navigation() + `<article><img src="/a.jpg">` + articleBody() + `</article></body></html>`
	e := newExtractor(artex.DefaultConfig())

	first, err := e.ExtractContent(&artex.Page{HTML: html, URL: "https://example.com/2025/07/01/a"})
	require.NoError(t, err)
	second, err := e.ExtractContent(&artex.Page{HTML: html, URL: "https://example.com/2025/07/01/a"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
