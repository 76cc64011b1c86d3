package artex

import "time"

// Keyword is a ranked term from the article text.
type Keyword struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// Result is everything extracted from one document.
//
// Text fields are empty rather than absent and list fields are empty rather
// than nil, so a Result always marshals to the same shape.
type Result struct {
	URL          string     `json:"url"`
	CanonicalURL string     `json:"canonicalUrl"`
	Title        string     `json:"title"`
	Authors      []string   `json:"authors"`
	PublishDate  *time.Time `json:"publishDate"`
	TopImage     string     `json:"topImage"`
	Text         string     `json:"text"`
	HTML         string     `json:"html"`
	Images       []string   `json:"images"`
	Links        []string   `json:"links"`
	Summary      string     `json:"summary"`
	Keywords     []Keyword  `json:"keywords"`
	Language     string     `json:"language"`
	Description  string     `json:"description"`
	MetaKeywords []string   `json:"metaKeywords"`
	SiteName     string     `json:"siteName"`
	Type         string     `json:"type"`
	Favicon      string     `json:"favicon"`
	Tags         []string   `json:"tags"`

	// Meta maps every meta name or property to its first content value.
	Meta map[string]string `json:"meta"`

	// TermScores is the normalized term frequency table. Only filled when
	// requested.
	TermScores map[string]float64 `json:"termScores,omitempty"`

	// Warnings lists recoverable input problems, in the order found.
	Warnings []string `json:"warnings"`
}

// NewResult returns a Result with every list and map field initialized.
func NewResult() *Result {
	return &Result{
		Authors:      []string{},
		Images:       []string{},
		Links:        []string{},
		Keywords:     []Keyword{},
		MetaKeywords: []string{},
		Tags:         []string{},
		Meta:         map[string]string{},
		Warnings:     []string{},
	}
}

// Analysis is the NLP output for one text.
type Analysis struct {
	Summary    string
	Keywords   []Keyword
	TermScores map[string]float64
}

// Analyzer derives a summary and keywords from plain text.
type Analyzer interface {
	// Analyze never fails. Text without scorable tokens yields an empty
	// summary and no keywords.
	Analyze(text string, lang *Language) *Analysis
}

// ContentExtractor locates the article in a decoded page and extracts its
// text and metadata. Summary and keywords are left empty.
type ContentExtractor interface {
	ExtractContent(page *Page) (*Result, error)
}

// Extractor runs the complete pipeline over one raw document.
type Extractor interface {
	// Extract never fails on malformed markup or missing fields. The only
	// error is EINVALID for input that is not text.
	Extract(in *Input) (*Result, error)
}
