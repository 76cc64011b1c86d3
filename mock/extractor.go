package mock

import "github.com/fwojciec/artex"

var _ artex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of artex.Extractor.
type Extractor struct {
	ExtractFn func(in *artex.Input) (*artex.Result, error)
}

func (e *Extractor) Extract(in *artex.Input) (*artex.Result, error) {
	return e.ExtractFn(in)
}

var _ artex.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of artex.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(page *artex.Page) (*artex.Result, error)
}

func (e *ContentExtractor) ExtractContent(page *artex.Page) (*artex.Result, error) {
	return e.ExtractContentFn(page)
}

var _ artex.Decoder = (*Decoder)(nil)

// Decoder is a mock implementation of artex.Decoder.
type Decoder struct {
	DecodeFn func(in *artex.Input) (*artex.Page, error)
}

func (d *Decoder) Decode(in *artex.Input) (*artex.Page, error) {
	return d.DecodeFn(in)
}

var _ artex.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of artex.Analyzer.
type Analyzer struct {
	AnalyzeFn func(text string, lang *artex.Language) *artex.Analysis
}

func (a *Analyzer) Analyze(text string, lang *artex.Language) *artex.Analysis {
	return a.AnalyzeFn(text, lang)
}
