// Package pipeline composes decoding, content extraction and text analysis
// into a complete artex.Extractor.
package pipeline

import (
	"log/slog"

	"github.com/fwojciec/artex"
)

// Ensure Extractor implements artex.Extractor at compile time.
var _ artex.Extractor = (*Extractor)(nil)

// Extractor runs decode, content extraction and analysis in sequence.
// It holds no per-call state and is safe for concurrent use when its
// collaborators are.
type Extractor struct {
	Decoder   artex.Decoder
	Content   artex.ContentExtractor
	Analyzer  artex.Analyzer
	Languages artex.LanguageRegistry

	// Logger receives recoverable input problems at Debug level.
	Logger *slog.Logger

	// IncludeTermScores copies the term score table onto results.
	IncludeTermScores bool
}

// NewExtractor creates a new Extractor with a discarding logger.
func NewExtractor(decoder artex.Decoder, content artex.ContentExtractor, analyzer artex.Analyzer, languages artex.LanguageRegistry) *Extractor {
	return &Extractor{
		Decoder:   decoder,
		Content:   content,
		Analyzer:  analyzer,
		Languages: languages,
		Logger:    slog.New(slog.DiscardHandler),
	}
}

// Extract decodes in, extracts its content and metadata, and adds summary
// and keywords. Decoder warnings precede content warnings on the result.
func (e *Extractor) Extract(in *artex.Input) (*artex.Result, error) {
	if in == nil {
		in = &artex.Input{}
	}

	page, err := e.Decoder.Decode(in)
	if err != nil {
		return nil, err
	}

	res, err := e.Content.ExtractContent(page)
	if err != nil {
		return nil, err
	}
	res.Warnings = append(append([]string{}, page.Warnings...), res.Warnings...)
	for _, w := range res.Warnings {
		e.Logger.Debug("extraction warning", "url", in.URL, "warning", w)
	}

	if res.Text == "" {
		return res, nil
	}
	if res.Language == "" {
		res.Language = e.Languages.Detect(res.Text)
		if res.Language == "" {
			res.Language = artex.DefaultLanguage
		}
	}

	lang := e.Languages.Language(res.Language)
	res.Language = lang.Code
	analysis := e.Analyzer.Analyze(res.Text, lang)
	res.Summary = analysis.Summary
	if analysis.Keywords != nil {
		res.Keywords = analysis.Keywords
	}
	if e.IncludeTermScores {
		res.TermScores = analysis.TermScores
	}
	return res, nil
}
