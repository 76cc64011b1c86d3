// Package nlp derives an extractive summary and a keyword list from
// article text using normalized term frequencies.
package nlp

import (
	"sort"
	"strings"
	"unicode"

	"github.com/fwojciec/artex"
)

// Ensure Analyzer implements artex.Analyzer at compile time.
var _ artex.Analyzer = (*Analyzer)(nil)

// Analyzer scores terms and sentences of one text at a time.
type Analyzer struct {
	// SummarySentences is the maximum number of summary sentences.
	SummarySentences int

	// KeywordCount is the maximum number of keywords.
	KeywordCount int

	// MinTokenLength is the minimum rune length of a scored token.
	MinTokenLength int
}

// NewAnalyzer creates an Analyzer from the configuration.
func NewAnalyzer(cfg artex.Config) *Analyzer {
	return &Analyzer{
		SummarySentences: cfg.SummarySentences,
		KeywordCount:     cfg.KeywordCount,
		MinTokenLength:   cfg.MinTokenLength,
	}
}

// Analyze computes keywords, a summary and the term score table for text.
func (a *Analyzer) Analyze(text string, lang *artex.Language) *artex.Analysis {
	out := &artex.Analysis{
		Keywords:   []artex.Keyword{},
		TermScores: map[string]float64{},
	}

	scores, order := a.termScores(lang.Tokens(text), lang)
	if len(scores) == 0 {
		return out
	}
	out.TermScores = scores
	out.Keywords = a.keywords(scores, order)
	out.Summary = a.summary(text, scores, lang)
	return out
}

// termScores counts scorable tokens and normalizes by the highest count.
// order lists terms by first occurrence.
func (a *Analyzer) termScores(tokens []string, lang *artex.Language) (map[string]float64, []string) {
	counts := make(map[string]int)
	var order []string
	highest := 0
	for _, tok := range tokens {
		if !a.scorable(tok, lang) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
		if counts[tok] > highest {
			highest = counts[tok]
		}
	}

	scores := make(map[string]float64, len(counts))
	for term, n := range counts {
		scores[term] = float64(n) / float64(highest)
	}
	return scores, order
}

func (a *Analyzer) scorable(tok string, lang *artex.Language) bool {
	if len([]rune(tok)) < a.MinTokenLength || lang.IsStopword(tok) {
		return false
	}
	return strings.IndexFunc(tok, unicode.IsLetter) >= 0
}

func (a *Analyzer) keywords(scores map[string]float64, order []string) []artex.Keyword {
	ranked := make([]string, len(order))
	copy(ranked, order)
	// Stable sort keeps first-occurrence order among equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	if len(ranked) > a.KeywordCount {
		ranked = ranked[:a.KeywordCount]
	}

	keywords := make([]artex.Keyword, len(ranked))
	for i, term := range ranked {
		keywords[i] = artex.Keyword{Term: term, Score: scores[term]}
	}
	return keywords
}

type scoredSentence struct {
	text     string
	position int
	score    float64
}

// summary picks the highest scoring sentences and returns them in source
// order, joined by single spaces. Text with no more sentences than the
// summary length is returned unchanged, paragraph breaks included.
func (a *Analyzer) summary(text string, scores map[string]float64, lang *artex.Language) string {
	sentences := lang.Sentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) <= a.SummarySentences {
		return text
	}

	scored := make([]scoredSentence, len(sentences))
	for i, s := range sentences {
		scored[i] = scoredSentence{text: s, position: i, score: sentenceScore(s, scores, lang)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	top := scored[:a.SummarySentences]
	sort.Slice(top, func(i, j int) bool {
		return top[i].position < top[j].position
	})

	parts := make([]string, len(top))
	for i, s := range top {
		parts[i] = s.text
	}
	return strings.Join(parts, " ")
}

// sentenceScore is the sum of member token scores divided by the number of
// tokens in the sentence.
func sentenceScore(sentence string, scores map[string]float64, lang *artex.Language) float64 {
	tokens := lang.Tokens(sentence)
	if len(tokens) == 0 {
		return 0
	}
	var sum float64
	for _, tok := range tokens {
		sum += scores[tok]
	}
	return sum / float64(len(tokens))
}
