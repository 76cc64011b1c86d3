package batch

import (
	"strings"

	"github.com/fwojciec/artex"
)

// Engine is a named extractor taking part in a comparison.
type Engine struct {
	Name      string
	Extractor artex.Extractor
}

// Comparison is the outcome of one engine on one document.
type Comparison struct {
	Engine     string
	Result     *artex.Result
	Words      int
	Paragraphs int
	Err        error
}

// Compare runs every engine over in, in the given order. Engine failures
// are recorded on their comparison, not returned.
func Compare(in *artex.Input, engines []Engine) []Comparison {
	out := make([]Comparison, 0, len(engines))
	for _, e := range engines {
		c := Comparison{Engine: e.Name}
		res, err := e.Extractor.Extract(in)
		if err != nil {
			c.Err = err
			out = append(out, c)
			continue
		}
		c.Result = res
		c.Words = artex.Words(res.Text)
		if res.Text != "" {
			c.Paragraphs = strings.Count(res.Text, "\n\n") + 1
		}
		out = append(out, c)
	}
	return out
}

// ContentDiffers reports whether the text of b is more than 50% longer
// than the text of a, suggesting the engine behind a missed content.
// Missing results count as empty.
func ContentDiffers(a, b *artex.Result) bool {
	aLen, bLen := textLen(a), textLen(b)
	if aLen == 0 {
		return bLen > 0
	}
	return float64(bLen) > float64(aLen)*1.5
}

func textLen(r *artex.Result) int {
	if r == nil {
		return 0
	}
	return len(r.Text)
}
