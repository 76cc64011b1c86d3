package nlp_test

import (
	"testing"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/language"
	"github.com/fwojciec/artex/nlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func english() *artex.Language {
	return language.NewRegistry().Language("en")
}

func TestAnalyzer_Keywords(t *testing.T) {
	t.Parallel()

	t.Run("ranks by normalized frequency", func(t *testing.T) {
		t.Parallel()

		a := nlp.NewAnalyzer(artex.DefaultConfig())
		text := "Rockets launch satellites. Rockets carry cargo. Rockets return to the pad."

		got := a.Analyze(text, english())

		require.NotEmpty(t, got.Keywords)
		assert.Equal(t, "rockets", got.Keywords[0].Term)
		assert.InDelta(t, 1.0, got.Keywords[0].Score, 1e-9)
		assert.InDelta(t, 1.0/3.0, got.TermScores["cargo"], 1e-9)
	})

	t.Run("breaks ties by first occurrence", func(t *testing.T) {
		t.Parallel()

		a := nlp.NewAnalyzer(artex.DefaultConfig())

		got := a.Analyze("zebra apple mango", english())

		terms := make([]string, len(got.Keywords))
		for i, k := range got.Keywords {
			terms[i] = k.Term
		}
		assert.Equal(t, []string{"zebra", "apple", "mango"}, terms)
	})

	t.Run("never contains stopwords or short tokens", func(t *testing.T) {
		t.Parallel()

		a := nlp.NewAnalyzer(artex.DefaultConfig())
		en := english()

		got := a.Analyze("The ox and the cat are in the barn with a dog and an owl by the river.", en)

		for _, k := range got.Keywords {
			assert.False(t, en.IsStopword(k.Term), k.Term)
			assert.GreaterOrEqual(t, len([]rune(k.Term)), 3, k.Term)
		}
		assert.NotContains(t, got.TermScores, "ox")
		assert.NotContains(t, got.TermScores, "the")
	})

	t.Run("typographic apostrophes fold to stopwords", func(t *testing.T) {
		t.Parallel()

		a := nlp.NewAnalyzer(artex.DefaultConfig())
		en := english()

		got := a.Analyze("We don\u2019t know. They don\u2019t care. It\u2019s over. Harbor plan.", en)

		require.NotEmpty(t, got.Keywords)
		for _, k := range got.Keywords {
			assert.False(t, en.IsStopword(k.Term), k.Term)
			assert.NotContains(t, k.Term, "\u2019")
		}
		assert.NotContains(t, got.TermScores, "don't")
		assert.NotContains(t, got.TermScores, "it's")
	})

	t.Run("limits to keyword count", func(t *testing.T) {
		t.Parallel()

		cfg := artex.DefaultConfig()
		cfg.KeywordCount = 2
		a := nlp.NewAnalyzer(cfg)

		got := a.Analyze("alpha beta gamma delta epsilon", english())

		assert.Len(t, got.Keywords, 2)
	})

	t.Run("skips numbers", func(t *testing.T) {
		t.Parallel()

		a := nlp.NewAnalyzer(artex.DefaultConfig())

		got := a.Analyze("2025 2025 2025 budget", english())

		require.Len(t, got.Keywords, 1)
		assert.Equal(t, "budget", got.Keywords[0].Term)
	})
}

func TestAnalyzer_Summary(t *testing.T) {
	t.Parallel()

	t.Run("fewer sentences than summary length returns full text", func(t *testing.T) {
		t.Parallel()

		a := nlp.NewAnalyzer(artex.DefaultConfig())
		text := "Solar panels got cheaper. Installations doubled last year. Utilities are adapting."

		got := a.Analyze(text, english())

		assert.Equal(t, text, got.Summary)
	})

	t.Run("short text keeps paragraph breaks", func(t *testing.T) {
		t.Parallel()

		a := nlp.NewAnalyzer(artex.DefaultConfig())
		text := "Solar panels got cheaper.\n\nInstallations doubled last year.\n\nUtilities are adapting."

		got := a.Analyze(text, english())

		assert.Equal(t, text, got.Summary)
	})

	t.Run("keeps source order of selected sentences", func(t *testing.T) {
		t.Parallel()

		cfg := artex.DefaultConfig()
		cfg.SummarySentences = 2
		a := nlp.NewAnalyzer(cfg)
		text := "Weather was mild. Volcano erupted near village. Residents fled volcano area. Lunch was served."

		got := a.Analyze(text, english())

		assert.Equal(t, "Volcano erupted near village. Residents fled volcano area.", got.Summary)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		cfg := artex.DefaultConfig()
		cfg.SummarySentences = 2
		a := nlp.NewAnalyzer(cfg)
		text := "One topic here. Another topic there. Third topic everywhere. Fourth topic somewhere."

		first := a.Analyze(text, english())
		second := a.Analyze(text, english())

		assert.Equal(t, first, second)
	})
}

func TestAnalyzer_NoTokens(t *testing.T) {
	t.Parallel()

	a := nlp.NewAnalyzer(artex.DefaultConfig())

	for _, text := range []string{"", "   ", "... !!!", "the of and"} {
		got := a.Analyze(text, english())

		assert.Empty(t, got.Summary, text)
		assert.Empty(t, got.Keywords, text)
		assert.NotNil(t, got.Keywords, text)
	}
}
