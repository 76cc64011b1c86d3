package artex

import (
	"strings"
	"unicode"
)

// DefaultLanguage is used when no language is declared or detected.
const DefaultLanguage = "en"

// Language is a read-only language profile shared by all extractions.
type Language struct {
	Code string

	// Stopwords holds folded stopword tokens.
	Stopwords map[string]struct{}

	// Abbreviations holds folded words that end with a period without
	// ending a sentence ("mr", "dr", "etc").
	Abbreviations map[string]struct{}

	// Fold case-folds and normalizes a word. Nil means strings.ToLower.
	Fold func(string) string
}

// LanguageRegistry provides language profiles.
type LanguageRegistry interface {
	// Language returns the profile for an ISO 639-1 code. Unknown codes get
	// a profile with no stopwords.
	Language(code string) *Language

	// Detect guesses the language of text. Returns "" when unsure.
	Detect(text string) string
}

// apostrophes maps typographic apostrophes to ASCII, the form stopword
// lists use.
var apostrophes = strings.NewReplacer("\u2019", "'", "\u2018", "'", "\u02BC", "'")

// Token folds a word and trims surrounding punctuation.
// Returns "" for pure punctuation.
func (l *Language) Token(word string) string {
	word = strings.TrimFunc(apostrophes.Replace(word), isTrimmable)
	if word == "" {
		return ""
	}
	if l.Fold != nil {
		return l.Fold(word)
	}
	return strings.ToLower(word)
}

// Tokens splits text into folded word tokens.
func (l *Language) Tokens(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if tok := l.Token(f); tok != "" && hasLetterOrDigit(tok) {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// IsStopword reports whether a folded token is a stopword.
func (l *Language) IsStopword(token string) bool {
	_, ok := l.Stopwords[token]
	return ok
}

// StopwordCount counts the stopwords in text.
func (l *Language) StopwordCount(text string) int {
	n := 0
	for _, tok := range l.Tokens(text) {
		if l.IsStopword(tok) {
			n++
		}
	}
	return n
}

// Words counts the words in text. A word is a whitespace-separated field
// with at least one letter or digit.
func Words(text string) int {
	n := 0
	for _, f := range strings.Fields(text) {
		if hasLetterOrDigit(f) {
			n++
		}
	}
	return n
}

// Sentences splits text into sentences, keeping the sentence text verbatim
// apart from surrounding whitespace. Blank lines always end a sentence.
func (l *Language) Sentences(text string) []string {
	var sentences []string
	for _, para := range strings.Split(text, "\n\n") {
		sentences = append(sentences, l.splitParagraph(para)...)
	}
	return sentences
}

func (l *Language) splitParagraph(para string) []string {
	var out []string
	runes := []rune(para)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		// Absorb runs like "?!" or "..." and closing quotes.
		end := i + 1
		for end < len(runes) && (isTerminator(runes[end]) || isCloser(runes[end])) {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			i = end - 1
			continue
		}
		if runes[i] == '.' && end == i+1 && l.isAbbreviation(runes[start:i]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			out = append(out, s)
		}
		start = end
		i = end - 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

// isAbbreviation reports whether the word right before a period is an
// abbreviation or a single-letter initial.
func (l *Language) isAbbreviation(before []rune) bool {
	j := len(before)
	for j > 0 && !unicode.IsSpace(before[j-1]) {
		j--
	}
	word := string(before[j:])
	word = strings.TrimLeftFunc(word, isTrimmable)
	if word == "" {
		return false
	}
	if len([]rune(word)) == 1 && unicode.IsUpper([]rune(word)[0]) {
		return true
	}
	_, ok := l.Abbreviations[strings.ToLower(word)]
	return ok
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '…', '؟', '。', '！', '？':
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '»', '”', '’':
		return true
	}
	return false
}

func isTrimmable(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
