// Package language provides the language profiles used to score and
// tokenize article text: stopword sets, sentence rules and case folding,
// plus language detection backed by whatlanggo.
package language

import (
	"bufio"
	"embed"
	"strings"
	"sync"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/fwojciec/artex"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

//go:embed stopwords/*.txt
var stopwordFiles embed.FS

// detectSample bounds the amount of text handed to the detector.
const detectSample = 4000

var abbreviations = map[string][]string{
	"en": {"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "vs", "etc", "inc", "ltd", "co", "corp", "gov", "gen", "sen", "rep", "no", "jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec", "e.g", "i.e", "u.s", "u.k", "a.m", "p.m"},
	"es": {"sr", "sra", "srta", "dr", "dra", "ud", "uds", "etc", "pág", "núm", "ej"},
	"de": {"dr", "prof", "nr", "ca", "vgl", "bzw", "usw", "z.b", "d.h", "u.a", "hr", "fr", "str"},
	"fr": {"m", "mme", "mlle", "dr", "pr", "etc", "p.ex", "cf", "av", "bd"},
	"pt": {"sr", "sra", "dr", "dra", "etc", "pág", "av", "prof"},
	"it": {"sig", "sigg", "dott", "prof", "ecc", "pag", "avv", "ing"},
	"ar": {},
}

// profiles holds one lazily built profile per supported language. Built
// profiles are never modified.
var profiles = func() map[string]func() *artex.Language {
	m := make(map[string]func() *artex.Language, len(abbreviations))
	for code := range abbreviations {
		m[code] = sync.OnceValue(func() *artex.Language { return load(code) })
	}
	return m
}()

// Ensure Registry implements artex.LanguageRegistry at compile time.
var _ artex.LanguageRegistry = (*Registry)(nil)

// Registry serves the process-wide language profiles.
type Registry struct{}

// NewRegistry creates a new Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Supported lists the codes of languages with stopword lists.
func (r *Registry) Supported() []string {
	return []string{"ar", "de", "en", "es", "fr", "it", "pt"}
}

// Language returns the profile for code. Region subtags are ignored
// ("en-GB" is "en"). Unknown codes get a profile without stopwords.
func (r *Registry) Language(code string) *artex.Language {
	code = Normalize(code)
	if code == "" {
		code = artex.DefaultLanguage
	}
	if p, ok := profiles[code]; ok {
		return p()
	}
	return &artex.Language{Code: code, Fold: fold}
}

// Detect guesses the language of text and returns its ISO 639-1 code,
// or "" when the guess is unreliable.
func (r *Registry) Detect(text string) string {
	if len(text) > detectSample {
		text = strings.ToValidUTF8(text[:detectSample], "")
	}
	if strings.TrimSpace(text) == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}

// Normalize reduces a language tag to its lower-case primary subtag.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	if len(code) < 2 || len(code) > 3 {
		return ""
	}
	return code
}

func load(code string) *artex.Language {
	lang := &artex.Language{
		Code:          code,
		Stopwords:     make(map[string]struct{}),
		Abbreviations: make(map[string]struct{}, len(abbreviations[code])),
		Fold:          fold,
	}
	if code == "ar" {
		lang.Fold = foldArabic
	}
	for _, a := range abbreviations[code] {
		lang.Abbreviations[a] = struct{}{}
	}

	f, err := stopwordFiles.Open("stopwords/" + code + ".txt")
	if err != nil {
		return lang
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if w := strings.TrimSpace(scanner.Text()); w != "" {
			lang.Stopwords[lang.Fold(w)] = struct{}{}
		}
	}
	return lang
}

var apostrophes = strings.NewReplacer("\u2019", "'", "\u2018", "'", "\u02BC", "'")

func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(apostrophes.Replace(s)))
}

var arabicReplacer = strings.NewReplacer(
	"إ", "ا",
	"أ", "ا",
	"آ", "ا",
	"ى", "ي",
	"ة", "ه",
)

// foldArabic unifies alef, yeh and teh marbuta forms and drops diacritics.
func foldArabic(s string) string {
	s = arabicReplacer.Replace(fold(s))
	return strings.Map(func(r rune) rune {
		if r >= 0x064B && r <= 0x0652 {
			return -1
		}
		return r
	}, s)
}
