package mock

import "github.com/fwojciec/artex"

var _ artex.LanguageRegistry = (*LanguageRegistry)(nil)

// LanguageRegistry is a mock implementation of artex.LanguageRegistry.
type LanguageRegistry struct {
	LanguageFn func(code string) *artex.Language
	DetectFn   func(text string) string
}

func (r *LanguageRegistry) Language(code string) *artex.Language {
	return r.LanguageFn(code)
}

func (r *LanguageRegistry) Detect(text string) string {
	return r.DetectFn(text)
}
