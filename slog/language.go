package slog

import (
	"log/slog"

	"github.com/fwojciec/artex"
)

// Ensure LoggingLanguageRegistry implements artex.LanguageRegistry.
var _ artex.LanguageRegistry = (*LoggingLanguageRegistry)(nil)

// LoggingLanguageRegistry wraps a LanguageRegistry with debug logging for
// language detection.
type LoggingLanguageRegistry struct {
	next   artex.LanguageRegistry
	logger *slog.Logger
}

// NewLoggingLanguageRegistry creates a new LoggingLanguageRegistry.
func NewLoggingLanguageRegistry(next artex.LanguageRegistry, logger *slog.Logger) *LoggingLanguageRegistry {
	return &LoggingLanguageRegistry{next: next, logger: logger}
}

// Language delegates to the wrapped registry.
func (r *LoggingLanguageRegistry) Language(code string) *artex.Language {
	return r.next.Language(code)
}

// Detect delegates to the wrapped registry and logs the detected language.
func (r *LoggingLanguageRegistry) Detect(text string) string {
	code := r.next.Detect(text)
	detected := code
	if detected == "" {
		detected = "(unknown)"
	}
	r.logger.Debug("language detection",
		"language", detected,
		"chars", len(text),
	)
	return code
}
