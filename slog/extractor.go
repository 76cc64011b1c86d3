package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/artex"
)

// Ensure LoggingExtractor implements artex.Extractor.
var _ artex.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   artex.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next artex.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome. Results
// with warnings are logged at Warn level.
func (e *LoggingExtractor) Extract(in *artex.Input) (res *artex.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", inputURL(in), "bytes", inputSize(in)}
		level := slog.LevelInfo
		if res != nil {
			attrs = append(attrs,
				"language", res.Language,
				"words", artex.Words(res.Text),
				"warnings", len(res.Warnings),
			)
			if len(res.Warnings) > 0 {
				level = slog.LevelWarn
			}
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Log(context.Background(), level, "extract", attrs...)
	}(time.Now())
	return e.next.Extract(in)
}

func inputURL(in *artex.Input) string {
	if in == nil {
		return ""
	}
	return in.URL
}

func inputSize(in *artex.Input) int {
	if in == nil {
		return 0
	}
	return len(in.HTML)
}
