package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/artex"
)

// Ensure LoggingFetcher implements artex.Fetcher.
var _ artex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   artex.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next artex.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (in *artex.Input, err error) {
	defer func(begin time.Time) {
		bytes := 0
		if in != nil {
			bytes = len(in.HTML)
		}
		f.logger.Info("fetch",
			"url", url,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
