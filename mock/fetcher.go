package mock

import (
	"context"

	"github.com/fwojciec/artex"
)

var _ artex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of artex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*artex.Input, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*artex.Input, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
