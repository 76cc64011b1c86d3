package artex

import "context"

// Fetcher retrieves raw documents over the network.
type Fetcher interface {
	// Fetch downloads the document at url. The returned Input carries the
	// raw bytes, the Content-Type header and the final URL after redirects.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Input, error)

	// Close releases resources held by the fetcher.
	Close() error
}
