package artex

import "context"

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// URLSet remembers which URLs a batch run has already handled.
type URLSet interface {
	// Add records url and reports whether it was new.
	Add(url string) bool
}
