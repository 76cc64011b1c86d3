package batch

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/artex"
	"golang.org/x/time/rate"
)

var _ artex.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per publisher. Each domain is allowed rps
// requests per second with no burst; different domains never wait on
// each other.
type DomainLimiter struct {
	limit rate.Limit

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter allowing rps requests per second per
// domain. A non-positive rps turns Wait into a context check.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{limit: rate.Limit(rps), buckets: map[string]*rate.Limiter{}}
}

// Wait blocks until domain may be requested again or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.limit <= 0 {
		return ctx.Err()
	}
	return d.bucket(domain).Wait(ctx)
}

func (d *DomainLimiter) bucket(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buckets[domain]
	if !ok {
		b = rate.NewLimiter(d.limit, 1)
		d.buckets[domain] = b
	}
	return b
}

// Domain returns the rate limiting key of rawURL: its lower-cased host
// without a leading "www.". Returns "" for URLs without a host.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
