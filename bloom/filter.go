// Package bloom provides URL deduplication for batch runs using Bloom filters.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/artex"
)

// Ensure Filter implements artex.URLSet at compile time.
var _ artex.URLSet = (*Filter)(nil)

// Filter remembers normalized URLs in a Bloom filter. It is safe for
// concurrent use. False positives are possible, so a small share of new
// URLs may be reported as seen; false negatives are not.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records rawURL and reports whether it was new.
func (f *Filter) Add(rawURL string) bool {
	key := Normalize(rawURL)
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.f.TestOrAddString(key)
}

// Test returns true if the URL might have been added.
func (f *Filter) Test(rawURL string) bool {
	key := Normalize(rawURL)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(key)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}

// Normalize reduces URLs that address the same article to one key: the
// scheme and host are lower-cased, the fragment and tracking parameters
// dropped, and a trailing slash removed.
func Normalize(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return strings.TrimSpace(rawURL)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			if isTrackingParam(key) {
				q.Del(key)
			}
		}
		u.RawQuery = q.Encode()
	}
	if len(u.Path) > 1 {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
	}
	return u.String()
}

func isTrackingParam(key string) bool {
	key = strings.ToLower(key)
	return strings.HasPrefix(key, "utm_") || key == "fbclid" || key == "gclid" || key == "ocid" || key == "cmpid"
}
