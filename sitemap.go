package artex

import (
	"context"
	"regexp"
)

// SitemapService lists page URLs published in a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the URLs listed by the sitemaps of baseURL,
	// found via robots.txt or /sitemap.xml. Sitemap indexes are followed.
	// A nil filter keeps every URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter selects URLs by pattern.
type URLFilter struct {
	// Include keeps only URLs matching at least one pattern, when set.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern. Applied after Include.
	Exclude []*regexp.Regexp
}

// Match reports whether url passes the filter. A nil filter passes everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 && !matchAny(f.Include, url) {
		return false
	}
	return !matchAny(f.Exclude, url)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
