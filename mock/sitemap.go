package mock

import (
	"context"

	"github.com/fwojciec/artex"
)

var _ artex.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of artex.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *artex.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *artex.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
