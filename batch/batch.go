// Package batch runs article extraction over many URLs: it fetches with
// retry under per-domain rate limits, extracts, skips duplicates and
// stores the results.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/artex"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs processed at once.
const DefaultConcurrency = 10

// Runner orchestrates batch extraction.
type Runner struct {
	Sitemaps    artex.SitemapService
	Fetcher     artex.Fetcher
	Extractor   artex.Extractor
	Articles    artex.ArticleService
	Seen        artex.URLSet
	RateLimiter artex.DomainLimiter
	Engine      string
	Concurrency int
	RetryDelays []time.Duration
	Logger      LogFunc
}

// Summary holds the outcome of a batch run.
type Summary struct {
	Saved   int
	Skipped int
	Failed  int
	Bytes   int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Title     string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// outcome holds the result of processing a single URL.
type outcome struct {
	position  int
	url       string
	result    *artex.Result
	duplicate bool
	err       error
}

// RunSitemap discovers article URLs from the sitemaps of siteURL and runs
// them through Run.
func (r *Runner) RunSitemap(ctx context.Context, siteURL string, filter *artex.URLFilter, progress ProgressFunc) (*Summary, error) {
	urls, err := r.Sitemaps.DiscoverURLs(ctx, siteURL, filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}
	return r.Run(ctx, urls, progress)
}

// Run fetches and extracts urls concurrently and stores the results in
// input order. URLs already seen and articles whose text matches a stored
// article are skipped. Per-URL failures are counted, not returned.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Summary, error) {
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	total := len(urls)
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan outcome, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			if r.Seen != nil && !r.Seen.Add(url) {
				resultCh <- outcome{position: i, url: url, duplicate: true}
				continue
			}
			g.Go(func() error {
				resultCh <- r.process(gctx, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	outcomes := make([]outcome, len(urls))
	for o := range resultCh {
		completed.Add(1)
		outcomes[o.position] = o
		if o.err != nil {
			notify(ProgressEvent{Type: ProgressFailed, Completed: int(completed.Load()), Total: total, URL: o.url, Error: o.err})
		}
	}

	var summary Summary
	hashes := make(map[string]bool)
	for _, o := range outcomes {
		switch {
		case o.duplicate:
			summary.Skipped++
			notify(ProgressEvent{Type: ProgressSkipped, URL: o.url, Total: total})
			continue
		case o.err != nil:
			summary.Failed++
			continue
		}

		hash := ContentHash(o.result.Text)
		dup, err := r.knownContent(ctx, hash, hashes)
		if err != nil {
			return nil, err
		}
		if dup {
			summary.Skipped++
			notify(ProgressEvent{Type: ProgressSkipped, URL: o.url, Total: total})
			continue
		}
		hashes[hash] = true

		article := &artex.Article{
			URL:         o.url,
			Title:       o.result.Title,
			Engine:      r.Engine,
			ContentHash: hash,
			Result:      o.result,
		}
		if err := r.Articles.CreateArticle(ctx, article); err != nil {
			summary.Failed++
			notify(ProgressEvent{Type: ProgressFailed, URL: o.url, Total: total, Error: err})
			continue
		}
		summary.Saved++
		summary.Bytes += len(o.result.Text)
		notify(ProgressEvent{Type: ProgressCompleted, URL: o.url, Title: o.result.Title, Total: total})
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return &summary, nil
}

// knownContent reports whether text with hash was stored in this run or
// before it. Empty texts are never duplicates.
func (r *Runner) knownContent(ctx context.Context, hash string, run map[string]bool) (bool, error) {
	if hash == ContentHash("") {
		return false, nil
	}
	if run[hash] {
		return true, nil
	}
	existing, err := r.Articles.FindArticles(ctx, artex.ArticleFilter{ContentHash: &hash, Limit: 1})
	if err != nil {
		return false, fmt.Errorf("looking up content hash: %w", err)
	}
	return len(existing) > 0, nil
}

// process fetches and extracts a single URL.
func (r *Runner) process(ctx context.Context, position int, url string) outcome {
	o := outcome{position: position, url: url}

	if r.RateLimiter != nil {
		if err := r.RateLimiter.Wait(ctx, Domain(url)); err != nil {
			o.err = err
			return o
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	in, err := FetchWithRetryDelays(ctx, url, r.Fetcher.Fetch, r.Logger, delays)
	if err != nil {
		o.err = err
		return o
	}

	res, err := r.Extractor.Extract(in)
	if err != nil {
		o.err = err
		return o
	}
	if res.URL == "" {
		res.URL = url
	}
	o.result = res
	return o
}
