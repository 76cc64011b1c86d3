package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/batch"
	"github.com/fwojciec/artex/bloom"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	if c.Sitemap == "" && c.File == "" {
		fmt.Fprintln(deps.Stderr, "error: give a URL file or --sitemap")
		return artex.Errorf(artex.EINVALID, "no URLs to process")
	}

	filter, err := compileFilter(c.Include, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}

	extractor, err := deps.Extractor(c.Engine)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}

	runner := &batch.Runner{
		Sitemaps:    deps.Sitemaps,
		Fetcher:     deps.Fetcher,
		Extractor:   extractor,
		Articles:    deps.Articles,
		Seen:        bloom.NewFilter(100000, 0.001),
		RateLimiter: batch.NewDomainLimiter(c.RPS),
		Engine:      c.Engine,
		Concurrency: c.Concurrency,
		RetryDelays: deps.RetryDelays,
		Logger: func(format string, args ...any) {
			fmt.Fprintf(deps.Stderr, "  "+format+"\n", args...)
		},
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %s\n", batch.TruncateURL(event.URL, 60), artex.ErrorMessage(event.Error))
		case batch.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  skip %s (duplicate)\n", batch.TruncateURL(event.URL, 60))
		}
	}

	var summary *batch.Summary
	if c.Sitemap != "" {
		summary, err = runner.RunSitemap(deps.Ctx, c.Sitemap, filter, progress)
	} else {
		var urls []string
		if urls, err = readURLs(deps, c.File); err == nil {
			summary, err = runner.Run(deps.Ctx, urls, progress)
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d articles (%s), skipped %d, failed %d\n",
		summary.Saved, batch.FormatBytes(summary.Bytes), summary.Skipped, summary.Failed)
	return nil
}

// compileFilter validates regex patterns early. Returns nil when no
// patterns are given.
func compileFilter(include, exclude []string) (*artex.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	filter := &artex.URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, artex.Errorf(artex.EINVALID, "invalid filter pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, artex.Errorf(artex.EINVALID, "invalid filter pattern %q: %v", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

// readURLs reads one URL per line, skipping blank lines and # comments.
func readURLs(deps *Dependencies, path string) ([]string, error) {
	var r io.Reader = deps.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			return nil, artex.Errorf(artex.ENOTFOUND, "file %s not found", path)
		}
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
