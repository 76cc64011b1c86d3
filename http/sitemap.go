package http

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/beevik/etree"
	"github.com/fwojciec/artex"
)

// maxIndexDepth bounds how deep nested sitemap indexes are followed.
const maxIndexDepth = 3

// Ensure SitemapService implements artex.SitemapService.
var _ artex.SitemapService = (*SitemapService)(nil)

// SitemapService discovers article URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// entry is one page listed in a sitemap.
type entry struct {
	loc      string
	modified time.Time
}

// DiscoverURLs lists the pages of a site's sitemaps, most recently
// published or modified first. Pages without a date keep sitemap order
// after the dated ones. Returns an empty slice (not nil) if no sitemaps
// are found.
//
// baseURL is either a sitemap itself (ending in .xml or .xml.gz) or a site
// URL whose sitemaps are found via robots.txt or /sitemap.xml. For a site
// URL with a non-root path only pages below that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *artex.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, artex.Errorf(artex.EINVALID, "invalid base URL %q", baseURL)
	}

	var roots []string
	pathPrefix := ""
	if isSitemapPath(base.Path) {
		roots = []string{base.String()}
	} else {
		if base.Path != "/" {
			pathPrefix = base.Path
		}
		root := *base
		root.Path, root.RawQuery, root.Fragment = "", "", ""
		roots, err = s.findSitemapURLs(ctx, &root)
		if err != nil {
			return nil, err
		}
	}

	w := &sitemapWalk{svc: s, seenSitemaps: map[string]bool{}, seenURLs: map[string]bool{}}
	for _, root := range roots {
		if err := w.visit(ctx, root, 0); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(w.entries, func(i, j int) bool {
		return w.entries[i].modified.After(w.entries[j].modified)
	})

	urls := []string{}
	for _, e := range w.entries {
		if pathPrefix != "" && !matchesPathPrefix(e.loc, pathPrefix) {
			continue
		}
		if !filter.Match(e.loc) {
			continue
		}
		urls = append(urls, e.loc)
	}
	return urls, nil
}

func isSitemapPath(p string) bool {
	p = strings.ToLower(p)
	return strings.HasSuffix(p, ".xml") || strings.HasSuffix(p, ".xml.gz")
}

// matchesPathPrefix checks if a URL's path starts with the given prefix,
// respecting path boundaries: /news matches /news/ and /news/a but not
// /newsletter.
func matchesPathPrefix(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix) || parsed.Path+"/" == prefix
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back to /sitemap.xml.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := s.urlExists(ctx, sitemapURL.String())
	if err != nil {
		// Propagate context errors, treat other errors as "not found"
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{sitemapURL.String()}, nil
	}
	return nil, nil
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetch(ctx, robotsURL)
	if err != nil {
		return nil, err
	}

	var sitemaps []string
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			sitemaps = append(sitemaps, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// sitemapWalk collects entries across sitemaps and indexes, visiting each
// sitemap and keeping each page once.
type sitemapWalk struct {
	svc          *SitemapService
	seenSitemaps map[string]bool
	seenURLs     map[string]bool
	entries      []entry
}

func (w *sitemapWalk) visit(ctx context.Context, sitemapURL string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.seenSitemaps[sitemapURL] || depth > maxIndexDepth {
		return nil
	}
	w.seenSitemaps[sitemapURL] = true

	body, err := w.svc.fetch(ctx, sitemapURL)
	if err != nil {
		return err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		for _, sm := range root.SelectElements("sitemap") {
			if loc := elementText(sm, "loc"); loc != "" {
				if err := w.visit(ctx, loc, depth+1); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, u := range root.SelectElements("url") {
		loc := elementText(u, "loc")
		if loc == "" || w.seenURLs[loc] {
			continue
		}
		w.seenURLs[loc] = true
		w.entries = append(w.entries, entry{loc: loc, modified: entryDate(u)})
	}
	return nil
}

// entryDate prefers the news publication date over lastmod.
func entryDate(u *etree.Element) time.Time {
	for _, path := range []string{"news/publication_date", "lastmod"} {
		el := u.FindElement(path)
		if el == nil {
			continue
		}
		if t, err := dateparse.ParseIn(strings.TrimSpace(el.Text()), time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

func elementText(parent *etree.Element, tag string) string {
	el := parent.SelectElement(tag)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// fetch retrieves targetURL, transparently decompressing gzip bodies.
func (s *SitemapService) fetch(ctx context.Context, targetURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", targetURL, err)
	}
	if len(body) >= 2 && body[0] == 0x1f && body[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", targetURL, err)
		}
		defer zr.Close()
		if body, err = io.ReadAll(zr); err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", targetURL, err)
		}
	}
	return body, nil
}

// urlExists checks if a URL returns 200 OK.
func (s *SitemapService) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
