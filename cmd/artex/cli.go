package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Fetcher   artex.Fetcher
	Engines   []batch.Engine
	Converter artex.Converter
	Sitemaps  artex.SitemapService
	Articles  artex.ArticleService

	// RetryDelays overrides the batch fetch backoff. Nil means the defaults.
	RetryDelays []time.Duration
}

// Extractor returns the pipeline of the named engine.
func (d *Dependencies) Extractor(engine string) (artex.Extractor, error) {
	for _, e := range d.Engines {
		if e.Name == engine {
			return e.Extractor, nil
		}
	}
	return nil, artex.Errorf(artex.EINVALID, "unknown engine %q", engine)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string        `type:"path" help:"YAML file with extraction heuristics (env ARTEX_CONFIG)"`
	Verbose bool          `short:"v" help:"Log debug details to stderr"`
	Timeout time.Duration `default:"10s" help:"Fetch timeout per page"`

	Extract ExtractCmd `cmd:"" help:"Extract the article from a file, URL or stdin"`
	Compare CompareCmd `cmd:"" help:"Run every engine on one page and compare the output"`
	Batch   BatchCmd   `cmd:"" help:"Extract and store many articles"`
	List    ListCmd    `cmd:"" help:"List stored articles"`
	Show    ShowCmd    `cmd:"" help:"Show a stored article by ID or URL"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored article"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source   string `arg:"" optional:"" default:"-" help:"HTML file, http(s) URL, or - for stdin"`
	URL      string `help:"Page URL for resolving links when reading a file"`
	Lang     string `help:"Declared ISO 639-1 language code"`
	Encoding string `help:"Declared character encoding"`
	Engine   string `short:"e" enum:"goquery,readability,trafilatura" default:"goquery" help:"Content engine (goquery, readability, trafilatura)"`
	Format   string `short:"f" enum:"json,text,markdown" default:"json" help:"Output format (json, text, markdown)"`
	Terms    bool   `help:"Include the term score table in JSON output"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	Source string `arg:"" help:"HTML file, http(s) URL, or - for stdin"`
	URL    string `help:"Page URL for resolving links when reading a file"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File        string   `arg:"" optional:"" help:"File with one URL per line, or - for stdin"`
	Sitemap     string   `short:"s" help:"Discover URLs from the sitemaps of this site or sitemap URL"`
	Include     []string `short:"i" help:"Only sitemap URLs matching this regex (repeatable)"`
	Exclude     []string `short:"x" help:"Skip sitemap URLs matching this regex (repeatable)"`
	Engine      string   `short:"e" enum:"goquery,readability,trafilatura" default:"goquery" help:"Content engine (goquery, readability, trafilatura)"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per domain (0 disables the limit)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	URL    string `help:"Only articles extracted from this URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of articles"`
	Offset int    `help:"Number of articles to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Ref    string `arg:"" help:"Article ID or URL"`
	Format string `short:"f" enum:"json,text,markdown" default:"json" help:"Output format (json, text, markdown)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Article ID"`
	Force bool   `help:"Confirm deletion"`
}
