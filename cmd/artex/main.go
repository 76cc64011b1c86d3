package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/batch"
	"github.com/fwojciec/artex/charset"
	"github.com/fwojciec/artex/goquery"
	"github.com/fwojciec/artex/htmltomarkdown"
	artexhttp "github.com/fwojciec/artex/http"
	"github.com/fwojciec/artex/language"
	"github.com/fwojciec/artex/nlp"
	"github.com/fwojciec/artex/pipeline"
	"github.com/fwojciec/artex/readability"
	artexslog "github.com/fwojciec/artex/slog"
	"github.com/fwojciec/artex/sqlite"
	"github.com/fwojciec/artex/trafilatura"
	"github.com/fwojciec/artex/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// YAML configuration file. Empty means built-in defaults.
	ConfigPath string

	// Stdin is read when the extract source is "-".
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Fetcher  artex.Fetcher
	Articles artex.ArticleService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: os.Getenv("ARTEX_CONFIG"),
		Stdin:      os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("artex"),
		kong.Description("Extract articles from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'artex --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	configPath := m.ConfigPath
	if cli.Config != "" {
		configPath = cli.Config
	}
	cfg := artex.DefaultConfig()
	if configPath != "" {
		if cfg, err = yaml.LoadConfig(configPath); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", artex.ErrorMessage(err))
			return fmt.Errorf("failed to load config %q: %w", configPath, err)
		}
	}

	deps.Engines = newEngines(cfg, logger, cmd == "extract" && cli.Extract.Terms)
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Sitemaps = artexslog.NewLoggingSitemapService(artexhttp.NewSitemapService(nil), logger)

	if m.Fetcher == nil {
		fetcher := artexhttp.NewFetcher(
			artexhttp.WithTimeout(cli.Timeout),
			artexhttp.WithMaxBytes(int64(cfg.MaxInputBytes)),
		)
		defer fetcher.Close()
		m.Fetcher = fetcher
	}
	deps.Fetcher = artexslog.NewLoggingFetcher(m.Fetcher, logger)

	// Only commands that touch stored articles open the database.
	switch cmd {
	case "batch", "list", "show", "delete":
		if m.Articles == nil {
			m.DB = sqlite.NewDB(m.DBPath)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintf(stderr, "Hint: Set ARTEX_DB to use a different database path\n")
				return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
			}
			defer m.Close()
			m.Articles = sqlite.NewArticleService(m.DB)
		}
		deps.Articles = artexslog.NewLoggingArticleService(m.Articles, logger)
	}

	return kongCtx.Run(deps)
}

// newEngines builds a complete extraction pipeline for every content
// engine, in artex.Engines order.
func newEngines(cfg artex.Config, logger *slog.Logger, terms bool) []batch.Engine {
	languages := artexslog.NewLoggingLanguageRegistry(language.NewRegistry(), logger)
	contents := map[string]artex.ContentExtractor{
		artex.EngineGoquery:     goquery.NewExtractor(cfg, languages),
		artex.EngineReadability: readability.NewExtractor(cfg),
		artex.EngineTrafilatura: trafilatura.NewExtractor(cfg),
	}

	engines := make([]batch.Engine, 0, len(artex.Engines))
	for _, name := range artex.Engines {
		p := pipeline.NewExtractor(charset.NewDecoder(cfg), contents[name], nlp.NewAnalyzer(cfg), languages)
		p.Logger = logger.With("engine", name)
		p.IncludeTermScores = terms
		engines = append(engines, batch.Engine{
			Name:      name,
			Extractor: artexslog.NewLoggingExtractor(p, logger),
		})
	}
	return engines
}

func defaultDBPath() string {
	if path := os.Getenv("ARTEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "artex.db"
	}
	dir := filepath.Join(home, ".artex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "artex.db")
}
