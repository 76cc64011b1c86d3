package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/htmltomarkdown"
)

// readInput loads source: "-" reads stdin, http(s) URLs are fetched and
// anything else is read as a file.
func readInput(deps *Dependencies, source string) (*artex.Input, error) {
	switch {
	case source == "-" || source == "":
		b, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return &artex.Input{HTML: b}, nil
	case isURL(source):
		return deps.Fetcher.Fetch(deps.Ctx, source)
	default:
		b, err := os.ReadFile(source)
		if os.IsNotExist(err) {
			return nil, artex.Errorf(artex.ENOTFOUND, "file %s not found", source)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		return &artex.Input{HTML: b}, nil
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// writeResult prints res in format: indented JSON, plain title and text,
// or a Markdown document.
func writeResult(deps *Dependencies, w io.Writer, v any, res *artex.Result, format string) error {
	switch format {
	case "text":
		if res.Title != "" {
			fmt.Fprintf(w, "%s\n\n", res.Title)
		}
		fmt.Fprintln(w, res.Text)
		return nil
	case "markdown":
		doc, err := htmltomarkdown.Document(deps.Converter, res)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, doc)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}
}
