package main

import (
	"fmt"

	"github.com/fwojciec/artex"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	extractor, err := deps.Extractor(c.Engine)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}

	in, err := readInput(deps, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}
	if c.URL != "" {
		in.URL = c.URL
	}
	if c.Lang != "" {
		in.Language = c.Lang
	}
	if c.Encoding != "" {
		in.Encoding = c.Encoding
	}

	res, err := extractor.Extract(in)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}
	if !c.Terms {
		res.TermScores = nil
	}

	return writeResult(deps, deps.Stdout, res, res, c.Format)
}
