package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/batch"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	in, err := readInput(deps, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}
	if c.URL != "" {
		in.URL = c.URL
	}

	comparisons := batch.Compare(in, deps.Engines)

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENGINE\tWORDS\tPARAGRAPHS\tTITLE")
	for _, cmp := range comparisons {
		if cmp.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\terror: %s\n", cmp.Engine, artex.ErrorMessage(cmp.Err))
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", cmp.Engine, cmp.Words, cmp.Paragraphs, cmp.Result.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(comparisons) == 0 {
		return nil
	}
	base := comparisons[0]
	for _, cmp := range comparisons[1:] {
		if cmp.Err == nil && batch.ContentDiffers(base.Result, cmp.Result) {
			fmt.Fprintf(deps.Stdout, "\nnote: %s found much more text than %s\n", cmp.Engine, base.Engine)
		}
	}
	return nil
}
