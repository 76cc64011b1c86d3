package main

import (
	"fmt"

	"github.com/fwojciec/artex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := artex.ArticleFilter{Limit: c.Limit, Offset: c.Offset}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'artex batch' to add some.")
		return nil
	}

	for _, a := range articles {
		title := a.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", a.ID, a.ExtractedAt.Format("2006-01-02 15:04"), title, a.URL)
	}

	return nil
}
