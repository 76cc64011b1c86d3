package main

import (
	"fmt"

	"github.com/fwojciec/artex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return artex.Errorf(artex.EINVALID, "use --force to confirm deletion")
	}

	article, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if artex.ErrorCode(err) == artex.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'artex list' to see stored articles.\n", c.ID)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}

	if err := deps.Articles.DeleteArticle(deps.Ctx, article.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted article %s (%s)\n", article.ID, article.URL)
	return nil
}
