package main

import (
	"fmt"

	"github.com/fwojciec/artex"
)

// Run executes the show command. URLs resolve to the most recent article
// extracted from them.
func (c *ShowCmd) Run(deps *Dependencies) error {
	article, err := c.find(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}
	return writeResult(deps, deps.Stdout, article, article.Result, c.Format)
}

func (c *ShowCmd) find(deps *Dependencies) (*artex.Article, error) {
	if !isURL(c.Ref) {
		return deps.Articles.FindArticleByID(deps.Ctx, c.Ref)
	}
	articles, err := deps.Articles.FindArticles(deps.Ctx, artex.ArticleFilter{URL: &c.Ref, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, artex.Errorf(artex.ENOTFOUND, "no article for %s. Use 'artex list' to see stored articles.", c.Ref)
	}
	return articles[0], nil
}
