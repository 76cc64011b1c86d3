package artex

import (
	"context"
	"time"
)

// Article is a stored extraction result.
type Article struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Engine      string    `json:"engine"`
	ContentHash string    `json:"contentHash"`
	Result      *Result   `json:"result"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.Result == nil {
		return Errorf(EINVALID, "article result required")
	}
	return nil
}

// ArticleService represents a service for managing stored articles.
type ArticleService interface {
	// CreateArticle stores a new article. The ID and extraction time are
	// generated, as is the content hash when empty.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter, newest first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID          *string `json:"id"`
	URL         *string `json:"url"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
