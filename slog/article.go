package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/artex"
)

// Ensure LoggingArticleService implements artex.ArticleService.
var _ artex.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService with debug logging.
type LoggingArticleService struct {
	next   artex.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next artex.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

// CreateArticle delegates to the wrapped service and logs the operation.
func (s *LoggingArticleService) CreateArticle(ctx context.Context, article *artex.Article) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create article",
			"id", article.ID,
			"url", article.URL,
			"hash", article.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateArticle(ctx, article)
}

// FindArticleByID delegates to the wrapped service and logs the operation.
func (s *LoggingArticleService) FindArticleByID(ctx context.Context, id string) (article *artex.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find article",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticleByID(ctx, id)
}

// FindArticles delegates to the wrapped service and logs the operation.
func (s *LoggingArticleService) FindArticles(ctx context.Context, filter artex.ArticleFilter) (articles []*artex.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find articles",
			"count", len(articles),
			"limit", filter.Limit,
			"offset", filter.Offset,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticles(ctx, filter)
}

// DeleteArticle delegates to the wrapped service and logs the operation.
func (s *LoggingArticleService) DeleteArticle(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete article",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteArticle(ctx, id)
}
