package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/artex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ artex.ArticleService = (*ArticleService)(nil)

// ArticleService implements artex.ArticleService using SQLite. The full
// Result is stored as JSON next to the columns used for lookups.
type ArticleService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db, Now: time.Now}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	h := xxhash.Sum64String(content)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

const articleColumns = "id, url, title, engine, content_hash, result, extracted_at"

// CreateArticle stores a new article.
func (s *ArticleService) CreateArticle(ctx context.Context, article *artex.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	result, err := json.Marshal(article.Result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	article.ID = uuid.New().String()
	article.ExtractedAt = s.Now().UTC()
	if article.ContentHash == "" {
		article.ContentHash = hashContent(article.Result.Text)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, article.ID, article.URL, article.Title, article.Engine, article.ContentHash,
		string(result), formatTime(article.ExtractedAt))

	return err
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*artex.Article, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = ?", id)
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, artex.Errorf(artex.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter artex.ArticleFilter) ([]*artex.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY extracted_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*artex.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return artex.Errorf(artex.ENOTFOUND, "article not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*artex.Article, error) {
	var article artex.Article
	var result, extractedAt string

	if err := row.Scan(&article.ID, &article.URL, &article.Title, &article.Engine,
		&article.ContentHash, &result, &extractedAt); err != nil {
		return nil, err
	}

	article.Result = artex.NewResult()
	if err := json.Unmarshal([]byte(result), article.Result); err != nil {
		return nil, fmt.Errorf("failed to decode result of article %s: %w", article.ID, err)
	}

	var err error
	article.ExtractedAt, err = parseTime(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}

	return &article, nil
}
