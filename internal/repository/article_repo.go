package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fashion-digest/internal/database"
	"github.com/fashion-digest/internal/models"
)

const articleColumns = `id, title, subtitle, author, body, date, img_url`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// queryRower is satisfied by both *sql.DB and *sql.Tx
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Create inserts a new article and stores the generated ID on it
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	return insertArticle(ctx, r.db, article)
}

func insertArticle(ctx context.Context, q queryRower, article *models.Article) error {
	query := `
		INSERT INTO articles (title, subtitle, author, body, date, img_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := q.QueryRowContext(ctx, query,
		article.Title, article.Subtitle, article.Author,
		article.Body, article.Date, article.ImgURL,
	).Scan(&article.ID)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("article %q: %w", article.Title, models.ErrDuplicateTitle)
	}
	return err
}

// GetByID retrieves an article by ID; a missing row yields (nil, nil)
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	var article models.Article
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Subtitle, &article.Author,
		&article.Body, &article.Date, &article.ImgURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// List returns every article ordered by ID
func (r *articleRepo) List(ctx context.Context) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		var article models.Article
		if err := rows.Scan(
			&article.ID, &article.Title, &article.Subtitle, &article.Author,
			&article.Body, &article.Date, &article.ImgURL,
		); err != nil {
			return nil, err
		}
		articles = append(articles, &article)
	}
	return articles, rows.Err()
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}
