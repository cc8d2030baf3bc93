package repository

import (
	"context"

	"github.com/fashion-digest/internal/database"
	"github.com/fashion-digest/internal/models"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context) ([]*models.Article, error)
	Count(ctx context.Context) (int, error)
}

// VideoRepository defines the interface for video data operations
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id int64) (*models.Video, error)
	List(ctx context.Context) ([]*models.Video, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations.
// The comment kind selects between the article and video comment tables.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByParent(ctx context.Context, kind models.CommentKind, parentID int64) ([]*models.Comment, error)
	Count(ctx context.Context, kind models.CommentKind) (int, error)
}

// SeedRepository writes a batch of content rows atomically
type SeedRepository interface {
	InsertContent(ctx context.Context, articles []*models.Article, videos []*models.Video) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Video   VideoRepository
	Comment CommentRepository
	Seed    SeedRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
		Video:   NewVideoRepo(db),
		Comment: NewCommentRepo(db),
		Seed:    NewSeedRepo(db),
	}
}
