package service

import (
	"context"

	"github.com/fashion-digest/internal/models"
	"github.com/fashion-digest/internal/repository"
	"github.com/rs/zerolog"
)

// ContentService defines read operations over articles and videos
type ContentService interface {
	ListArticles(ctx context.Context) ([]*models.Article, error)
	ListVideos(ctx context.Context) ([]*models.Video, error)
	GetArticle(ctx context.Context, id int64) (*models.ArticleDetail, error)
	GetVideo(ctx context.Context, id int64) (*models.VideoDetail, error)
	Featured(ctx context.Context) (*Featured, error)
	Stats(ctx context.Context) (*ContentStats, error)
}

// CommentService defines comment creation
type CommentService interface {
	AddComment(ctx context.Context, kind models.CommentKind, parentID int64, text string) (*models.Comment, error)
}

// SeedService populates the database with the demonstration content
type SeedService interface {
	Seed(ctx context.Context) (*SeedResult, error)
}

// Services holds all service interfaces
type Services struct {
	Content ContentService
	Comment CommentService
	Seed    SeedService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Content: newContentService(repos, log),
		Comment: newCommentService(repos.Comment, log),
		Seed:    newSeedService(repos.Seed, log),
	}
}
