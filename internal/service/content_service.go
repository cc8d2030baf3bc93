package service

import (
	"context"
	"fmt"

	"github.com/fashion-digest/internal/models"
	"github.com/fashion-digest/internal/repository"
	"github.com/rs/zerolog"
)

// Featured is the content shown on the home page
type Featured struct {
	Article *models.Article
	Video   *models.Video
}

// ContentStats holds row counts per table
type ContentStats struct {
	Articles        int `json:"articles"`
	Videos          int `json:"videos"`
	ArticleComments int `json:"article_comments"`
	VideoComments   int `json:"video_comments"`
}

type contentService struct {
	articles repository.ArticleRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	log      zerolog.Logger
}

func newContentService(repos *repository.Repositories, log zerolog.Logger) *contentService {
	return &contentService{
		articles: repos.Article,
		videos:   repos.Video,
		comments: repos.Comment,
		log:      log.With().Str("service", "content").Logger(),
	}
}

// ListArticles returns every article in ascending ID order
func (s *contentService) ListArticles(ctx context.Context) ([]*models.Article, error) {
	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

// ListVideos returns every video in ascending ID order
func (s *contentService) ListVideos(ctx context.Context) ([]*models.Video, error) {
	videos, err := s.videos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

// GetArticle loads an article and its comments.
// Returns models.ErrNotFound when the article does not exist.
func (s *contentService) GetArticle(ctx context.Context, id int64) (*models.ArticleDetail, error) {
	article, err := s.getArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByParent(ctx, models.CommentKindArticle, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments for article %d: %w", id, err)
	}

	return &models.ArticleDetail{Article: article, Comments: comments}, nil
}

// GetVideo loads a video and its comments.
// Returns models.ErrNotFound when the video does not exist.
func (s *contentService) GetVideo(ctx context.Context, id int64) (*models.VideoDetail, error) {
	video, err := s.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByParent(ctx, models.CommentKindVideo, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments for video %d: %w", id, err)
	}

	return &models.VideoDetail{Video: video, Comments: comments}, nil
}

// Featured loads the home page article and video. Both must exist, so
// before the database is seeded this fails with models.ErrNotFound.
func (s *contentService) Featured(ctx context.Context) (*Featured, error) {
	article, err := s.getArticle(ctx, models.FeaturedArticleID)
	if err != nil {
		return nil, err
	}
	video, err := s.getVideo(ctx, models.FeaturedVideoID)
	if err != nil {
		return nil, err
	}
	return &Featured{Article: article, Video: video}, nil
}

// Stats counts the rows of every content table
func (s *contentService) Stats(ctx context.Context) (*ContentStats, error) {
	var stats ContentStats
	var err error

	if stats.Articles, err = s.articles.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}
	if stats.Videos, err = s.videos.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}
	if stats.ArticleComments, err = s.comments.Count(ctx, models.CommentKindArticle); err != nil {
		return nil, fmt.Errorf("failed to count article comments: %w", err)
	}
	if stats.VideoComments, err = s.comments.Count(ctx, models.CommentKindVideo); err != nil {
		return nil, fmt.Errorf("failed to count video comments: %w", err)
	}
	return &stats, nil
}

func (s *contentService) getArticle(ctx context.Context, id int64) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}
	if article == nil {
		return nil, fmt.Errorf("article %d: %w", id, models.ErrNotFound)
	}
	return article, nil
}

func (s *contentService) getVideo(ctx context.Context, id int64) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get video %d: %w", id, err)
	}
	if video == nil {
		return nil, fmt.Errorf("video %d: %w", id, models.ErrNotFound)
	}
	return video, nil
}
