package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fashion-digest/internal/models"
	"github.com/fashion-digest/internal/repository"
)

// Verify interface compliance
var (
	_ repository.ArticleRepository = (*MockArticleRepository)(nil)
	_ repository.VideoRepository   = (*MockVideoRepository)(nil)
	_ repository.CommentRepository = (*MockCommentRepository)(nil)
	_ repository.SeedRepository    = (*MockSeedRepository)(nil)
)

// MockArticleRepository is an in-memory ArticleRepository with
// auto-increment IDs and title uniqueness
type MockArticleRepository struct {
	mu       sync.Mutex
	Articles map[int64]*models.Article
	nextID   int64
	Err      error
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[int64]*models.Article), nextID: 1}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.Articles {
		if existing.Title == article.Title {
			return fmt.Errorf("article %q: %w", article.Title, models.ErrDuplicateTitle)
		}
	}
	article.ID = m.nextID
	m.nextID++
	stored := *article
	m.Articles[article.ID] = &stored
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Articles[id], nil
}

func (m *MockArticleRepository) List(ctx context.Context) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	articles := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		articles = append(articles, a)
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].ID < articles[j].ID })
	return articles, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Articles), m.Err
}

// MockVideoRepository is an in-memory VideoRepository
type MockVideoRepository struct {
	mu     sync.Mutex
	Videos map[int64]*models.Video
	nextID int64
	Err    error
}

func NewMockVideoRepository() *MockVideoRepository {
	return &MockVideoRepository{Videos: make(map[int64]*models.Video), nextID: 1}
}

func (m *MockVideoRepository) Create(ctx context.Context, video *models.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.Videos {
		if existing.Title == video.Title {
			return fmt.Errorf("video %q: %w", video.Title, models.ErrDuplicateTitle)
		}
	}
	video.ID = m.nextID
	m.nextID++
	stored := *video
	m.Videos[video.ID] = &stored
	return nil
}

func (m *MockVideoRepository) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Videos[id], nil
}

func (m *MockVideoRepository) List(ctx context.Context) ([]*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	videos := make([]*models.Video, 0, len(m.Videos))
	for _, v := range m.Videos {
		videos = append(videos, v)
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].ID < videos[j].ID })
	return videos, nil
}

func (m *MockVideoRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Videos), m.Err
}

// MockCommentRepository stores comments in insertion order and checks
// the parent against the article and video mocks like a foreign key would
type MockCommentRepository struct {
	mu       sync.Mutex
	Comments []*models.Comment
	Articles *MockArticleRepository
	Videos   *MockVideoRepository
	nextID   int64
	Err      error
}

func NewMockCommentRepository(articles *MockArticleRepository, videos *MockVideoRepository) *MockCommentRepository {
	return &MockCommentRepository{Articles: articles, Videos: videos, nextID: 1}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.Err != nil {
		return m.Err
	}
	if !m.parentExists(ctx, comment.Kind, comment.ParentID) {
		return fmt.Errorf("%s %d: %w", comment.Kind, comment.ParentID, models.ErrNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	comment.ID = m.nextID
	m.nextID++
	stored := *comment
	m.Comments = append(m.Comments, &stored)
	return nil
}

func (m *MockCommentRepository) parentExists(ctx context.Context, kind models.CommentKind, id int64) bool {
	switch kind {
	case models.CommentKindArticle:
		a, _ := m.Articles.GetByID(ctx, id)
		return a != nil
	case models.CommentKindVideo:
		v, _ := m.Videos.GetByID(ctx, id)
		return v != nil
	}
	return false
}

func (m *MockCommentRepository) ListByParent(ctx context.Context, kind models.CommentKind, parentID int64) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	comments := make([]*models.Comment, 0)
	for _, c := range m.Comments {
		if c.Kind == kind && c.ParentID == parentID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (m *MockCommentRepository) Count(ctx context.Context, kind models.CommentKind) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.Comments {
		if c.Kind == kind {
			count++
		}
	}
	return count, m.Err
}

// MockSeedRepository writes through to the article and video mocks and
// undoes every insert of a failed batch
type MockSeedRepository struct {
	Articles *MockArticleRepository
	Videos   *MockVideoRepository
	Calls    int
}

func NewMockSeedRepository(articles *MockArticleRepository, videos *MockVideoRepository) *MockSeedRepository {
	return &MockSeedRepository{Articles: articles, Videos: videos}
}

func (m *MockSeedRepository) InsertContent(ctx context.Context, articles []*models.Article, videos []*models.Video) error {
	m.Calls++
	var insertedArticles, insertedVideos []int64

	rollback := func() {
		m.Articles.mu.Lock()
		for _, id := range insertedArticles {
			delete(m.Articles.Articles, id)
		}
		m.Articles.mu.Unlock()
		m.Videos.mu.Lock()
		for _, id := range insertedVideos {
			delete(m.Videos.Videos, id)
		}
		m.Videos.mu.Unlock()
	}

	for _, a := range articles {
		if err := m.Articles.Create(ctx, a); err != nil {
			rollback()
			return fmt.Errorf("failed to insert article: %w", err)
		}
		insertedArticles = append(insertedArticles, a.ID)
	}
	for _, v := range videos {
		if err := m.Videos.Create(ctx, v); err != nil {
			rollback()
			return fmt.Errorf("failed to insert video: %w", err)
		}
		insertedVideos = append(insertedVideos, v.ID)
	}
	return nil
}

// NewMockRepositories wires a consistent set of in-memory repositories
func NewMockRepositories() (*repository.Repositories, *MockArticleRepository, *MockVideoRepository, *MockCommentRepository) {
	articles := NewMockArticleRepository()
	videos := NewMockVideoRepository()
	comments := NewMockCommentRepository(articles, videos)
	return &repository.Repositories{
		Article: articles,
		Video:   videos,
		Comment: comments,
		Seed:    NewMockSeedRepository(articles, videos),
	}, articles, videos, comments
}
