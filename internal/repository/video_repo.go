package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fashion-digest/internal/database"
	"github.com/fashion-digest/internal/models"
)

const videoColumns = `id, title, author, thumbnail, vid_url`

// videoRepo is the concrete implementation of VideoRepository
type videoRepo struct {
	db *database.DB
}

// NewVideoRepo creates a new video repository
func NewVideoRepo(db *database.DB) VideoRepository {
	return &videoRepo{db: db}
}

// Create inserts a new video and stores the generated ID on it
func (r *videoRepo) Create(ctx context.Context, video *models.Video) error {
	return insertVideo(ctx, r.db, video)
}

func insertVideo(ctx context.Context, q queryRower, video *models.Video) error {
	query := `
		INSERT INTO videos (title, author, thumbnail, vid_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := q.QueryRowContext(ctx, query,
		video.Title, video.Author, video.Thumbnail, video.VidURL,
	).Scan(&video.ID)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("video %q: %w", video.Title, models.ErrDuplicateTitle)
	}
	return err
}

// GetByID retrieves a video by ID; a missing row yields (nil, nil)
func (r *videoRepo) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	var video models.Video
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&video.ID, &video.Title, &video.Author, &video.Thumbnail, &video.VidURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &video, nil
}

// List returns every video ordered by ID
func (r *videoRepo) List(ctx context.Context) ([]*models.Video, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := make([]*models.Video, 0)
	for rows.Next() {
		var video models.Video
		if err := rows.Scan(
			&video.ID, &video.Title, &video.Author, &video.Thumbnail, &video.VidURL,
		); err != nil {
			return nil, err
		}
		videos = append(videos, &video)
	}
	return videos, rows.Err()
}

// Count returns the total number of videos
func (r *videoRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM videos").Scan(&count)
	return count, err
}
