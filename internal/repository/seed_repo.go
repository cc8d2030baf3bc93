package repository

import (
	"context"
	"fmt"

	"github.com/fashion-digest/internal/database"
	"github.com/fashion-digest/internal/models"
)

// seedRepo is the concrete implementation of SeedRepository
type seedRepo struct {
	db *database.DB
}

// NewSeedRepo creates a new seed repository
func NewSeedRepo(db *database.DB) SeedRepository {
	return &seedRepo{db: db}
}

// InsertContent inserts all articles and videos in a single transaction.
// Any failure, including a duplicate title, rolls back every row.
func (r *seedRepo) InsertContent(ctx context.Context, articles []*models.Article, videos []*models.Video) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, article := range articles {
		if err := insertArticle(ctx, tx, article); err != nil {
			return fmt.Errorf("failed to insert article: %w", err)
		}
	}

	for _, video := range videos {
		if err := insertVideo(ctx, tx, video); err != nil {
			return fmt.Errorf("failed to insert video: %w", err)
		}
	}

	return tx.Commit()
}
