package service

import (
	"context"
	"fmt"

	"github.com/fashion-digest/internal/repository"
	"github.com/fashion-digest/internal/seed"
	"github.com/rs/zerolog"
)

// SeedResult reports how many rows a seed run inserted
type SeedResult struct {
	Articles int `json:"articles"`
	Videos   int `json:"videos"`
}

type seedService struct {
	repo repository.SeedRepository
	log  zerolog.Logger
}

func newSeedService(repo repository.SeedRepository, log zerolog.Logger) *seedService {
	return &seedService{
		repo: repo,
		log:  log.With().Str("service", "seed").Logger(),
	}
}

// Seed inserts the fixed sample content. It is not idempotent: running it
// again fails with models.ErrDuplicateTitle and writes nothing.
func (s *seedService) Seed(ctx context.Context) (*SeedResult, error) {
	content, err := seed.Load()
	if err != nil {
		return nil, err
	}

	if err := s.repo.InsertContent(ctx, content.Articles, content.Videos); err != nil {
		return nil, fmt.Errorf("failed to seed content: %w", err)
	}

	result := &SeedResult{Articles: len(content.Articles), Videos: len(content.Videos)}
	s.log.Info().
		Int("articles", result.Articles).
		Int("videos", result.Videos).
		Msg("Database seeded")

	return result, nil
}
