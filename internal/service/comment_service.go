package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fashion-digest/internal/models"
	"github.com/fashion-digest/internal/repository"
	"github.com/rs/zerolog"
)

// ErrEmptyComment is returned when AddComment is called without text
var ErrEmptyComment = errors.New("comment text is empty")

type commentService struct {
	comments repository.CommentRepository
	log      zerolog.Logger
}

func newCommentService(comments repository.CommentRepository, log zerolog.Logger) *commentService {
	return &commentService{
		comments: comments,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// AddComment stores already validated comment text against its parent.
// A parent that does not exist yields models.ErrNotFound.
func (s *commentService) AddComment(ctx context.Context, kind models.CommentKind, parentID int64, text string) (*models.Comment, error) {
	if text == "" {
		return nil, ErrEmptyComment
	}

	comment := &models.Comment{Kind: kind, ParentID: parentID, Text: text}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to add %s comment: %w", kind, err)
	}

	s.log.Info().
		Str("kind", string(kind)).
		Int64("parent_id", parentID).
		Int64("comment_id", comment.ID).
		Msg("Comment created")

	return comment, nil
}
