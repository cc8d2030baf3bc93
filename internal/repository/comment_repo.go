package repository

import (
	"context"
	"fmt"

	"github.com/fashion-digest/internal/database"
	"github.com/fashion-digest/internal/models"
)

// commentTable maps a comment kind to its table and foreign key column
type commentTable struct {
	name      string
	parentCol string
}

var commentTables = map[models.CommentKind]commentTable{
	models.CommentKindArticle: {name: "art_comments", parentCol: "article_id"},
	models.CommentKindVideo:   {name: "vid_comments", parentCol: "video_id"},
}

func tableFor(kind models.CommentKind) (commentTable, error) {
	t, ok := commentTables[kind]
	if !ok {
		return commentTable{}, fmt.Errorf("unknown comment kind %q", kind)
	}
	return t, nil
}

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment. A parent that no longer exists is
// reported as models.ErrNotFound.
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	t, err := tableFor(comment.Kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (text, %s) VALUES ($1, $2) RETURNING id`, t.name, t.parentCol)
	err = r.db.QueryRowContext(ctx, query, comment.Text, comment.ParentID).Scan(&comment.ID)
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("%s %d: %w", comment.Kind, comment.ParentID, models.ErrNotFound)
	}
	return err
}

// ListByParent returns the comments of one article or video ordered by ID
func (r *commentRepo) ListByParent(ctx context.Context, kind models.CommentKind, parentID int64) ([]*models.Comment, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, %[2]s, text FROM %[1]s WHERE %[2]s = $1 ORDER BY id`, t.name, t.parentCol)
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		comment := models.Comment{Kind: kind}
		if err := rows.Scan(&comment.ID, &comment.ParentID, &comment.Text); err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

// Count returns the total number of comments of the given kind
func (r *commentRepo) Count(ctx context.Context, kind models.CommentKind) (int, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.name).Scan(&count)
	return count, err
}
