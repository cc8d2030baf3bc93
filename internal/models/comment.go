package models

// CommentKind identifies which content type a comment belongs to
type CommentKind string

const (
	CommentKindArticle CommentKind = "article"
	CommentKindVideo   CommentKind = "video"
)

// Comment is a reader comment on an article or a video. ParentID holds the
// owning row's ID; the parent itself is resolved by query, never embedded.
type Comment struct {
	ID       int64       `json:"id" db:"id"`
	Kind     CommentKind `json:"kind" db:"-"`
	ParentID int64       `json:"parent_id" db:"parent_id"`
	Text     string      `json:"text" db:"text"` // sanitized HTML
}

// MaxCommentLength is the maximum allowed length of a stored comment
const MaxCommentLength = 1000
