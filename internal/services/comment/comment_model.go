package comment

import (
	"strings"
	"time"

	"github.com/boardlyhq/boardly/internal/perrors"
)

type Comment struct {
	ID        int64     `db:"id" json:"id"`
	TaskID    int64     `db:"task_id" json:"task_id"`
	AuthorID  *int64    `db:"author_id" json:"author_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Response is the comment wire shape. Author is the writer's display
// name, not a user object.
type Response struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Author    string    `db:"author" json:"author"`
	Content   string    `db:"content" json:"content"`
}

// CreateCommentRequest captures payload for creating a comment
type CreateCommentRequest struct {
	Content string `json:"content"`
}

func (r *CreateCommentRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return perrors.NewFieldError("content", "Content cannot be empty.")
	}

	return nil
}
