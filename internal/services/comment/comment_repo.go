package comment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentRepo handles database operations for comments
type CommentRepo struct {
	db *sqlx.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *sqlx.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

const responseColumns = `
    c.id, c.created_at, c.content, COALESCE(u.full_name, '') AS author
`

// ListByTask retrieves a task's comments, oldest first. Ties on the
// timestamp are broken by id so the order is stable.
func (r *CommentRepo) ListByTask(ctx context.Context, taskID int64) ([]*Response, error) {
	comments := []*Response{}
	err := r.db.SelectContext(ctx, &comments, `
        SELECT `+responseColumns+`
        FROM comments c
        LEFT JOIN users u ON u.id = c.author_id
        WHERE c.task_id = $1
        ORDER BY c.created_at, c.id
    `, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// Create inserts a comment authored by the caller.
func (r *CommentRepo) Create(ctx context.Context, taskID, authorID int64, content string) (*Response, error) {
	var comment Response
	err := r.db.GetContext(ctx, &comment, `
        WITH inserted AS (
            INSERT INTO comments (task_id, author_id, content)
            VALUES ($1, $2, $3)
            RETURNING id, created_at, content, author_id
        )
        SELECT c.id, c.created_at, c.content, COALESCE(u.full_name, '') AS author
        FROM inserted c
        LEFT JOIN users u ON u.id = c.author_id
    `, taskID, authorID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &comment, nil
}

// Get retrieves a comment scoped to its task, so a valid comment id
// under the wrong task still reads as missing.
func (r *CommentRepo) Get(ctx context.Context, taskID, commentID int64) (*Response, error) {
	var comment Response
	err := r.db.GetContext(ctx, &comment, `
        SELECT `+responseColumns+`
        FROM comments c
        LEFT JOIN users u ON u.id = c.author_id
        WHERE c.id = $1 AND c.task_id = $2
    `, commentID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// Delete removes a comment scoped to its task.
func (r *CommentRepo) Delete(ctx context.Context, taskID, commentID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1 AND task_id = $2`, commentID, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrCommentNotFound
	}

	return nil
}
