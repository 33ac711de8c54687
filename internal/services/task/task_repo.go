package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/boardlyhq/boardly/internal/perrors"
	"github.com/boardlyhq/boardly/internal/services/user"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepo handles database operations for tasks
type TaskRepo struct {
	db *sqlx.DB
}

// NewTaskRepo creates a new task repository
func NewTaskRepo(db *sqlx.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

const detailQuery = `
    SELECT t.id, t.board_id, t.title, t.description, t.status, t.priority, t.due_date,
           (SELECT COUNT(*) FROM comments c WHERE c.task_id = t.id) AS comments_count,
           a.id AS assignee_id, a.email AS assignee_email, a.full_name AS assignee_name,
           v.id AS reviewer_id, v.email AS reviewer_email, v.full_name AS reviewer_name
    FROM tasks t
    LEFT JOIN users a ON a.id = t.assignee_id
    LEFT JOIN users v ON v.id = t.reviewer_id
`

type taskRow struct {
	ID            int64          `db:"id"`
	BoardID       int64          `db:"board_id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Status        string         `db:"status"`
	Priority      string         `db:"priority"`
	DueDate       *time.Time     `db:"due_date"`
	CommentsCount int            `db:"comments_count"`
	AssigneeID    sql.NullInt64  `db:"assignee_id"`
	AssigneeEmail sql.NullString `db:"assignee_email"`
	AssigneeName  sql.NullString `db:"assignee_name"`
	ReviewerID    sql.NullInt64  `db:"reviewer_id"`
	ReviewerEmail sql.NullString `db:"reviewer_email"`
	ReviewerName  sql.NullString `db:"reviewer_name"`
}

func (row *taskRow) detail() *Detail {
	return &Detail{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description,
		Status:        row.Status,
		Priority:      row.Priority,
		Assignee:      briefFromNullable(row.AssigneeID, row.AssigneeEmail, row.AssigneeName),
		Reviewer:      briefFromNullable(row.ReviewerID, row.ReviewerEmail, row.ReviewerName),
		DueDate:       dateFromTime(row.DueDate),
		CommentsCount: row.CommentsCount,
	}
}

func (row *taskRow) withBoard() *WithBoard {
	d := row.detail()
	return &WithBoard{
		ID:            d.ID,
		Board:         row.BoardID,
		Title:         d.Title,
		Description:   d.Description,
		Status:        d.Status,
		Priority:      d.Priority,
		Assignee:      d.Assignee,
		Reviewer:      d.Reviewer,
		DueDate:       d.DueDate,
		CommentsCount: d.CommentsCount,
	}
}

// BoardID resolves the owning board of a task.
func (r *TaskRepo) BoardID(ctx context.Context, taskID int64) (int64, error) {
	var boardID int64
	err := r.db.GetContext(ctx, &boardID, `SELECT board_id FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrTaskNotFound
		}
		return 0, fmt.Errorf("failed to get task: %w", err)
	}

	return boardID, nil
}

// Get retrieves a task with briefs and comment count.
func (r *TaskRepo) Get(ctx context.Context, taskID int64) (*Detail, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row, detailQuery+` WHERE t.id = $1`, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return row.detail(), nil
}

// Create inserts a task after validating assignee/reviewer membership
// inside the same transaction, closing the check/use gap.
func (r *TaskRepo) Create(ctx context.Context, req *CreateTaskRequest, creatorID int64) (*WithBoard, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	assigneeID, err := resolveUserRef(ctx, tx, req.Board, req.AssigneeID, "assignee_id")
	if err != nil {
		return nil, err
	}
	reviewerID, err := resolveUserRef(ctx, tx, req.Board, req.ReviewerID, "reviewer_id")
	if err != nil {
		return nil, err
	}

	var dueDate *time.Time
	if req.DueDate.Present && !req.DueDate.Clear {
		dueDate = &req.DueDate.Val.Time
	}

	var taskID int64
	err = tx.GetContext(ctx, &taskID, `
        INSERT INTO tasks (board_id, title, description, status, priority, assignee_id, reviewer_id, due_date, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `, req.Board, req.Title, req.Description, req.Status, req.Priority, assigneeID, reviewerID, dueDate, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	var row taskRow
	if err := tx.GetContext(ctx, &row, detailQuery+` WHERE t.id = $1`, taskID); err != nil {
		return nil, fmt.Errorf("failed to get created task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return row.withBoard(), nil
}

// Update applies a partial update. Assignee/reviewer changes are
// validated against board membership within the transaction.
func (r *TaskRepo) Update(ctx context.Context, taskID int64, req *UpdateTaskRequest) (*Detail, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var boardID int64
	err = tx.GetContext(ctx, &boardID, `SELECT board_id FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	setParts := []string{}
	args := []interface{}{}

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", len(args)+1))
		args = append(args, *req.Title)
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", len(args)+1))
		args = append(args, *req.Description)
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *req.Status)
	}
	if req.Priority != nil {
		setParts = append(setParts, fmt.Sprintf("priority = $%d", len(args)+1))
		args = append(args, *req.Priority)
	}
	if req.AssigneeID.Present {
		id, err := resolveUserRef(ctx, tx, boardID, req.AssigneeID, "assignee_id")
		if err != nil {
			return nil, err
		}
		setParts = append(setParts, fmt.Sprintf("assignee_id = $%d", len(args)+1))
		args = append(args, id)
	}
	if req.ReviewerID.Present {
		id, err := resolveUserRef(ctx, tx, boardID, req.ReviewerID, "reviewer_id")
		if err != nil {
			return nil, err
		}
		setParts = append(setParts, fmt.Sprintf("reviewer_id = $%d", len(args)+1))
		args = append(args, id)
	}
	if req.DueDate.Present {
		var dueDate *time.Time
		if !req.DueDate.Clear {
			dueDate = &req.DueDate.Val.Time
		}
		setParts = append(setParts, fmt.Sprintf("due_date = $%d", len(args)+1))
		args = append(args, dueDate)
	}

	if len(setParts) > 0 {
		args = append(args, taskID)
		query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d`, strings.Join(setParts, ", "), len(args))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	var row taskRow
	if err := tx.GetContext(ctx, &row, detailQuery+` WHERE t.id = $1`, taskID); err != nil {
		return nil, fmt.Errorf("failed to get updated task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return row.detail(), nil
}

// Delete removes a task; its comments go with it via the cascade.
func (r *TaskRepo) Delete(ctx context.Context, taskID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// ListByReviewer retrieves tasks where the user is the reviewer, ordered by id.
func (r *TaskRepo) ListByReviewer(ctx context.Context, userID int64) ([]*WithBoard, error) {
	return r.listByRef(ctx, "reviewer_id", userID)
}

// ListByAssignee retrieves tasks where the user is the assignee, ordered by id.
func (r *TaskRepo) ListByAssignee(ctx context.Context, userID int64) ([]*WithBoard, error) {
	return r.listByRef(ctx, "assignee_id", userID)
}

func (r *TaskRepo) listByRef(ctx context.Context, column string, userID int64) ([]*WithBoard, error) {
	rows := []*taskRow{}
	query := detailQuery + fmt.Sprintf(` WHERE t.%s = $1 ORDER BY t.id`, column)
	err := r.db.SelectContext(ctx, &rows, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*WithBoard, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.withBoard())
	}

	return tasks, nil
}

// resolveUserRef turns an OptionalUserID into a nullable column value,
// enforcing that a set reference is an existing user who is the board's
// owner or one of its members.
func resolveUserRef(ctx context.Context, tx *sqlx.Tx, boardID int64, ref OptionalUserID, field string) (*int64, error) {
	if !ref.Present || ref.Clear {
		return nil, nil
	}

	var check struct {
		UserExists bool `db:"user_exists"`
		IsMember   bool `db:"is_member"`
	}
	err := tx.GetContext(ctx, &check, `
        SELECT EXISTS (SELECT 1 FROM users WHERE id = $1) AS user_exists,
               EXISTS (SELECT 1 FROM boards b WHERE b.id = $2 AND b.owner_id = $1)
               OR EXISTS (SELECT 1 FROM board_members m WHERE m.board_id = $2 AND m.user_id = $1) AS is_member
    `, ref.ID, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate %s: %w", field, err)
	}

	if !check.UserExists {
		return nil, perrors.NewFieldError(field, "User not found.")
	}
	if !check.IsMember {
		return nil, perrors.NewFieldError(field, "User is not a member of this board.")
	}

	id := ref.ID
	return &id, nil
}

func briefFromNullable(id sql.NullInt64, email, name sql.NullString) *user.Brief {
	if !id.Valid {
		return nil
	}

	return user.BriefFromParts(user.BriefParts{
		ID:       id.Int64,
		Email:    email.String,
		Fullname: name.String,
	})
}

func dateFromTime(t *time.Time) *Date {
	if t == nil {
		return nil
	}

	return &Date{Time: *t}
}
