package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/boardlyhq/boardly/internal/perrors"
	"github.com/boardlyhq/boardly/internal/services/user"
)

var ErrBoardNotFound = errors.New("board not found")

// BoardRepo handles database operations for boards and their membership set
type BoardRepo struct {
	db *sqlx.DB
}

// NewBoardRepo creates a new board repository
func NewBoardRepo(db *sqlx.DB) *BoardRepo {
	return &BoardRepo{db: db}
}

const summaryColumns = `
    b.id, b.title, b.owner_id,
    (SELECT COUNT(*) FROM board_members m WHERE m.board_id = b.id) AS member_count,
    (SELECT COUNT(*) FROM tasks t WHERE t.board_id = b.id) AS ticket_count,
    (SELECT COUNT(*) FROM tasks t WHERE t.board_id = b.id AND t.status = 'to-do') AS tasks_to_do_count,
    (SELECT COUNT(*) FROM tasks t WHERE t.board_id = b.id AND t.priority = 'high') AS tasks_high_prio_count
`

// ListForUser retrieves boards the user owns or is a member of, with
// membership and task counts, ordered by id.
func (r *BoardRepo) ListForUser(ctx context.Context, userID int64) ([]*Summary, error) {
	query := `
        SELECT ` + summaryColumns + `
        FROM boards b
        WHERE b.owner_id = $1
           OR EXISTS (SELECT 1 FROM board_members m WHERE m.board_id = b.id AND m.user_id = $1)
        ORDER BY b.id
    `

	boards := []*Summary{}
	err := r.db.SelectContext(ctx, &boards, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	return boards, nil
}

// Create inserts a board and its member set in one transaction. Unknown
// member ids fail the whole operation.
func (r *BoardRepo) Create(ctx context.Context, ownerID int64, title string, memberIDs []int64) (*Summary, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := validateMemberIDs(ctx, tx, memberIDs); err != nil {
		return nil, err
	}

	var summary Summary
	err = tx.GetContext(ctx, &summary, `
        INSERT INTO boards (title, owner_id)
        VALUES ($1, $2)
        RETURNING id, title, owner_id, 0 AS member_count, 0 AS ticket_count, 0 AS tasks_to_do_count, 0 AS tasks_high_prio_count
    `, title, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	if err := replaceMembers(ctx, tx, summary.ID, memberIDs); err != nil {
		return nil, err
	}
	summary.MemberCount = len(memberIDs)

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &summary, nil
}

// Access reports the board's owner and whether the user is in its member
// set, in a single query. ErrBoardNotFound when the board is missing.
func (r *BoardRepo) Access(ctx context.Context, boardID, userID int64) (ownerID int64, isMember bool, err error) {
	query := `
        SELECT b.owner_id,
               EXISTS (SELECT 1 FROM board_members m WHERE m.board_id = b.id AND m.user_id = $2) AS is_member
        FROM boards b
        WHERE b.id = $1
    `

	row := r.db.QueryRowxContext(ctx, query, boardID, userID)
	if err := row.Scan(&ownerID, &isMember); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, ErrBoardNotFound
		}
		return 0, false, fmt.Errorf("failed to check board access: %w", err)
	}

	return ownerID, isMember, nil
}

type boardTaskRow struct {
	ID            int64          `db:"id"`
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

// Detail retrieves a board with its member briefs and nested tasks.
func (r *BoardRepo) Detail(ctx context.Context, boardID int64) (*Detail, error) {
	var b Board
	err := r.db.GetContext(ctx, &b, `SELECT id, title, owner_id FROM boards WHERE id = $1`, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	members, err := r.memberBriefs(ctx, r.db, boardID)
	if err != nil {
		return nil, err
	}

	rows := []*boardTaskRow{}
	err = r.db.SelectContext(ctx, &rows, `
        SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
               (SELECT COUNT(*) FROM comments c WHERE c.task_id = t.id) AS comments_count,
               a.id AS assignee_id, a.email AS assignee_email, a.full_name AS assignee_name,
               v.id AS reviewer_id, v.email AS reviewer_email, v.full_name AS reviewer_name
        FROM tasks t
        LEFT JOIN users a ON a.id = t.assignee_id
        LEFT JOIN users v ON v.id = t.reviewer_id
        WHERE t.board_id = $1
        ORDER BY t.id
    `, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list board tasks: %w", err)
	}

	tasks := make([]*BoardTask, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, &BoardTask{
			ID:            row.ID,
			Title:         row.Title,
			Description:   row.Description,
			Status:        row.Status,
			Priority:      row.Priority,
			Assignee:      briefFromNullable(row.AssigneeID, row.AssigneeEmail, row.AssigneeName),
			Reviewer:      briefFromNullable(row.ReviewerID, row.ReviewerEmail, row.ReviewerName),
			DueDate:       formatDate(row.DueDate),
			CommentsCount: row.CommentsCount,
		})
	}

	return &Detail{
		ID:      b.ID,
		Title:   b.Title,
		OwnerID: b.OwnerID,
		Members: members,
		Tasks:   tasks,
	}, nil
}

// Update applies a partial update: title and/or full member-set
// replacement, atomically.
func (r *BoardRepo) Update(ctx context.Context, boardID int64, req *UpdateBoardRequest) (*Updated, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if req.Title != nil {
		res, err := tx.ExecContext(ctx, `UPDATE boards SET title = $1 WHERE id = $2`, *req.Title, boardID)
		if err != nil {
			return nil, fmt.Errorf("failed to update board title: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, ErrBoardNotFound
		}
	}

	if req.Members != nil {
		memberIDs := dedupeIDs(*req.Members)
		if err := validateMemberIDs(ctx, tx, memberIDs); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM board_members WHERE board_id = $1`, boardID); err != nil {
			return nil, fmt.Errorf("failed to clear board members: %w", err)
		}
		if err := replaceMembers(ctx, tx, boardID, memberIDs); err != nil {
			return nil, err
		}
	}

	var updated struct {
		ID        int64  `db:"id"`
		Title     string `db:"title"`
		OwnerID   int64  `db:"owner_id"`
		OwnerMail string `db:"owner_email"`
		OwnerName string `db:"owner_name"`
	}
	err = tx.GetContext(ctx, &updated, `
        SELECT b.id, b.title, b.owner_id, u.email AS owner_email, u.full_name AS owner_name
        FROM boards b
        JOIN users u ON u.id = b.owner_id
        WHERE b.id = $1
    `, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	members, err := r.memberBriefs(ctx, tx, boardID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &Updated{
		ID:    updated.ID,
		Title: updated.Title,
		OwnerData: user.BriefFromParts(user.BriefParts{
			ID:       updated.OwnerID,
			Email:    updated.OwnerMail,
			Fullname: updated.OwnerName,
		}),
		MembersData: members,
	}, nil
}

// Delete removes a board; tasks and comments go with it via cascades.
func (r *BoardRepo) Delete(ctx context.Context, boardID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, boardID)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrBoardNotFound
	}

	return nil
}

func (r *BoardRepo) memberBriefs(ctx context.Context, q sqlx.QueryerContext, boardID int64) ([]*user.Brief, error) {
	rows := []*struct {
		ID       int64  `db:"id"`
		Email    string `db:"email"`
		FullName string `db:"full_name"`
	}{}
	err := sqlx.SelectContext(ctx, q, &rows, `
        SELECT u.id, u.email, u.full_name
        FROM users u
        JOIN board_members m ON m.user_id = u.id
        WHERE m.board_id = $1
        ORDER BY u.id
    `, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list board members: %w", err)
	}

	briefs := make([]*user.Brief, 0, len(rows))
	for _, row := range rows {
		briefs = append(briefs, user.BriefFromParts(user.BriefParts{
			ID:       row.ID,
			Email:    row.Email,
			Fullname: row.FullName,
		}))
	}

	return briefs, nil
}

// validateMemberIDs rejects ids that do not resolve to existing users.
func validateMemberIDs(ctx context.Context, tx *sqlx.Tx, memberIDs []int64) error {
	if len(memberIDs) == 0 {
		return nil
	}

	existing := []int64{}
	err := tx.SelectContext(ctx, &existing, `SELECT id FROM users WHERE id = ANY($1)`, pq.Array(memberIDs))
	if err != nil {
		return fmt.Errorf("failed to validate member ids: %w", err)
	}

	known := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}

	missing := []int64{}
	for _, id := range memberIDs {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return perrors.NewFieldError("members", fmt.Sprintf("Unknown user IDs: %v", missing))
	}

	return nil
}

func replaceMembers(ctx context.Context, tx *sqlx.Tx, boardID int64, memberIDs []int64) error {
	for _, id := range memberIDs {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO board_members (board_id, user_id)
            VALUES ($1, $2)
            ON CONFLICT DO NOTHING
        `, boardID, id)
		if err != nil {
			return fmt.Errorf("failed to add board member: %w", err)
		}
	}

	return nil
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

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	s := t.Format("2006-01-02")
	return &s
}
