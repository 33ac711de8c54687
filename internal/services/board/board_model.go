package board

import (
	"strings"

	"github.com/boardlyhq/boardly/internal/perrors"
	"github.com/boardlyhq/boardly/internal/services/user"
)

// AccessLevel is the result of the single authorization predicate all
// board, task and comment operations consume.
type AccessLevel int

const (
	AccessNone AccessLevel = iota
	AccessMember
	AccessOwner
)

// ResolveAccess computes the caller's access level from a board's owner
// and the caller's membership row.
func ResolveAccess(ownerID int64, isMember bool, userID int64) AccessLevel {
	switch {
	case ownerID == userID:
		return AccessOwner
	case isMember:
		return AccessMember
	default:
		return AccessNone
	}
}

type Board struct {
	ID      int64  `db:"id" json:"id"`
	Title   string `db:"title" json:"title"`
	OwnerID int64  `db:"owner_id" json:"owner_id"`
}

// Summary is the list/create response shape, annotated with counts.
type Summary struct {
	ID                 int64  `db:"id" json:"id"`
	Title              string `db:"title" json:"title"`
	MemberCount        int    `db:"member_count" json:"member_count"`
	TicketCount        int    `db:"ticket_count" json:"ticket_count"`
	TasksToDoCount     int    `db:"tasks_to_do_count" json:"tasks_to_do_count"`
	TasksHighPrioCount int    `db:"tasks_high_prio_count" json:"tasks_high_prio_count"`
	OwnerID            int64  `db:"owner_id" json:"owner_id"`
}

// BoardTask is a task nested inside a board detail response.
type BoardTask struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Status        string      `json:"status"`
	Priority      string      `json:"priority"`
	Assignee      *user.Brief `json:"assignee"`
	Reviewer      *user.Brief `json:"reviewer"`
	DueDate       *string     `json:"due_date"`
	CommentsCount int         `json:"comments_count"`
}

// Detail is the single-board response shape.
type Detail struct {
	ID      int64         `json:"id"`
	Title   string        `json:"title"`
	OwnerID int64         `json:"owner_id"`
	Members []*user.Brief `json:"members"`
	Tasks   []*BoardTask  `json:"tasks"`
}

// Updated is the PATCH response shape.
type Updated struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	OwnerData   *user.Brief   `json:"owner_data"`
	MembersData []*user.Brief `json:"members_data"`
}

// CreateBoardRequest captures payload for creating a board
type CreateBoardRequest struct {
	Title   string  `json:"title"`
	Members []int64 `json:"members"`
}

func (r *CreateBoardRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return perrors.NewFieldError("title", "This field is required.")
	}

	return nil
}

// UpdateBoardRequest captures payload for a partial board update. A nil
// Members slice leaves membership untouched; a non-nil slice replaces it.
type UpdateBoardRequest struct {
	Title   *string  `json:"title"`
	Members *[]int64 `json:"members"`
}

// dedupeIDs keeps first occurrences, preserving order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
