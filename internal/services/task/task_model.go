package task

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/boardlyhq/boardly/internal/perrors"
	"github.com/boardlyhq/boardly/internal/services/user"
)

const (
	StatusToDo       = "to-do"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusDone       = "done"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Date is a day-granularity timestamp serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}

	d.Time = t
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src any) error {
	t, ok := src.(time.Time)
	if !ok {
		return fmt.Errorf("cannot scan %T into Date", src)
	}

	d.Time = t
	return nil
}

// OptionalUserID models the assignee_id/reviewer_id wire contract: absent
// leaves the reference untouched, null/""/false clears it, a user id sets
// it, and anything else is a validation failure reported per field.
type OptionalUserID struct {
	Present bool
	Clear   bool
	Invalid bool
	ID      int64
}

func (o *OptionalUserID) UnmarshalJSON(data []byte) error {
	o.Present = true
	data = bytes.TrimSpace(data)

	switch string(data) {
	case "null", `""`, "false":
		o.Clear = true
		return nil
	}

	raw := strings.Trim(string(data), `"`)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		o.Invalid = true
		return nil
	}

	o.ID = id
	return nil
}

// Validate reports the field-scoped error for an unusable value.
func (o *OptionalUserID) Validate(field string) error {
	if o.Present && o.Invalid {
		return perrors.NewFieldError(field, "A valid integer is required.")
	}

	return nil
}

// OptionalDate distinguishes an absent due_date from an explicit null.
type OptionalDate struct {
	Present bool
	Clear   bool
	Val     Date
}

func (o *OptionalDate) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(bytes.TrimSpace(data)) == "null" {
		o.Clear = true
		return nil
	}

	return o.Val.UnmarshalJSON(data)
}

// Detail is the single-task response shape.
type Detail struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Status        string      `json:"status"`
	Priority      string      `json:"priority"`
	Assignee      *user.Brief `json:"assignee"`
	Reviewer      *user.Brief `json:"reviewer"`
	DueDate       *Date       `json:"due_date"`
	CommentsCount int         `json:"comments_count"`
}

// WithBoard adds the owning board's id, used by create responses and the
// reviewing/assigned-to-me lists.
type WithBoard struct {
	ID            int64       `json:"id"`
	Board         int64       `json:"board"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Status        string      `json:"status"`
	Priority      string      `json:"priority"`
	Assignee      *user.Brief `json:"assignee"`
	Reviewer      *user.Brief `json:"reviewer"`
	DueDate       *Date       `json:"due_date"`
	CommentsCount int         `json:"comments_count"`
}

// CreateTaskRequest captures payload for creating a task
type CreateTaskRequest struct {
	Board       int64          `json:"board"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Priority    string         `json:"priority"`
	AssigneeID  OptionalUserID `json:"assignee_id"`
	ReviewerID  OptionalUserID `json:"reviewer_id"`
	DueDate     OptionalDate   `json:"due_date"`
}

func (r *CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return perrors.NewFieldError("title", "This field is required.")
	}
	if !ValidStatus(r.Status) {
		return perrors.NewFieldError("status", fmt.Sprintf("%q is not a valid choice.", r.Status))
	}
	if !ValidPriority(r.Priority) {
		return perrors.NewFieldError("priority", fmt.Sprintf("%q is not a valid choice.", r.Priority))
	}
	if err := r.AssigneeID.Validate("assignee_id"); err != nil {
		return err
	}
	if err := r.ReviewerID.Validate("reviewer_id"); err != nil {
		return err
	}

	return nil
}

// UpdateTaskRequest captures payload for a partial task update. The board
// reference is immutable; controllers reject payloads that carry it.
type UpdateTaskRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	Priority    *string        `json:"priority"`
	AssigneeID  OptionalUserID `json:"assignee_id"`
	ReviewerID  OptionalUserID `json:"reviewer_id"`
	DueDate     OptionalDate   `json:"due_date"`
}

func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return perrors.NewFieldError("title", "This field may not be blank.")
	}
	if r.Status != nil && !ValidStatus(*r.Status) {
		return perrors.NewFieldError("status", fmt.Sprintf("%q is not a valid choice.", *r.Status))
	}
	if r.Priority != nil && !ValidPriority(*r.Priority) {
		return perrors.NewFieldError("priority", fmt.Sprintf("%q is not a valid choice.", *r.Priority))
	}
	if err := r.AssigneeID.Validate("assignee_id"); err != nil {
		return err
	}
	if err := r.ReviewerID.Validate("reviewer_id"); err != nil {
		return err
	}

	return nil
}
