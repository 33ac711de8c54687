package task

import (
	"testing"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardlyhq/boardly/internal/perrors"
)

func TestOptionalUserIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    OptionalUserID
	}{
		{"absent", `{}`, OptionalUserID{}},
		{"null clears", `{"assignee_id": null}`, OptionalUserID{Present: true, Clear: true}},
		{"empty string clears", `{"assignee_id": ""}`, OptionalUserID{Present: true, Clear: true}},
		{"false clears", `{"assignee_id": false}`, OptionalUserID{Present: true, Clear: true}},
		{"integer sets", `{"assignee_id": 42}`, OptionalUserID{Present: true, ID: 42}},
		{"numeric string sets", `{"assignee_id": "42"}`, OptionalUserID{Present: true, ID: 42}},
		{"garbage is invalid", `{"assignee_id": "abc"}`, OptionalUserID{Present: true, Invalid: true}},
		{"zero is invalid", `{"assignee_id": 0}`, OptionalUserID{Present: true, Invalid: true}},
		{"negative is invalid", `{"assignee_id": -3}`, OptionalUserID{Present: true, Invalid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				AssigneeID OptionalUserID `json:"assignee_id"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &body))
			assert.Equal(t, tt.want, body.AssigneeID)
		})
	}
}

func TestOptionalUserIDValidate(t *testing.T) {
	ok := OptionalUserID{Present: true, ID: 5}
	assert.NoError(t, ok.Validate("assignee_id"))

	bad := OptionalUserID{Present: true, Invalid: true}
	err := bad.Validate("assignee_id")
	require.Error(t, err)

	var fieldErr *perrors.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "assignee_id", fieldErr.Field)
	assert.Equal(t, "A valid integer is required.", fieldErr.Message)
}

func TestOptionalDateUnmarshal(t *testing.T) {
	var body struct {
		DueDate OptionalDate `json:"due_date"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{}`), &body))
	assert.False(t, body.DueDate.Present)

	body.DueDate = OptionalDate{}
	require.NoError(t, json.Unmarshal([]byte(`{"due_date": null}`), &body))
	assert.True(t, body.DueDate.Present)
	assert.True(t, body.DueDate.Clear)

	body.DueDate = OptionalDate{}
	require.NoError(t, json.Unmarshal([]byte(`{"due_date": "2026-03-14"}`), &body))
	assert.True(t, body.DueDate.Present)
	assert.False(t, body.DueDate.Clear)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), body.DueDate.Val.Time)

	err := json.Unmarshal([]byte(`{"due_date": "14/03/2026"}`), &body)
	assert.Error(t, err)
}

func TestDateMarshal(t *testing.T) {
	d := Date{Time: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-14"`, string(b))
}

func TestCreateTaskRequestValidate(t *testing.T) {
	valid := func() *CreateTaskRequest {
		return &CreateTaskRequest{
			Board:    1,
			Title:    "Write release notes",
			Status:   StatusToDo,
			Priority: PriorityMedium,
		}
	}

	assert.NoError(t, valid().Validate())

	req := valid()
	req.Title = "  "
	assertFieldError(t, req.Validate(), "title")

	req = valid()
	req.Status = "backlog"
	assertFieldError(t, req.Validate(), "status")

	req = valid()
	req.Priority = "urgent"
	assertFieldError(t, req.Validate(), "priority")

	req = valid()
	req.AssigneeID = OptionalUserID{Present: true, Invalid: true}
	assertFieldError(t, req.Validate(), "assignee_id")
}

func TestUpdateTaskRequestValidate(t *testing.T) {
	assert.NoError(t, (&UpdateTaskRequest{}).Validate())

	title := "Refine backlog"
	status := StatusReview
	priority := PriorityHigh
	req := &UpdateTaskRequest{Title: &title, Status: &status, Priority: &priority}
	assert.NoError(t, req.Validate())

	blank := "   "
	assertFieldError(t, (&UpdateTaskRequest{Title: &blank}).Validate(), "title")

	badStatus := "archived"
	assertFieldError(t, (&UpdateTaskRequest{Status: &badStatus}).Validate(), "status")

	badPriority := "critical"
	assertFieldError(t, (&UpdateTaskRequest{Priority: &badPriority}).Validate(), "priority")

	req = &UpdateTaskRequest{ReviewerID: OptionalUserID{Present: true, Invalid: true}}
	assertFieldError(t, req.Validate(), "reviewer_id")
}

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)

	var fieldErr *perrors.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, field, fieldErr.Field)
}
