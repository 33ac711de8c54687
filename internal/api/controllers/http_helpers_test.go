package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/boardlyhq/boardly/internal/perrors"
	"github.com/boardlyhq/boardly/internal/services/board"
	"github.com/boardlyhq/boardly/internal/services/comment"
	"github.com/boardlyhq/boardly/internal/services/task"
	"github.com/boardlyhq/boardly/internal/services/user"
)

func TestPathID(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("board_id", "12")

	id, err := pathID(ctx, "board_id")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
}

func TestPathID_Malformed(t *testing.T) {
	for _, raw := range []string{"abc", "12.5", "-1", "0", ""} {
		ctx := &fasthttp.RequestCtx{}
		ctx.SetUserValue("board_id", raw)

		_, err := pathID(ctx, "board_id")
		require.Error(t, err, "raw=%q", raw)

		var perr perrors.Err
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, http.StatusNotFound, perr.HttpStatus())
	}
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"board missing", board.ErrBoardNotFound, http.StatusNotFound},
		{"task missing", task.ErrTaskNotFound, http.StatusNotFound},
		{"comment missing", comment.ErrCommentNotFound, http.StatusNotFound},
		{"user missing", user.ErrUserNotFound, http.StatusNotFound},
		{"not a member", board.ErrNotMember, http.StatusForbidden},
		{"not the owner", board.ErrNotOwner, http.StatusForbidden},
		{"bad credentials", user.ErrInvalidCredentials, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := serviceError("failed", tt.err)

			var perr perrors.Err
			require.ErrorAs(t, mapped, &perr)
			assert.Equal(t, tt.status, perr.HttpStatus())
		})
	}
}

func TestServiceError_FieldError(t *testing.T) {
	fe := perrors.NewFieldError("email", "A user with this email already exists.")
	mapped := serviceError("failed", fe)

	var perr perrors.Err
	require.ErrorAs(t, mapped, &perr)
	assert.Equal(t, http.StatusBadRequest, perr.HttpStatus())
	require.Len(t, perr.Args, 1)
	assert.Equal(t, "A user with this email already exists.", perr.Args[0]["email"])
}

func TestServiceError_PassthroughPerror(t *testing.T) {
	orig := perrors.NewErrForbidden("nope", errors.New("denied"))
	mapped := serviceError("failed", orig)

	var perr perrors.Err
	require.ErrorAs(t, mapped, &perr)
	assert.Equal(t, http.StatusForbidden, perr.HttpStatus())
}
