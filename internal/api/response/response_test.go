package response

import (
	"context"
	"errors"
	"net/http"
	"testing"

	json "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/boardlyhq/boardly/internal/perrors"
)

func TestResponseWrite(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	NewResponse(context.Background(), "ok", map[string]string{"hello": "world"}).Write(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var body struct {
		Error   bool              `json:"error"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.False(t, body.Error)
	assert.Equal(t, "ok", body.Message)
	assert.Equal(t, "world", body.Data["hello"])
}

func TestResponseWithStatus(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	NewResponse[any](context.Background(), "created", nil).WithStatus(http.StatusCreated).Write(ctx)

	assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
}

func TestResponseWithError(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	perr := perrors.NewErrNotFound("Board not found", errors.New("no rows"))
	NewResponse[any](context.Background(), "Failed to get board", nil).WithError(perr).Write(ctx)

	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())

	var body struct {
		Error bool `json:"error"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.True(t, body.Error)
}

func TestResponseWithError_PlainError(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	NewResponse[any](context.Background(), "Failed", nil).WithError(errors.New("boom")).Write(ctx)

	assert.Equal(t, http.StatusInternalServerError, ctx.Response.StatusCode())
}
