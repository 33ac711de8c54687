package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	json "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"github.com/boardlyhq/boardly/internal/api/response"
	"github.com/boardlyhq/boardly/internal/perrors"
	"github.com/boardlyhq/boardly/internal/services/board"
	"github.com/boardlyhq/boardly/internal/services/comment"
	"github.com/boardlyhq/boardly/internal/services/task"
	"github.com/boardlyhq/boardly/internal/services/user"
)

// requestContext returns a baseline context for handlers. fasthttp does not provide
// a standard context, so we start from the trace context set by the middleware.
func requestContext(ctx *fasthttp.RequestCtx) context.Context {
	if traceCtx, ok := ctx.UserValue("traceCtx").(context.Context); ok {
		return traceCtx
	}

	return context.Background()
}

// currentUser returns the authenticated user set by the auth middleware.
func currentUser(ctx *fasthttp.RequestCtx) *user.User {
	u, _ := ctx.UserValue("currentUser").(*user.User)
	return u
}

func parseBody(ctx *fasthttp.RequestCtx, target any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return errors.New("request body is empty")
	}

	return json.Unmarshal(body, target)
}

// pathID parses a numeric path segment. A malformed id reads the same as
// a missing resource.
func pathID(ctx *fasthttp.RequestCtx, key string) (int64, error) {
	val := ctx.UserValue(key)
	if val == nil {
		return 0, perrors.NewErrNotFound("Not found", fmt.Errorf("%s is required", key))
	}

	id, err := strconv.ParseInt(fmt.Sprint(val), 10, 64)
	if err != nil || id < 1 {
		return 0, perrors.NewErrNotFound("Not found", fmt.Errorf("invalid %s", key))
	}

	return id, nil
}

func requireStringQuery(ctx *fasthttp.RequestCtx, key string) (string, error) {
	raw := ctx.QueryArgs().Peek(key)
	if len(raw) == 0 {
		return "", fmt.Errorf("%s parameter is required", key)
	}

	return string(raw), nil
}

func writeError(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, err error) {
	response.NewResponse[any](stdCtx, message, nil).WithError(err).Write(ctx)
}

func writeOK(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, data any) {
	response.NewResponse(stdCtx, message, data).Write(ctx)
}

func writeCreated(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, data any) {
	response.NewResponse(stdCtx, message, data).WithStatus(http.StatusCreated).Write(ctx)
}

func writeNoContent(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(http.StatusNoContent)
}

// serviceError maps service-layer failures to the HTTP error taxonomy:
// validation failures carry their field on a 400, missing resources are
// 404, denied access is 403, everything else is a 500.
func serviceError(message string, err error) error {
	var fieldErr *perrors.FieldError
	if errors.As(err, &fieldErr) {
		return perrors.NewErrValidationField(fieldErr)
	}

	var perr perrors.Err
	if errors.As(err, &perr) {
		return perr
	}

	switch {
	case errors.Is(err, board.ErrBoardNotFound),
		errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, comment.ErrCommentNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return perrors.NewErrNotFound(message, err)
	case errors.Is(err, board.ErrNotMember), errors.Is(err, board.ErrNotOwner):
		return perrors.NewErrForbidden(message, err)
	case errors.Is(err, user.ErrInvalidCredentials):
		return perrors.NewErrInvalidRequest(message, err)
	default:
		return perrors.NewErrInternalServerError(message, err)
	}
}
