package controllers

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/boardlyhq/boardly/internal/perrors"
	"github.com/boardlyhq/boardly/internal/services"
	comment2 "github.com/boardlyhq/boardly/internal/services/comment"
)

func RegisterCommentRoutes(r *router.Router, svc *services.Services) {
	// List a task's comments, oldest first
	r.GET("/api/tasks/{task_id}/comments/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		taskID, err := pathID(ctx, "task_id")
		if err != nil {
			writeError(ctx, stdCtx, "Task not found", err)
			return
		}

		comments, err := svc.Comment.List(stdCtx, u.ID, taskID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list comments", serviceError("Failed to list comments", err))
			return
		}

		writeOK(ctx, stdCtx, "Comments retrieved successfully", comments)
	})

	// Add a comment to a task
	r.POST("/api/tasks/{task_id}/comments/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		taskID, err := pathID(ctx, "task_id")
		if err != nil {
			writeError(ctx, stdCtx, "Task not found", err)
			return
		}

		var body comment2.CreateCommentRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		created, err := svc.Comment.Create(stdCtx, u.ID, taskID, &body)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to create comment", serviceError("Failed to create comment", err))
			return
		}

		writeCreated(ctx, stdCtx, "Comment created successfully", created)
	})

	// Get a single comment
	r.GET("/api/tasks/{task_id}/comments/{comment_id}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		taskID, err := pathID(ctx, "task_id")
		if err != nil {
			writeError(ctx, stdCtx, "Task not found", err)
			return
		}
		commentID, err := pathID(ctx, "comment_id")
		if err != nil {
			writeError(ctx, stdCtx, "Comment not found", err)
			return
		}

		c, err := svc.Comment.Get(stdCtx, u.ID, taskID, commentID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to get comment", serviceError("Failed to get comment", err))
			return
		}

		writeOK(ctx, stdCtx, "Comment retrieved successfully", c)
	})

	// Delete a comment
	r.DELETE("/api/tasks/{task_id}/comments/{comment_id}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		taskID, err := pathID(ctx, "task_id")
		if err != nil {
			writeError(ctx, stdCtx, "Task not found", err)
			return
		}
		commentID, err := pathID(ctx, "comment_id")
		if err != nil {
			writeError(ctx, stdCtx, "Comment not found", err)
			return
		}

		if err := svc.Comment.Delete(stdCtx, u.ID, taskID, commentID); err != nil {
			writeError(ctx, stdCtx, "Failed to delete comment", serviceError("Failed to delete comment", err))
			return
		}

		writeNoContent(ctx)
	})
}
