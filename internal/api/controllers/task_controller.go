package controllers

import (
	stdjson "encoding/json"

	json "github.com/bytedance/sonic"
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/boardlyhq/boardly/internal/perrors"
	"github.com/boardlyhq/boardly/internal/services"
	task2 "github.com/boardlyhq/boardly/internal/services/task"
)

func RegisterTaskRoutes(r *router.Router, svc *services.Services) {
	// Create task on a board
	r.POST("/api/tasks/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		var body task2.CreateTaskRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		created, err := svc.Task.Create(stdCtx, u.ID, &body)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to create task", serviceError("Failed to create task", err))
			return
		}

		writeCreated(ctx, stdCtx, "Task created successfully", created)
	})

	// Tasks the caller reviews
	r.GET("/api/tasks/reviewing/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		tasks, err := svc.Task.Reviewing(stdCtx, u.ID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list tasks", serviceError("Failed to list tasks", err))
			return
		}

		writeOK(ctx, stdCtx, "Tasks retrieved successfully", tasks)
	})

	// Tasks assigned to the caller
	r.GET("/api/tasks/assigned-to-me/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		tasks, err := svc.Task.AssignedToMe(stdCtx, u.ID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list tasks", serviceError("Failed to list tasks", err))
			return
		}

		writeOK(ctx, stdCtx, "Tasks retrieved successfully", tasks)
	})

	// Get task detail
	r.GET("/api/tasks/{task_id}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		taskID, err := pathID(ctx, "task_id")
		if err != nil {
			writeError(ctx, stdCtx, "Task not found", err)
			return
		}

		detail, err := svc.Task.Get(stdCtx, u.ID, taskID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to get task", serviceError("Failed to get task", err))
			return
		}

		writeOK(ctx, stdCtx, "Task retrieved successfully", detail)
	})

	// Partially update a task. The owning board is immutable.
	r.PATCH("/api/tasks/{task_id}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		taskID, err := pathID(ctx, "task_id")
		if err != nil {
			writeError(ctx, stdCtx, "Task not found", err)
			return
		}

		raw := map[string]stdjson.RawMessage{}
		if err := parseBody(ctx, &raw); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}
		if _, ok := raw["board"]; ok {
			fe := perrors.NewFieldError("board", "Changing the board is not allowed.")
			writeError(ctx, stdCtx, "Failed to update task", perrors.NewErrValidationField(fe))
			return
		}

		var body task2.UpdateTaskRequest
		if err := json.Unmarshal(ctx.PostBody(), &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.Task.Update(stdCtx, u.ID, taskID, &body)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to update task", serviceError("Failed to update task", err))
			return
		}

		writeOK(ctx, stdCtx, "Task updated successfully", updated)
	})

	// Delete task
	r.DELETE("/api/tasks/{task_id}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		taskID, err := pathID(ctx, "task_id")
		if err != nil {
			writeError(ctx, stdCtx, "Task not found", err)
			return
		}

		if err := svc.Task.Delete(stdCtx, u.ID, taskID); err != nil {
			writeError(ctx, stdCtx, "Failed to delete task", serviceError("Failed to delete task", err))
			return
		}

		writeNoContent(ctx)
	})
}
