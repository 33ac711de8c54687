package controllers

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/boardlyhq/boardly/internal/perrors"
	"github.com/boardlyhq/boardly/internal/services"
	board2 "github.com/boardlyhq/boardly/internal/services/board"
)

func RegisterBoardRoutes(r *router.Router, svc *services.Services) {
	// List boards the caller owns or is a member of
	r.GET("/api/boards/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		boards, err := svc.Board.List(stdCtx, u.ID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list boards", serviceError("Failed to list boards", err))
			return
		}

		writeOK(ctx, stdCtx, "Boards retrieved successfully", boards)
	})

	// Create board
	r.POST("/api/boards/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		var body board2.CreateBoardRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		created, err := svc.Board.Create(stdCtx, u.ID, &body)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to create board", serviceError("Failed to create board", err))
			return
		}

		writeCreated(ctx, stdCtx, "Board created successfully", created)
	})

	// Get board detail
	r.GET("/api/boards/{board_id}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		boardID, err := pathID(ctx, "board_id")
		if err != nil {
			writeError(ctx, stdCtx, "Board not found", err)
			return
		}

		detail, err := svc.Board.Get(stdCtx, u.ID, boardID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to get board", serviceError("Failed to get board", err))
			return
		}

		writeOK(ctx, stdCtx, "Board retrieved successfully", detail)
	})

	// Update board title and/or membership
	r.PATCH("/api/boards/{board_id}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		boardID, err := pathID(ctx, "board_id")
		if err != nil {
			writeError(ctx, stdCtx, "Board not found", err)
			return
		}

		var body board2.UpdateBoardRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.Board.Update(stdCtx, u.ID, boardID, &body)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to update board", serviceError("Failed to update board", err))
			return
		}

		writeOK(ctx, stdCtx, "Board updated successfully", updated)
	})

	// Delete board, owner only
	r.DELETE("/api/boards/{board_id}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		u := currentUser(ctx)

		boardID, err := pathID(ctx, "board_id")
		if err != nil {
			writeError(ctx, stdCtx, "Board not found", err)
			return
		}

		if err := svc.Board.Delete(stdCtx, u.ID, boardID); err != nil {
			writeError(ctx, stdCtx, "Failed to delete board", serviceError("Failed to delete board", err))
			return
		}

		writeNoContent(ctx)
	})
}
