package controllers

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/boardlyhq/boardly/internal/perrors"
	"github.com/boardlyhq/boardly/internal/services"
	user2 "github.com/boardlyhq/boardly/internal/services/user"
)

func RegisterAuthRoutes(r *router.Router, svc *services.Services) {
	// Register a new account
	r.POST("/api/registration/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		var body user2.RegisterRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		auth, err := svc.User.Register(stdCtx, &body)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to register", serviceError("Failed to register", err))
			return
		}

		writeCreated(ctx, stdCtx, "Registered successfully", auth)
	})

	// Log in with email and password
	r.POST("/api/login/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		var body user2.LoginRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		auth, err := svc.User.Login(stdCtx, &body)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to log in", serviceError("Failed to log in", err))
			return
		}

		writeOK(ctx, stdCtx, "Logged in successfully", auth)
	})

	// Look up a user by email
	r.GET("/api/email-check/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		email, err := requireStringQuery(ctx, "email")
		if err != nil {
			writeError(ctx, stdCtx, "Email is required", perrors.NewErrInvalidRequest("Email is required", err))
			return
		}

		brief, err := svc.User.CheckEmail(stdCtx, email)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to check email", serviceError("Failed to check email", err))
			return
		}

		writeOK(ctx, stdCtx, "User found", brief)
	})
}
