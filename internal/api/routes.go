package api

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/propagation"

	"github.com/boardlyhq/boardly/internal/api/authenticator"
	"github.com/boardlyhq/boardly/internal/api/controllers"
)

var tracePropagator = propagation.TraceContext{}

func (s *Server) initRoutes() fasthttp.RequestHandler {
	r := router.New()

	r.GET("/api/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		_, _ = ctx.Write([]byte("OK"))
	})

	auth := authenticator.New(s.services.User)

	controllers.RegisterAuthRoutes(r, s.services)
	controllers.RegisterBoardRoutes(r, s.services)
	controllers.RegisterTaskRoutes(r, s.services)
	controllers.RegisterCommentRoutes(r, s.services)

	return s.withMiddlewares(r.Handler, auth)
}

func (s *Server) withMiddlewares(next fasthttp.RequestHandler, auth *authenticator.Authenticator) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		applyCORS(ctx)
		if string(ctx.Method()) == fasthttp.MethodOptions {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}

		start := time.Now()
		requestID := uuid.NewString()
		requestURI := string(ctx.URI().FullURI())
		slog.Info("Started processing",
			slog.String("request_id", requestID),
			slog.String("method", string(ctx.Method())),
			slog.String("request_uri", requestURI))

		h := http.Header{}
		ctx.Request.Header.VisitAll(func(k, v []byte) {
			h[string(k)] = []string{string(v)}
		})
		traceCtx := tracePropagator.Extract(ctx, propagation.HeaderCarrier(h))
		ctx.SetUserValue("traceCtx", traceCtx)

		// Auth check
		if !isPublicRoute(ctx) {
			token, err := authenticator.TokenFromRequest(ctx)
			if err != nil {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			u, err := auth.Authenticate(traceCtx, token)
			if err != nil {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			// Store the authenticated user for downstream handlers
			ctx.SetUserValue("currentUser", u)
		}

		next(ctx)

		slog.Info("Finished processing",
			slog.String("request_id", requestID),
			slog.String("method", string(ctx.Method())),
			slog.String("request_uri", requestURI),
			slog.Int("status", ctx.Response.StatusCode()),
			slog.Duration("duration", time.Since(start)))
	}
}

func applyCORS(ctx *fasthttp.RequestCtx) {
	headers := &ctx.Response.Header
	headers.Set("Access-Control-Allow-Origin", string(ctx.Request.Header.Peek("Origin")))
	headers.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS,PATCH")
	headers.Set("Access-Control-Allow-Headers", os.Getenv("ALLOWED_HEADERS"))
	headers.Set("Access-Control-Allow-Credentials", "true")
}

func isPublicRoute(ctx *fasthttp.RequestCtx) bool {
	switch string(ctx.Path()) {
	case "/api/health", "/api/registration/", "/api/login/":
		return true
	default:
		return false
	}
}
