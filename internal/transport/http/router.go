package http

import (
	"log/slog"
	"net/http"

	"github.com/expense-notify/internal/application/notify"
	"github.com/expense-notify/internal/config"
	"github.com/expense-notify/internal/infrastructure/dynamo"
	jwtinfra "github.com/expense-notify/internal/infrastructure/jwt"
	"github.com/expense-notify/internal/infrastructure/sns"
	"github.com/expense-notify/internal/transport/http/handler"
	appmiddleware "github.com/expense-notify/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	GroupRepo   *dynamo.GroupRepo
	UserRepo    *dynamo.UserRepo
	Pusher      sns.Pusher
	JWTProvider *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 20 events/second per source, burst of 40 — the feed retries on 429.
	eventRL := appmiddleware.NewRateLimiter(rate.Limit(20), 40)

	notifySvc := notify.NewService(deps.GroupRepo, deps.UserRepo, deps.UserRepo, deps.Pusher, slog.Default())

	healthH := handler.NewHealthHandler()
	eventH := handler.NewEventHandler(notifySvc)
	notifH := handler.NewNotificationHandler(notifySvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(eventRL.Limit).Post("/events/expenses", eventH.Receive)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/notifications/test", notifH.SendTest)
		})
	})

	return r
}
