package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/NipunKodeboyena/KnockKnock/docs"
	"github.com/NipunKodeboyena/KnockKnock/internal/api/handlers"
	"github.com/NipunKodeboyena/KnockKnock/internal/api/middleware"
	"github.com/NipunKodeboyena/KnockKnock/internal/config"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/logger"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/metrics"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Email  *handlers.EmailHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/", handlers.Root)

		r.Get("/swagger/*", httpSwagger.WrapHandler)

		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)

		r.Handle("/metrics", metrics.Handler())
	})

	// Email routes; caller authentication is opt-in
	r.Group(func(r chi.Router) {
		if cfg.Auth.JWTSecret != "" {
			r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		}

		r.Post("/generate", h.Email.Generate)
		r.Post("/send-email", h.Email.SendEmail)
	})

	return r
}
