package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/point-ledger/internal/api/handlers"
	"github.com/baharkarakas/point-ledger/internal/auth"
	"github.com/baharkarakas/point-ledger/internal/config"
	"github.com/baharkarakas/point-ledger/internal/metrics"
	"github.com/baharkarakas/point-ledger/internal/middleware"
	"github.com/baharkarakas/point-ledger/internal/services"
)

func NewRouter(cfg config.Config, tm *auth.TokenManager, svc *services.PointService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PATCH", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	authHandler := handlers.NewAuthHandler(tm, cfg)
	points := handlers.NewPointsHandler(svc)
	authMW := middleware.NewAuthMiddleware(tm, cfg.Env)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		r.Route("/points", func(r chi.Router) {
			r.Use(authMW.Auth)
			r.Get("/{id}", points.GetBalance)
			r.Get("/{id}/histories", points.GetHistory)
			r.Patch("/{id}/charge", points.Charge)
			r.Patch("/{id}/use", points.Use)
		})
	})

	return r
}
