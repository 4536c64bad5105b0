package serverhttp

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	catHnd "catalog-recon/internal/catalog/handler"
	"catalog-recon/internal/config"
	"catalog-recon/internal/middleware"
	"catalog-recon/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}

	// order matters: recover -> request id -> logging -> cors -> limits
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/dedupe", catHnd.Dedupe(cfg, logger))
		r.Post("/match", catHnd.Match(cfg, logger))
	})

	return r
}
