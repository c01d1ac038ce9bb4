// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the router and the [http.Server].

	GET  /health, /ready                 probes, no auth
	POST /api/v1/auth/token              public
	*    /api/v1/auth/logout             bearer token
	*    /api/v1/{locales,tags,translations}  bearer token
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/lexicon/internal/core/locale"
	"github.com/taibuivan/lexicon/internal/core/tag"
	"github.com/taibuivan/lexicon/internal/core/translation"
	"github.com/taibuivan/lexicon/internal/platform/config"
	"github.com/taibuivan/lexicon/internal/platform/constants"
	"github.com/taibuivan/lexicon/internal/platform/middleware"
	"github.com/taibuivan/lexicon/internal/users/auth"
)

// Server owns the listening [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers is everything the router mounts.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth        *auth.Handler
	Locale      *locale.Handler
	Tag         *tag.Handler
	Translation *translation.Handler
}

// NewServer builds the router. The rate limiter's sweeper stops with context.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := newRouter(context, cfg, log, verifier, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

func newRouter(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	limiter := middleware.NewRateLimiter(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)

	r.Use(middleware.RequestID())
	r.Use(middleware.Trace())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(limiter))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		api.Group(func(bounded chi.Router) {
			bounded.Use(chimw.Timeout(constants.GlobalRequestTimeout))
			bounded.Route("/auth", h.Auth.RegisterRoutes)

			bounded.Group(func(protected chi.Router) {
				protected.Use(middleware.RequireAuth)
				protected.Route("/locales", h.Locale.RegisterRoutes)
				protected.Route("/tags", h.Tag.RegisterRoutes)
			})
		})

		// Translations pick their own deadlines, the export needing a longer one.
		api.With(middleware.RequireAuth).Route("/translations", h.Translation.RegisterRoutes)
	})

	return r
}

// ListenAndServe blocks until the server is shut down or fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits up to timeout for
// in-flight requests, streamed exports included.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
