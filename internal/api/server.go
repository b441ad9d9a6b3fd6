// Package api provides the HTTP API server and handlers for EditDrop.
package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/editdropapp/editdrop-server/internal/media/videos"
	"github.com/editdropapp/editdrop-server/internal/ratelimit"
	"github.com/editdropapp/editdrop-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	services *Services
	videos   *videos.Storage
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger

	// authLimiter throttles credential endpoints per client address.
	authLimiter *ratelimit.KeyedRateLimiter
}

// Options configures the API server.
type Options struct {
	Store       *store.Store
	Services    *Services
	Videos      *videos.Storage
	CORSOrigins []string
	Logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(opts Options) *Server {
	s := &Server{
		store:       opts.Store,
		services:    opts.Services,
		videos:      opts.Videos,
		router:      chi.NewRouter(),
		logger:      opts.Logger,
		authLimiter: ratelimit.New(1, 10),
	}

	s.setupMiddleware(opts.CORSOrigins)

	humaConfig := huma.DefaultConfig("EditDrop API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerRotationRoutes()
	s.registerAuthRoutes()
	s.registerFavoriteRoutes()
	s.registerCommentRoutes()
	s.registerUploadRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(corsOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	if len(corsOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	s.router.Use(s.rateLimitAuth)
}

// rateLimitAuth throttles credential endpoints per client address. The
// rest of the API is unlimited.
func (s *Server) rateLimitAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/v1/auth/") {
			if !s.authLimiter.Allow(r.RemoteAddr) {
				s.logger.Warn("auth rate limit exceeded", "remote_addr", r.RemoteAddr)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				//nolint:errcheck // Best effort error body
				_, _ = w.Write([]byte(`{"code":"RATE_LIMITED","message":"Too many requests, slow down"}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
