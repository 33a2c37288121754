// Package server serves the landing page, the investor dashboard and their JSON API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/capnow/portfolio"
	"github.com/capnow/portfolio/leads"
)

// ProgressSource provides the current campaign progress, see feed.Feed.
type ProgressSource interface {
	State() portfolio.ProgressState
	LastUpdated() time.Time
}

// staticProgress is used when no source is configured.
type staticProgress struct{}

func (staticProgress) State() portfolio.ProgressState { return portfolio.InitialProgress() }
func (staticProgress) LastUpdated() time.Time          { return time.Time{} }

// Config holds server configuration
type Config struct {
	Port     int
	Log      zerolog.Logger
	Snapshot portfolio.PortfolioSnapshot // displayed on the dashboard
	Progress ProgressSource              // nil for the initial progress
	Leads    leads.Store                 // nil disables lead capture
	DevMode  bool
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	port     int
	snapshot portfolio.PortfolioSnapshot
	progress ProgressSource
	leads    leads.Store
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		port:     cfg.Port,
		snapshot: cfg.Snapshot,
		progress: cfg.Progress,
		leads:    cfg.Leads,
	}
	if s.progress == nil {
		s.progress = staticProgress{}
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(30 * time.Second))

	// CORS, the API is read by the marketing site.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// Pages
	s.router.Get("/", s.handleLanding)
	s.router.Get("/dashboard", s.handleDashboard)
	s.router.Get("/progress.json", s.handleProgressDocument)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboardAPI)
		r.Get("/progress", s.handleProgressAPI)

		r.Route("/leads", func(r chi.Router) {
			r.Post("/", s.handleCreateLead)
			r.Get("/stats", s.handleLeadStats)
		})
	})
}

// Handler returns the routed handler, for embedding and tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
