// Package api serves a book's option catalog and resolved values over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hustcer/crowbook/internal/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server represents the HTTP API server
type Server struct {
	router  *chi.Mux
	handler *Handler
	addr    string
	logger  zerolog.Logger
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Addr      string
	Source    Source
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string

	// RateLimit is the number of /api/v1 requests allowed per client IP per
	// minute. Zero means DefaultRateLimit, a negative value disables limiting.
	RateLimit int
}

// NewServer creates a new API server with the given configuration
func NewServer(config ServerConfig) (*Server, error) {
	if config.Source == nil {
		return nil, errors.New("api: option source is required")
	}

	handler := NewHandler(
		config.Source,
		config.Version,
		config.GitCommit,
		config.BuildTime,
		config.GoVersion,
	)

	router := chi.NewRouter()
	setupMiddleware(router)
	limit := config.RateLimit
	if limit == 0 {
		limit = DefaultRateLimit
	}
	setupRoutes(router, handler, limit)

	addr := config.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &Server{
		router:  router,
		handler: handler,
		addr:    addr,
		logger:  log.WithComponent("api"),
	}, nil
}

// Handler returns the server's root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures the middleware chain
func setupMiddleware(router *chi.Mux) {
	router.Use(middleware.RequestID)
	router.Use(instrument)

	// Recoverer from panics
	router.Use(middleware.Recoverer)

	// Timeout for requests
	router.Use(middleware.Timeout(60 * time.Second))
}

// setupRoutes configures the API routes
func setupRoutes(router *chi.Mux, handler *Handler, limit int) {
	router.Route("/api/v1", func(r chi.Router) {
		if limit > 0 {
			r.Use(rateLimit(limit))
		}
		r.Get("/health", handler.Health)
		r.Get("/version", handler.Version)
		r.Get("/description", handler.Description)
		r.Get("/options", handler.ListOptions)
		r.Get("/options/{key}", handler.GetOption)
	})

	router.Handle("/metrics", promhttp.Handler())
}

// StartWithContext starts the HTTP server with graceful shutdown support
func (s *Server) StartWithContext(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to signal server errors
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info().Str(log.FieldAddr, s.addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("server shutdown error")
			return err
		}

		s.logger.Info().Msg("server stopped gracefully")
		return nil

	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}
