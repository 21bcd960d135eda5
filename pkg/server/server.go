// Package server exposes layout passes over HTTP.
//
// Routes:
//
//	POST /v1/arrange   arrange a scene, returning placements and routes
//	POST /v1/route     arrange a scene and return the route of one join
//	POST /v1/graph     export the visibility graph of one join
//	GET  /healthz      liveness probe
//	GET  /metrics      Prometheus metrics
//
// Errors are returned as {"error": {"code": ..., "message": ...}} with the
// status derived from the error code.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/arranger/pkg/metrics"
	"github.com/matzehuels/arranger/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"

	// MaxBodyBytes limits request bodies.
	MaxBodyBytes = 8 << 20

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Runner executes passes. Required.
	Runner *pipeline.Runner

	// Defaults are the pass options applied before request overrides.
	Defaults pipeline.Options

	// Metrics backs GET /metrics. Nil disables the route.
	Metrics *metrics.Registry

	Logger  *log.Logger
	Timeout time.Duration
}

// Server is the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	metrics  *metrics.Registry
	logger   *log.Logger
	timeout  time.Duration
}

// New creates a server from cfg.
func New(cfg Config) *Server {
	s := &Server{
		runner:   cfg.Runner,
		defaults: cfg.Defaults,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		timeout:  cfg.Timeout,
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	return s
}

// Handler returns the router with all routes and middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.timeout))
		r.Use(limitBody)
		r.Post("/arrange", s.handleArrange)
		r.Post("/route", s.handleRoute)
		r.Post("/graph", s.handleGraph)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
