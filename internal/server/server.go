// Package server exposes the report template core over HTTP. It is a
// reference collaborator: persistence goes through store.Store and content
// validation through validation.Validator.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-reportschema/internal/store"
	"github.com/goliatone/go-reportschema/pkg/sample"
	"github.com/goliatone/go-reportschema/pkg/validation"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	shutdownTimeout     = 10 * time.Second
	requestTimeout      = 30 * time.Second
	maxBodyBytes        = 1 << 20
)

// Option customises a Server.
type Option func(*Server)

// WithValidator replaces the local validation engine, e.g. with a
// validation.FallbackValidator wrapping a remote endpoint.
func WithValidator(v validation.Validator) Option {
	return func(s *Server) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithGenerator sets the sample generator used when no seed is requested.
func WithGenerator(g *sample.Generator) Option {
	return func(s *Server) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics shares a metrics registry with the caller.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithStrictImport rejects creates and updates whose validation result has
// errors.
func WithStrictImport(strict bool) Option {
	return func(s *Server) {
		s.strict = strict
	}
}

// WithTimeouts overrides the http.Server read and write timeouts. Zero
// values keep the defaults.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
	}
}

// Server holds the HTTP API dependencies.
type Server struct {
	store        store.Store
	validator    validation.Validator
	generator    *sample.Generator
	logger       *slog.Logger
	metrics      *Metrics
	strict       bool
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// New constructs a Server backed by st.
func New(st store.Store, options ...Option) *Server {
	s := &Server{
		store:        st,
		validator:    validation.LocalValidator{Engine: validation.New()},
		generator:    sample.New(),
		logger:       slog.Default(),
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	return s
}

// Metrics returns the server's metrics registry.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/v1/templates", func(r chi.Router) {
		r.Post("/validate", s.validateTemplate)
		r.Post("/sample", s.sampleTemplate)
		r.Post("/schema", s.schemaTemplate)

		r.Post("/", s.createTemplate)
		r.Get("/", s.listTemplates)
		r.Get("/{id}", s.getTemplate)
		r.Put("/{id}", s.updateTemplate)
		r.Delete("/{id}", s.deleteTemplate)
		r.Post("/{id}/activate", s.activateTemplate)
		r.Post("/{id}/deactivate", s.deactivateTemplate)
		r.Post("/{id}/commands", s.applyCommands)
	})
	return r
}

// Run serves the API on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := s.httpServer(ctx, addr)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// httpServer builds the listener-facing server. Request contexts inherit
// values from ctx but not its cancellation, so Shutdown can drain in-flight
// requests after ctx is done.
func (s *Server) httpServer(ctx context.Context, addr string) *http.Server {
	base := context.WithoutCancel(ctx)
	return &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		BaseContext:  func(net.Listener) context.Context { return base },
	}
}
