// Package server exposes registry sets over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"git.home.luguber.info/inful/chainset/internal/config"
	cerrors "git.home.luguber.info/inful/chainset/internal/errors"
	"git.home.luguber.info/inful/chainset/internal/logfields"
	"git.home.luguber.info/inful/chainset/internal/registry"
	smw "git.home.luguber.info/inful/chainset/internal/server/middleware"
	"git.home.luguber.info/inful/chainset/internal/server/responses"
)

const (
	defaultRequestTimeout  = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Options wires a Server.
type Options struct {
	Config   config.ServerConfig
	Registry *registry.Registry
	// MetricsHandler is mounted at MetricsPath when non-nil.
	MetricsHandler http.Handler
	MetricsPath    string
	Logger         *slog.Logger
}

// Server represents the API server.
type Server struct {
	addr            string
	router          *chi.Mux
	server          *http.Server
	registry        *registry.Registry
	adapter         *cerrors.HTTPErrorAdapter
	logger          *slog.Logger
	shutdownTimeout time.Duration
	startTime       time.Time
}

// NewServer creates a new API server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.New(nil)
	}
	s := &Server{
		addr:            opts.Config.Addr,
		router:          chi.NewRouter(),
		registry:        reg,
		adapter:         cerrors.NewHTTPErrorAdapter(logger),
		logger:          logger,
		shutdownTimeout: opts.Config.ShutdownTimeoutDuration(),
		startTime:       time.Now(),
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = defaultShutdownTimeout
	}

	s.setupRoutes(opts.MetricsPath, opts.MetricsHandler)

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  opts.Config.ReadTimeoutDuration(),
		WriteTimeout: opts.Config.WriteTimeoutDuration(),
		IdleTimeout:  defaultIdleTimeout,
	}
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes(metricsPath string, metricsHandler http.Handler) {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(smw.Chain(s.logger, s.adapter))
	s.router.Use(chimw.Timeout(defaultRequestTimeout))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/sets", func(r chi.Router) {
		r.Post("/", s.handleCreateSet)
		r.Get("/", s.handleListSets)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSet)
			r.Delete("/", s.handleDeleteSet)
			r.Post("/rehash", s.handleRehash)
			r.Put("/elements/{value}", s.handleAddElement)
			r.Get("/elements/{value}", s.handleContainsElement)
			r.Delete("/elements/{value}", s.handleRemoveElement)
		})
	})

	if metricsHandler != nil {
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		s.router.Method(http.MethodGet, metricsPath, metricsHandler)
	}
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on the configured address and serves until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return cerrors.ListenError(s.addr, err)
	}
	s.logger.Info("HTTP API listening", logfields.Addr(ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stdErrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return cerrors.ListenError(s.addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
		return cerrors.ListenError(s.addr, err)
	}
	s.logger.Info("HTTP API stopped")
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return cerrors.InternalError("graceful shutdown failed", err)
	}
	return nil
}

// Success writes a success response.
func (s *Server) Success(w http.ResponseWriter, code int, data any) {
	s.write(w, code, responses.Response{Success: true, Data: data})
}

// Error writes err with the status its category maps to.
func (s *Server) Error(w http.ResponseWriter, err error) {
	s.adapter.WriteErrorResponse(w, err)
}

func (s *Server) write(w http.ResponseWriter, code int, resp responses.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
