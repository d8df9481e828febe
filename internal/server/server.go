// Package server exposes the growth ratio solver over HTTP.
//
// Routes:
//
//	POST /v1/solve   solve one request, JSON in and out
//	GET  /healthz    liveness and build version
//	GET  /metrics    Prometheus exposition
//
// Every response carries an X-Request-ID header. Errors are JSON objects of
// the form {"code": "...", "message": "..."}.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/inflate/pkg/config"
	"github.com/matzehuels/inflate/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may take to drain.
const shutdownTimeout = 5 * time.Second

// Server is the HTTP solve service.
type Server struct {
	cfg     config.Server
	logger  *log.Logger
	runner  *pipeline.Runner
	metrics *Metrics
	router  chi.Router
}

// New builds a server. A nil logger means log.Default(); a nil metrics
// disables the /metrics route.
func New(cfg config.Server, logger *log.Logger, metrics *Metrics) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		runner:  pipeline.NewRunner(logger),
		metrics: metrics,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/solve", s.handleSolve)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// Run serves on cfg.Addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
