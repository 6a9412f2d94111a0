// Package http serves the metrics and health endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bft-labs/switchyard/pkg/log"
)

const shutdownTimeout = 5 * time.Second

// Status is the body of GET /healthz.
type Status struct {
	Status    string `json:"status"`
	Endpoints int    `json:"endpoints"`
	History   int    `json:"history"`
	Runs      int    `json:"runs"`
}

// StatusFunc reports the current status. It is called once per request.
type StatusFunc func() Status

// NewHandler creates the handler serving /metrics from gatherer and /healthz
// from status. A nil status reports only "ok".
func NewHandler(gatherer prometheus.Gatherer, status StatusFunc) http.Handler {
	r := chi.NewRouter()

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s := Status{}
		if status != nil {
			s = status()
		}
		if s.Status == "" {
			s.Status = "ok"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s)
	})

	return r
}

// Server runs a handler until its context is cancelled.
type Server struct {
	srv    *http.Server
	logger log.Logger
}

// NewServer creates a server for addr.
func NewServer(addr string, handler http.Handler, logger log.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log.OrNoop(logger),
	}
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", log.String("addr", ln.Addr().String()))
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}
