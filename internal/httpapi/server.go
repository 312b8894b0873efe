// Package httpapi serves the read-only plain-text listing of the registry.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m3rciful/ipbot/core/logger"
	"github.com/m3rciful/ipbot/core/metrics"
)

// Lister returns the registered addresses in insertion order.
type Lister interface {
	List() []string
}

// NewRouter builds the routes: GET / lists entries one per line, /healthz
// answers ok and /metrics exposes Prometheus series.
func NewRouter(list Lister) *mux.Router {
	r := mux.NewRouter()
	r.Use(observe)
	r.HandleFunc("/", listHandler(list)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	return r
}

func listHandler(list Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(strings.Join(list.List(), "\n")))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}

func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		} else {
			route = "unmatched"
		}
		metrics.ObserveHTTP(route, rec.code)
		logger.HTTP.Debug("request",
			slog.String("event", "http.request"),
			slog.String("method", r.Method),
			slog.String("path", logger.SanitizeLimit(r.URL.Path, 128)),
			slog.Int("code", rec.code),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
		)
	})
}

// Server runs the listing endpoint in the background.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// New prepares a server on addr.
func New(addr string, list Lister) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           NewRouter(list),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}}
}

// Addr returns the bound address once Start succeeded.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.srv.Addr
}

// Start binds the listener and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("httpapi: listen %s: %w", s.srv.Addr, err)
	}
	s.ln = ln
	logger.HTTP.Info("listening",
		slog.String("event", "http.start"),
		slog.String("listen", ln.Addr().String()),
	)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.HTTP.Error("serve failed",
				slog.String("event", "http.serve"),
				slog.String("err", err.Error()),
			)
		}
	}()
	return nil
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("httpapi: shutdown: %w", err)
	}
	logger.HTTP.Info("stopped", slog.String("event", "http.stop"))
	return nil
}
