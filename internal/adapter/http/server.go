// Package http exposes the inbound HTTP surface: the search endpoint, the
// test page, and the health and metrics probes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/top-places-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PlaceSearcher serves validated queries and reports cache occupancy.
type PlaceSearcher interface {
	TopPlaces(ctx context.Context, q domain.SearchQuery) (*domain.SearchResponse, error)
	CacheLen() int
}

// Server exposes the /top search endpoint plus /, /healthz, and /metrics.
type Server struct {
	httpServer *http.Server
	service    PlaceSearcher
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(addr string, service PlaceSearcher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /top", s.handleTop)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q, err := domain.ParseQuery(domain.RawQuery{
		Term:    params.Get("term"),
		Lat:     params.Get("lat"),
		Lng:     params.Get("lng"),
		RadiusM: params.Get("radius_m"),
		Limit:   params.Get("limit"),
		OpenNow: params.Get("open_now"),
		Price:   params.Get("price"),
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp, err := s.service.TopPlaces(r.Context(), q)
	if err != nil {
		status := statusForError(err)
		s.logger.Warn("search failed", "term", q.Term, "status", status, "error", err)
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"service":    "top-places-api",
		"cache_size": s.service.CacheLen(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexHTML))
}

// statusForError maps the failure taxonomy to HTTP status codes. Validation
// failures are handled before this point; anything unrecognized counts as an
// upstream failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
