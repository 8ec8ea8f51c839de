// Package api serves rendered frames, health and metrics over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/debtfx/internal/adapters/repository"
	"github.com/okian/debtfx/internal/domain/frame"
)

// FrameReader is the read side of the frame store.
type FrameReader interface {
	Get(ctx context.Context, year int) (repository.Entry, error)
	Summaries(ctx context.Context) []frame.Summary
	Len(ctx context.Context) int
}

// Server wires HTTP routes for the viewer.
type Server struct {
	healthHandler *HealthHandler
	framesHandler *FramesHandler
}

// Option configures a Server.
type Option func(*Server)

// WithPause sets the per-frame display time advertised to clients.
func WithPause(d time.Duration) Option {
	return func(s *Server) {
		if d >= 0 {
			s.framesHandler.pause = d
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(frames FrameReader, opts ...Option) *Server {
	s := &Server{
		healthHandler: NewHealthHandler(frames),
		framesHandler: NewFramesHandler(frames),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", MetricsHandler())
	mux.HandleFunc("GET /frames", MetricsMiddleware(s.framesHandler.HandleList, "frames"))
	mux.HandleFunc("GET /frames/{file}", MetricsMiddleware(s.framesHandler.HandleImage, "frame_image"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
