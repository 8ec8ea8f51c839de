package api

import (
	"net/http"

	"github.com/okian/debtfx/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	frames FrameReader
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(frames FrameReader) *HealthHandler {
	return &HealthHandler{frames: frames}
}

type healthResponse struct {
	Status string `json:"status"`
	Frames int    `json:"frames"`
}

// HandleHealth handles GET /healthz. The viewer is healthy once frames are
// published.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	n := h.frames.Len(r.Context())
	if n == 0 {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "empty", Frames: 0})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Frames: n})
}

// MetricsHandler serves the custom metrics registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
