package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/debtfx/internal/adapters/repository"
	"github.com/okian/debtfx/internal/domain/frame"
)

// FramesHandler lists frames and serves their images.
type FramesHandler struct {
	frames FrameReader
	pause  time.Duration
}

// NewFramesHandler creates a frames handler with a 400ms pause.
func NewFramesHandler(frames FrameReader) *FramesHandler {
	return &FramesHandler{frames: frames, pause: 400 * time.Millisecond}
}

type listResponse struct {
	PauseMS int64           `json:"pause_ms"`
	Frames  []frame.Summary `json:"frames"`
}

// HandleList handles GET /frames.
func (h *FramesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{
		PauseMS: h.pause.Milliseconds(),
		Frames:  h.frames.Summaries(r.Context()),
	})
}

// HandleImage handles GET /frames/{year}.png.
func (h *FramesHandler) HandleImage(w http.ResponseWriter, r *http.Request) {
	year, err := parseImageName(r.PathValue("file"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	e, err := h.frames.Get(r.Context(), year)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(e.PNG)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(e.PNG)
}

// parseImageName accepts "1994.png".
func parseImageName(name string) (int, error) {
	stem, ok := strings.CutSuffix(name, ".png")
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a png", ErrBadRequest, name)
	}
	year, err := strconv.Atoi(stem)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a year", ErrBadRequest, stem)
	}
	return year, nil
}
