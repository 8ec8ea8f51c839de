// Package site serves the embedded animation viewer page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the viewer page and its assets at /.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /", http.FileServer(FS()))
}
