package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/debtfx/internal/adapters/http/api"
	"github.com/okian/debtfx/internal/adapters/repository"
	"github.com/okian/debtfx/internal/domain/frame"
	. "github.com/smartystreets/goconvey/convey"
)

var pngStub = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func newMux(t *testing.T, years ...int) *http.ServeMux {
	t.Helper()
	store := repository.NewMemoryStore()
	entries := make([]repository.Entry, 0, len(years))
	for _, y := range years {
		entries = append(entries, repository.Entry{Summary: frame.Summary{Year: y, Drawn: 18}, PNG: pngStub})
	}
	if len(entries) > 0 {
		if err := store.Publish(context.Background(), entries); err != nil {
			t.Fatal(err)
		}
	}
	mux := http.NewServeMux()
	api.NewServer(store, api.WithPause(250*time.Millisecond)).Register(context.Background(), mux)
	return mux
}

func serve(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestFrames(t *testing.T) {
	Convey("Given a viewer with two published frames", t, func() {
		mux := newMux(t, 1995, 1994)

		Convey("When listing frames", func() {
			w := serve(mux, http.MethodGet, "/frames")

			Convey("Then years come back in order with the pause", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					PauseMS int             `json:"pause_ms"`
					Frames  []frame.Summary `json:"frames"`
				}
				So(json.NewDecoder(w.Body).Decode(&body), ShouldBeNil)
				So(body.PauseMS, ShouldEqual, 250)
				So(body.Frames, ShouldHaveLength, 2)
				So(body.Frames[0].Year, ShouldEqual, 1994)
				So(body.Frames[1].Year, ShouldEqual, 1995)
			})
		})

		Convey("When fetching a frame image", func() {
			w := serve(mux, http.MethodGet, "/frames/1994.png")

			Convey("Then the PNG bytes are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
				So(w.Body.Bytes(), ShouldResemble, pngStub)
			})
		})

		Convey("When fetching an unknown year", func() {
			w := serve(mux, http.MethodGet, "/frames/2030.png")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, "not_found")
			})
		})

		Convey("When the name is not a year image", func() {
			for _, path := range []string{"/frames/1994.gif", "/frames/abc.png"} {
				w := serve(mux, http.MethodGet, path)

				Convey("Then "+path+" is a bad request", func() {
					So(w.Code, ShouldEqual, http.StatusBadRequest)
				})
			}
		})

		Convey("When posting to /frames", func() {
			w := serve(mux, http.MethodPost, "/frames")

			Convey("Then the method is not allowed", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestHealthAndMetrics(t *testing.T) {
	Convey("Given an empty viewer", t, func() {
		mux := newMux(t)

		Convey("Then healthz reports unavailable", func() {
			w := serve(mux, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(w.Body.String(), ShouldContainSubstring, `"status":"empty"`)
		})
	})

	Convey("Given a viewer with frames", t, func() {
		mux := newMux(t, 1994)

		Convey("Then healthz reports ok", func() {
			w := serve(mux, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"frames":1`)
		})

		Convey("Then metrics include the HTTP counters", func() {
			_ = serve(mux, http.MethodGet, "/frames")
			w := serve(mux, http.MethodGet, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(strings.Contains(w.Body.String(), "debtfx_http_requests_total"), ShouldBeTrue)
		})
	})
}
