package main

import (
	"bytes"
	"context"
	"errors"
	"image/gif"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/debtfx/internal/adapters/repository"
	"github.com/okian/debtfx/internal/config"
	"github.com/okian/debtfx/internal/domain/frame"
	"github.com/smartystreets/goconvey/convey"
)

// clearEnv removes DEBTFX_* variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, config.EnvPrefix) {
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the root command", t, func() {
		clearEnv(t)

		convey.Convey("Then it registers the subcommands", func() {
			root := newRootCmd()
			var names []string
			for _, c := range root.Commands() {
				names = append(names, c.Name())
			}
			convey.So(names, convey.ShouldContain, "render")
			convey.So(names, convey.ShouldContain, "serve")
			convey.So(names, convey.ShouldContain, "sample")
		})

		convey.Convey("When the year range is inverted", func() {
			_, _, err := execute("render", "--data-dir", t.TempDir(), "--first-year", "2000", "--last-year", "1999")

			convey.Convey("Then it fails validation", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the inputs are missing", func() {
			_, _, err := execute("render", "--data-dir", t.TempDir())

			convey.Convey("Then render fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestSampleAndRender(t *testing.T) {
	convey.Convey("Given a generated dataset", t, func() {
		clearEnv(t)
		dir := t.TempDir()
		out, _, err := execute("sample", "--data-dir", dir)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldContainSubstring, "exchange_rates.csv")

		convey.Convey("When rendering four years", func() {
			gifPath := filepath.Join(dir, "out", "debt.gif")
			framesDir := filepath.Join(dir, "frames")
			metricsFile := filepath.Join(dir, "debtfx.prom")
			out, _, err := execute("render",
				"--data-dir", dir,
				"--output", gifPath,
				"--frames-dir", framesDir,
				"--metrics-file", metricsFile,
				"--first-year", "1996", "--last-year", "1999",
				"--width", "8", "--height", "5", "--dpi", "20",
				"--pause", "250",
				"--workers", "2",
			)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then one summary line is printed per year", func() {
				for _, y := range []string{"1996", "1997", "1998", "1999"} {
					convey.So(out, convey.ShouldContainSubstring, y)
				}
				convey.So(out, convey.ShouldContainSubstring, "euro")
			})

			convey.Convey("Then the GIF holds four frames at the pause", func() {
				fh, err := os.Open(gifPath)
				convey.So(err, convey.ShouldBeNil)
				defer func() { _ = fh.Close() }()
				g, err := gif.DecodeAll(fh)
				convey.So(err, convey.ShouldBeNil)
				convey.So(g.Image, convey.ShouldHaveLength, 4)
				convey.So(g.Delay[0], convey.ShouldEqual, 25)
			})

			convey.Convey("Then PNGs and the metrics textfile are written", func() {
				_, err := os.Stat(filepath.Join(framesDir, "1998.png"))
				convey.So(err, convey.ShouldBeNil)
				body, err := os.ReadFile(metricsFile)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(body), convey.ShouldContainSubstring, "debtfx_render_frames_rendered_total")
			})
		})
	})
}

func TestMux(t *testing.T) {
	convey.Convey("Given a mux over a published store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		err := store.Publish(ctx, []repository.Entry{
			{Summary: frame.Summary{Year: 1994, Drawn: 18}, PNG: []byte("\x89PNG")},
		})
		convey.So(err, convey.ShouldBeNil)
		mux := newMux(ctx, store, 250*time.Millisecond)

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			return w
		}

		convey.Convey("Then every surface answers", func() {
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/frames").Body.String(), convey.ShouldContainSubstring, `"pause_ms":250`)
			convey.So(get("/frames/1994.png").Header().Get("Content-Type"), convey.ShouldEqual, "image/png")
			convey.So(get("/frames/2000.png").Code, convey.ShouldEqual, http.StatusNotFound)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/metrics").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/").Body.String(), convey.ShouldContainSubstring, "<html")
		})
	})
}
