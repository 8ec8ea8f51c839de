package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func familyNames(t *testing.T, g prometheus.Gatherer) []string {
	t.Helper()
	mfs, err := g.Gather()
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(mfs))
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	return names
}

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("stage"),
				WithHistogramBuckets([]float64{1, 2}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.framesRendered.Inc()
			manager.rowsLoaded.WithLabelValues("debt").Add(3)

			Convey("Then collectors carry the namespace and subsystem", func() {
				names := familyNames(t, registry)
				So(names, ShouldContain, "test_render_frames_rendered_total")
				So(names, ShouldContain, "test_stage_rows_loaded_total")
			})
		})

		Convey("When empty options are given", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithConstLabels(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "debtfx")
				So(manager.subsystem, ShouldEqual, "pipeline")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
				So(manager.constLabels, ShouldNotBeNil)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		So(func() {
			RecordRowsLoaded("codes", 19)
			RecordLookupFailure("name")
			RecordColumnsScaled("debt", 28)
			RecordCountrySkipped("IND")
			RecordRun(1500 * time.Millisecond)
			RecordFrameRendered()
			RecordFrameRenderLatency(12.5)
			UpdateFramesStored(28)
			RecordHTTPRequest("/frames", "GET", "200")
			RecordHTTPRequestDuration("/frames", "GET", "200", 3)
			RecordErrorByEndpoint("/frames/{year}.png", "GET", "not_found")
			UpdateRenderQueueDepth(3)
			RecordRenderQueueRejected("queue_full")
			UpdateWorkerActiveCount(2)
			RecordErrorByComponent("worker", "render_error")
		}, ShouldNotPanic)

		Convey("Then the custom registry exposes them", func() {
			names := familyNames(t, GetRegistry())
			So(names, ShouldContain, "debtfx_pipeline_countries_skipped_total")
			So(names, ShouldContain, "debtfx_render_frames_stored")
			So(names, ShouldContain, "debtfx_http_requests_total")
			So(names, ShouldContain, "debtfx_render_queue_rejected_total")
			So(names, ShouldContain, "debtfx_pipeline_errors_total")
			So(names, ShouldNotContain, "go_goroutines")
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a recorded frame", t, func() {
		RecordFrameRendered()

		Convey("When writing the textfile", func() {
			path := filepath.Join(t.TempDir(), "debtfx.prom")
			So(WriteTextfile(path), ShouldBeNil)

			Convey("Then it holds the exposition text", func() {
				body, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(strings.Contains(string(body), "debtfx_render_frames_rendered_total"), ShouldBeTrue)
			})
		})

		Convey("When the directory does not exist", func() {
			err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))

			Convey("Then it fails with ErrWriteTextfile", func() {
				So(errors.Is(err, ErrWriteTextfile), ShouldBeTrue)
			})
		})
	})
}
