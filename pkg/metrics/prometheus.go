// Package metrics provides Prometheus metrics for the debtfx pipeline and viewer.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector of one registry.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Pipeline
	rowsLoaded       *prometheus.CounterVec
	lookupFailures   *prometheus.CounterVec
	columnsScaled    *prometheus.CounterVec
	countriesSkipped *prometheus.CounterVec
	lastRunDuration  prometheus.Gauge
	lastRunUnix      prometheus.Gauge

	// Rendering
	framesRendered     prometheus.Counter
	frameRenderLatency prometheus.Histogram
	framesStored       prometheus.Gauge
	queueDepth         prometheus.Gauge
	queueRejected      *prometheus.CounterVec
	workersActive      prometheus.Gauge
	componentErrors    *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "debtfx",
		subsystem:        "pipeline",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.rowsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_loaded_total",
		Help:        "Rows read from each input file",
		ConstLabels: labels,
	}, []string{"source"})

	m.lookupFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "lookup_failures_total",
		Help:        "Failed code or name lookups by kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.columnsScaled = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "columns_scaled_total",
		Help:        "Year columns min-max scaled per table",
		ConstLabels: labels,
	}, []string{"table"})

	m.countriesSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "countries_skipped_total",
		Help:        "Country-years left out of a frame for missing data",
		ConstLabels: labels,
	}, []string{"code"})

	m.lastRunDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_duration_milliseconds",
		Help:        "Wall time of the most recent pipeline run",
		ConstLabels: labels,
	})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_timestamp_seconds",
		Help:        "Unix time the most recent pipeline run finished",
		ConstLabels: labels,
	})

	m.framesRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "render",
		Name:        "frames_rendered_total",
		Help:        "Frames drawn to images",
		ConstLabels: labels,
	})

	m.frameRenderLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "render",
		Name:        "frame_latency_milliseconds",
		Help:        "Time to draw one frame in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.framesStored = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "render",
		Name:        "frames_stored",
		Help:        "Frames currently held by the viewer store",
		ConstLabels: labels,
	})

	m.queueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "render",
		Name:        "queue_depth",
		Help:        "Frames waiting for a render worker",
		ConstLabels: labels,
	})

	m.queueRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "render",
		Name:        "queue_rejected_total",
		Help:        "Frames the render queue refused, by reason",
		ConstLabels: labels,
	}, []string{"reason"})

	m.workersActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "render",
		Name:        "workers_active",
		Help:        "Render workers currently running",
		ConstLabels: labels,
	})

	m.componentErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_total",
		Help:        "Errors by component and type",
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "HTTP requests by endpoint, method and status",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "errors_total",
		Help:        "HTTP errors by endpoint and type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})
}

// RecordRowsLoaded adds n rows read from source.
func RecordRowsLoaded(source string, n int) {
	globalManager.rowsLoaded.WithLabelValues(source).Add(float64(n))
}

// RecordLookupFailure counts a failed lookup of the given kind ("code" or "name").
func RecordLookupFailure(kind string) {
	globalManager.lookupFailures.WithLabelValues(kind).Inc()
}

// RecordColumnsScaled adds n scaled columns for table.
func RecordColumnsScaled(table string, n int) {
	globalManager.columnsScaled.WithLabelValues(table).Add(float64(n))
}

// RecordCountrySkipped counts one country-year dropped from a frame.
func RecordCountrySkipped(code string) {
	globalManager.countriesSkipped.WithLabelValues(code).Inc()
}

// RecordRun stores the duration of a finished pipeline run.
func RecordRun(d time.Duration) {
	globalManager.lastRunDuration.Set(float64(d.Milliseconds()))
	globalManager.lastRunUnix.SetToCurrentTime()
}

// RecordFrameRendered increments the rendered frames counter.
func RecordFrameRendered() {
	globalManager.framesRendered.Inc()
}

// RecordFrameRenderLatency records the time spent drawing one frame.
func RecordFrameRenderLatency(latencyMs float64) {
	globalManager.frameRenderLatency.Observe(latencyMs)
}

// UpdateFramesStored sets the number of frames held for serving.
func UpdateFramesStored(n int) {
	globalManager.framesStored.Set(float64(n))
}

// UpdateRenderQueueDepth sets the number of queued frames.
func UpdateRenderQueueDepth(n int) {
	globalManager.queueDepth.Set(float64(n))
}

// RecordRenderQueueRejected counts a frame the queue refused.
func RecordRenderQueueRejected(reason string) {
	globalManager.queueRejected.WithLabelValues(reason).Inc()
}

// UpdateWorkerActiveCount sets the number of running render workers.
func UpdateWorkerActiveCount(n int) {
	globalManager.workersActive.Set(float64(n))
}

// RecordErrorByComponent records an error raised by component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.componentErrors.WithLabelValues(component, errorType).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error for a specific endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the registry in text exposition format, for runs that
// exit before anything could scrape them.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
