// Package metrics provides Prometheus metrics for the gridbook season
// data service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus metrics for one service instance.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Snapshot metrics - the core unit of work.
	snapshotBuilds        prometheus.Counter
	snapshotBuildDuration prometheus.Histogram
	snapshotIncomplete    prometheus.Counter
	activeSeasonYear      prometheus.Gauge
	rosterDrivers         prometheus.Gauge
	rosterTeams           prometheus.Gauge

	// Dataset metrics - raw store health.
	datasetRecords    *prometheus.GaugeVec
	datasetLoads      prometheus.Counter
	datasetLoadErrors prometheus.Counter

	// Save-slot metrics.
	saveOps *prometheus.CounterVec

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
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
		namespace:        "gridbook",
		subsystem:        "season",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.snapshotBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_builds_total",
		Help:      "Total number of season snapshots assembled",
	})

	m.snapshotBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_build_duration_milliseconds",
		Help:      "Histogram of snapshot assembly duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.snapshotIncomplete = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_incomplete_total",
		Help:      "Snapshots assembled with an empty core collection (incomplete data condition)",
	})

	m.activeSeasonYear = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_year",
		Help:      "The season year of the currently active snapshot",
	})

	m.rosterDrivers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_drivers",
		Help:      "Driver count in the active snapshot",
	})

	m.rosterTeams = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_teams",
		Help:      "Team count in the active snapshot",
	})

	m.datasetRecords = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "dataset_records",
			Help:      "Raw record count per loaded dataset",
		},
		[]string{"dataset"},
	)

	m.datasetLoads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_loads_total",
		Help:      "Total number of successful raw store loads",
	})

	m.datasetLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_errors_total",
		Help:      "Total number of failed raw store loads",
	})

	m.saveOps = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "save_operations_total",
			Help:      "Save-slot operations by kind and outcome",
		},
		[]string{"operation", "outcome"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the registry backing the global manager, for the
// /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordSnapshotBuild records one snapshot assembly and its duration.
func RecordSnapshotBuild(durationMs float64) {
	globalManager.snapshotBuilds.Inc()
	globalManager.snapshotBuildDuration.Observe(durationMs)
}

// RecordSnapshotIncomplete counts a snapshot with an empty core collection.
func RecordSnapshotIncomplete() {
	globalManager.snapshotIncomplete.Inc()
}

// SetActiveSeason sets the active snapshot's season year gauge.
func SetActiveSeason(year int) {
	globalManager.activeSeasonYear.Set(float64(year))
}

// SetRosterSize sets the active snapshot's driver and team counts.
func SetRosterSize(drivers, teams int) {
	globalManager.rosterDrivers.Set(float64(drivers))
	globalManager.rosterTeams.Set(float64(teams))
}

// SetDatasetRecords sets the raw record count for one dataset.
func SetDatasetRecords(dataset string, count int) {
	globalManager.datasetRecords.WithLabelValues(dataset).Set(float64(count))
}

// RecordDatasetLoad counts one raw store load attempt.
func RecordDatasetLoad(err error) {
	if err != nil {
		globalManager.datasetLoadErrors.Inc()
		return
	}
	globalManager.datasetLoads.Inc()
}

// RecordSaveOperation counts one save-slot operation.
func RecordSaveOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	globalManager.saveOps.WithLabelValues(operation, outcome).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}
