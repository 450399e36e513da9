package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbnail_normalizer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thumbnail_normalizer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thumbnail_normalizer_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Decoder metrics
var (
	DecodesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbnail_normalizer_decodes_total",
			Help: "Total number of wire record decodes by record shape and outcome",
		},
		[]string{"record", "outcome"},
	)

	DecodeAnomalies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbnail_normalizer_decode_anomalies_total",
			Help: "Total number of recoverable protocol violations seen while decoding",
		},
		[]string{"kind"},
	)

	MinithumbnailExpansions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbnail_normalizer_minithumbnail_expansions_total",
			Help: "Total number of minithumbnail expansion attempts by status",
		},
		[]string{"status"},
	)
)

// Registry metrics
var (
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbnail_normalizer_registrations_total",
			Help: "Total number of registry operations by kind",
		},
		[]string{"kind"},
	)

	RegistryQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbnail_normalizer_registry_queries_total",
			Help: "Total number of registry database queries",
		},
		[]string{"operation", "status"},
	)

	RegistryQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thumbnail_normalizer_registry_query_duration_seconds",
			Help:    "Registry database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	RegistryFilesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thumbnail_normalizer_registry_files",
			Help: "Number of files currently registered",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "thumbnail_normalizer_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
