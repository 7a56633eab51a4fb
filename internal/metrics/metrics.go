package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatasetLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamdash_dataset_loads_total",
			Help: "Dataset load attempts by outcome",
		},
		[]string{"outcome"}, // "ok", "retrieval_error", "schema_error"
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "streamdash_dataset_load_duration_seconds",
			Help:    "Time spent fetching, parsing and validating the dataset",
			Buckets: prometheus.DefBuckets,
		},
	)

	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "streamdash_dataset_rows",
			Help: "Number of title records in the current session",
		},
	)

	ViewRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamdash_view_renders_total",
			Help: "Dashboard views rendered",
		},
		[]string{"view"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamdash_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streamdash_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordDatasetLoad records one load attempt.
func RecordDatasetLoad(outcome string, duration time.Duration, rows int) {
	DatasetLoads.WithLabelValues(outcome).Inc()
	DatasetLoadDuration.Observe(duration.Seconds())
	if outcome == "ok" {
		DatasetRows.Set(float64(rows))
	}
}

// RecordViewRender counts one render of the named view.
func RecordViewRender(view string) {
	ViewRenders.WithLabelValues(view).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
