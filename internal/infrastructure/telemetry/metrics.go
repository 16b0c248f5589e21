package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Query metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zbxstats_queries_total",
			Help: "Total number of statistics queries by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "zbxstats_query_duration_seconds",
			Help:    "Statistics query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"kind"},
	)

	SeriesResampledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zbxstats_series_resampled_total",
			Help: "Total number of per-host series produced by the resampler",
		},
	)

	// Data source metrics
	DataSourceQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zbxstats_datasource_queries_total",
			Help: "Total number of raw sample queries by table and outcome",
		},
		[]string{"table", "status"},
	)

	SamplesIngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zbxstats_samples_ingested_total",
			Help: "Total number of history samples written through the ingest API",
		},
	)

	// Housekeeping metrics
	HousekeepingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zbxstats_housekeeping_runs_total",
			Help: "Total number of housekeeping passes by outcome",
		},
		[]string{"status"},
	)

	HousekeepingRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zbxstats_housekeeping_rows_total",
			Help: "Rows touched by housekeeping by operation",
		},
		[]string{"operation"},
	)
)

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// Status maps an error to the status label used by the counters
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
