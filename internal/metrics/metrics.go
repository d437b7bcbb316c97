package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reconciliation metrics, labeled by entity family.
var (
	ReconcileRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cruxsync_reconcile_runs_total",
			Help: "Completed reconciliation calls",
		},
		[]string{"entity", "outcome"},
	)

	ReconcileUpserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cruxsync_reconcile_upserts_total",
			Help: "Records upserted by reconciliation",
		},
		[]string{"entity"},
	)

	ReconcileDeletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cruxsync_reconcile_deletes_total",
			Help: "Records deleted by purge-by-absence",
		},
		[]string{"entity"},
	)

	ReconcileChildRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cruxsync_reconcile_child_rows_total",
			Help: "Hold rows written by child full replacement",
		},
	)

	ReconcileSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cruxsync_reconcile_skipped_total",
			Help: "Malformed remote records skipped",
		},
		[]string{"entity"},
	)

	ReconcileDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cruxsync_reconcile_duration_seconds",
			Help:    "Reconciliation call duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity"},
	)
)

// Eviction metrics.
var (
	GymsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cruxsync_gyms_evicted_total",
			Help: "Stale unpinned gyms removed by the eviction policy",
		},
	)
)

// HTTP metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cruxsync_http_requests_total",
			Help: "HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cruxsync_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
