package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemoteRequestLatency tracks the duration of individual HTTP
	// calls against the remote table API, including retried
	// attempts (each attempt is observed separately).
	RemoteRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remote_table_request_duration_seconds",
		Help:    "Duration of requests against the remote table API",
		Buckets: prometheus.DefBuckets,
	}, []string{"target", "method", "status"})

	// RemoteRetries counts retried attempts per table or function.
	RemoteRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_table_retries_total",
		Help: "Number of retried requests against the remote table API",
	}, []string{"target"})

	// RemoteFailures counts calls that failed after all retry
	// attempts were exhausted, by failure class.
	RemoteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_table_failures_total",
		Help: "Number of remote table calls that failed for good",
	}, []string{"target", "kind"})
)

var (
	// QueryDuration tracks end to end engine operations, joins and
	// sorting included.
	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "engine_query_duration_seconds",
		Help:    "Duration of engine queries (all remote fetches and joins)",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)
