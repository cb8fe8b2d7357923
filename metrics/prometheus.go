package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemoteRequestDurationHistogram tracks the duration of requests to remote data sources
	RemoteRequestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "remote_request_duration_seconds",
			Help: "Time taken by HTTP requests issued by remote data sources",
		},
		[]string{"source", "method"},
	)

	// RemoteRequestsTotal counts requests to remote data sources by status
	// Cardinality: sources × ~5 statuses (success, error, rate_limited, timeout, not_found)
	RemoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "remote_requests_total",
			Help: "Total number of HTTP requests issued by remote data sources",
		},
		[]string{"source", "status"},
	)

	// RemoteRetriesTotal counts retry attempts per remote data source
	RemoteRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "remote_retry_attempts_total",
			Help: "Total number of retry attempts per remote data source",
		},
		[]string{"source"},
	)
)

// RemoteStatusHandler records request statuses and retries for one remote source
type RemoteStatusHandler struct {
	source string
}

// NewRemoteStatusHandler creates a status handler labelled with the source name
func NewRemoteStatusHandler(source string) *RemoteStatusHandler {
	return &RemoteStatusHandler{source: source}
}

// OnRequest records an HTTP request with its status
func (h *RemoteStatusHandler) OnRequest(status string) {
	RemoteRequestsTotal.WithLabelValues(h.source, status).Inc()
}

// OnRetry records an HTTP retry attempt
func (h *RemoteStatusHandler) OnRetry() {
	RemoteRetriesTotal.WithLabelValues(h.source).Inc()
}

// RecordRemoteRequest records the duration of a single remote request
func RecordRemoteRequest(source, method string, duration time.Duration) {
	RemoteRequestDurationHistogram.WithLabelValues(source, method).Observe(duration.Seconds())
}
