package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FactMetrics holds the Prometheus collectors for fact store operations
type FactMetrics struct {
	Requests *prometheus.CounterVec   // Requests by operation and result status
	Duration *prometheus.HistogramVec // Operation latency in seconds
	Votes    *prometheus.CounterVec   // Accepted votes by counter
	Created  prometheus.Counter       // Facts created
	HTTP     *prometheus.CounterVec   // HTTP responses by method, route and code
}

// NewFactMetrics registers the fact collectors on reg. Pass prometheus.NewRegistry()
// in tests to keep collectors isolated
func NewFactMetrics(reg prometheus.Registerer) *FactMetrics {
	factory := promauto.With(reg)

	return &FactMetrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "til_fact_requests_total",
			Help: "Total fact store operations by operation and status",
		}, []string{"operation", "status"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "til_fact_request_duration_seconds",
			Help:    "Fact store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		}, []string{"operation"}),
		Votes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "til_fact_votes_total",
			Help: "Total accepted votes by counter",
		}, []string{"counter"}),
		Created: factory.NewCounter(prometheus.CounterOpts{
			Name: "til_facts_created_total",
			Help: "Total facts created",
		}),
		HTTP: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "til_http_requests_total",
			Help: "Total HTTP responses by method, route and status code",
		}, []string{"method", "route", "code"}),
	}
}

// Observe records one operation. A nil receiver is a no-op
func (m *FactMetrics) Observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
	}

	m.Requests.WithLabelValues(operation, status).Inc()
	m.Duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// VoteAccepted counts a successful vote on counter
func (m *FactMetrics) VoteAccepted(counter string) {
	if m == nil {
		return
	}
	m.Votes.WithLabelValues(counter).Inc()
}

// FactCreated counts a successful submission
func (m *FactMetrics) FactCreated() {
	if m == nil {
		return
	}
	m.Created.Inc()
}

// ObserveHTTP counts one HTTP response. Unmatched routes are grouped under "unmatched"
func (m *FactMetrics) ObserveHTTP(method, route string, code int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTP.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}
