// Package metrics provides Prometheus metrics for the vote and market endpoints.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's collectors on its own registry, so several
// instances (one per test server) can coexist. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	VotesRecorded       *prometheus.CounterVec
	VoteRejections      *prometheus.CounterVec
	StoreErrors         *prometheus.CounterVec
	WindowLag           prometheus.Counter
	UpstreamRequests    *prometheus.CounterVec
	UpstreamLatency     *prometheus.HistogramVec
	MarketsConsolidated prometheus.Gauge
}

// New creates a Metrics instance with all collectors registered.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "market_pulse"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		VotesRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "votes",
			Name:      "recorded_total",
			Help:      "Total number of votes recorded by choice",
		}, []string{"choice"}),
		VoteRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "votes",
			Name:      "rejected_total",
			Help:      "Total number of votes rejected by reason",
		}, []string{"reason"}),
		StoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "errors_total",
			Help:      "Total number of storage errors by operation",
		}, []string{"operation"}),
		WindowLag: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "votes",
			Name:      "window_increment_failures_total",
			Help:      "Votes whose market aggregate was updated but whose window aggregate was not",
		}),
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of upstream API requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		UpstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream API request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		MarketsConsolidated: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "markets_consolidated",
			Help:      "Number of markets returned by the last consolidation",
		}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordVote(choice string) {
	if m == nil {
		return
	}
	m.VotesRecorded.WithLabelValues(choice).Inc()
}

func (m *Metrics) RecordRejection(reason string) {
	if m == nil {
		return
	}
	m.VoteRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordStoreError(operation string) {
	if m == nil {
		return
	}
	m.StoreErrors.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordWindowLag() {
	if m == nil {
		return
	}
	m.WindowLag.Inc()
}

// RecordUpstream records one upstream call. err == nil counts as "ok".
func (m *Metrics) RecordUpstream(endpoint string, seconds float64, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	m.UpstreamLatency.WithLabelValues(endpoint).Observe(seconds)
}

func (m *Metrics) SetMarketsConsolidated(n int) {
	if m == nil {
		return
	}
	m.MarketsConsolidated.Set(float64(n))
}
