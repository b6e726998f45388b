// Package metrics exposes Prometheus counters for the HTTP surface and the
// score ledger on a dedicated registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	LedgerTeamPoints        = "team_points"
	LedgerPlayerPerformance = "player_performance"

	OutcomeOK     = "ok"
	OutcomeNoData = "no_data"
	OutcomeError  = "error"
)

// Manager owns the registry and every collector. A nil *Manager is a no-op.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	ledgerEntries     *prometheus.CounterVec
	aggregations      *prometheus.CounterVec
	quotaRejections   prometheus.Counter
	standingsExported prometheus.Counter
}

type Option func(*Manager)

func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "series_points",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method", "status_code"})

	m.ledgerEntries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ledger",
		Name:      "entries_total",
		Help:      "Score ledger entries recorded, by ledger",
	}, []string{"ledger"})

	m.aggregations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "standings",
		Name:      "aggregations_total",
		Help:      "Aggregation requests by kind and outcome",
	}, []string{"kind", "outcome"})

	m.quotaRejections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "users",
		Name:      "scorer_quota_rejections_total",
		Help:      "Scorer creations rejected because the quota is full",
	})

	m.standingsExported = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "standings",
		Name:      "exports_total",
		Help:      "Standings documents uploaded to object storage",
	})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Manager) RecordHTTPRequest(route, method, statusCode string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, statusCode).Observe(seconds)
}

func (m *Manager) RecordLedgerEntry(ledger string) {
	if m == nil {
		return
	}
	m.ledgerEntries.WithLabelValues(ledger).Inc()
}

func (m *Manager) RecordAggregation(kind, outcome string) {
	if m == nil {
		return
	}
	m.aggregations.WithLabelValues(kind, outcome).Inc()
}

func (m *Manager) RecordQuotaRejection() {
	if m == nil {
		return
	}
	m.quotaRejections.Inc()
}

func (m *Manager) RecordStandingsExport() {
	if m == nil {
		return
	}
	m.standingsExported.Inc()
}
