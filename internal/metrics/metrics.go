// Package metrics exposes Prometheus instrumentation for the query surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors tracked by the explorer service.
type Metrics struct {
	registry *prometheus.Registry

	QueriesTotal      *prometheus.CounterVec
	QueryErrorsTotal  *prometheus.CounterVec
	SearchCacheHits   prometheus.Counter
	SearchCacheMisses prometheus.Counter
}

// New builds and registers the collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ppi",
			Name:      "queries_total",
			Help:      "Number of query operations executed, by operation.",
		}, []string{"operation"}),
		QueryErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ppi",
			Name:      "query_errors_total",
			Help:      "Number of query operations that returned an error, by operation.",
		}, []string{"operation"}),
		SearchCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ppi",
			Name:      "search_cache_hits_total",
			Help:      "Search results served from the in-process cache.",
		}),
		SearchCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ppi",
			Name:      "search_cache_misses_total",
			Help:      "Search requests that had to hit the dataset.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		m.QueriesTotal,
		m.QueryErrorsTotal,
		m.SearchCacheHits,
		m.SearchCacheMisses,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
