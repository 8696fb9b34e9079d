// Package telemetry registers the prometheus metrics served on /metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the instrumentation counters for the research loop.
type Metrics struct {
	Searches       *prometheus.CounterVec
	CacheHits      prometheus.Counter
	RerankOutcomes *prometheus.CounterVec
	OracleLatency  prometheus.Histogram
	FetchFailures  prometheus.Counter
}

// New registers the metrics with reg. Pass prometheus.DefaultRegisterer to
// expose them through promhttp's default handler.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "baye_searches_total",
			Help: "Search provider calls by provider.",
		}, []string{"provider"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "baye_search_cache_hits_total",
			Help: "Search queries answered from the Redis cache.",
		}),
		RerankOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "baye_rerank_outcomes_total",
			Help: "Rerank outcomes by ladder path.",
		}, []string{"path"}),
		OracleLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "baye_oracle_latency_seconds",
			Help:    "Latency of scoring-oracle calls.",
			Buckets: prometheus.DefBuckets,
		}),
		FetchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "baye_fetch_failures_total",
			Help: "Page extractions that fell back to the search snippet.",
		}),
	}
}
