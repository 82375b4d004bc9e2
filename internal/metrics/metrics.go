package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "price_optimizer"

// Metrics holds the Prometheus collectors of the service
type Metrics struct {
	Optimizations    *prometheus.CounterVec
	Duration         *prometheus.HistogramVec
	UpstreamFailures *prometheus.CounterVec
	Degraded         *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	Messages         *prometheus.CounterVec
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Optimizations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "optimizations_total",
			Help:      "Completed price optimizations by objective and risk level.",
		}, []string{"objective", "risk"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of engine use cases.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		UpstreamFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_failures_total",
			Help:      "Upstream fetches that failed after retries.",
		}, []string{"source"}),
		Degraded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_results_total",
			Help:      "Results produced on a degraded path, by warning.",
		}, []string{"reason"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache and outcome.",
		}, []string{"cache", "outcome"}),
		Messages: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_messages_total",
			Help:      "Consumed optimization requests by status.",
		}, []string{"status"}),
	}
}
