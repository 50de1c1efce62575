package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation Prometheus metrics.
var (
	RecommendRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "assessrec",
			Name:      "recommend_requests_total",
			Help:      "Total number of recommendation requests",
		},
	)

	RecommendResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "assessrec",
			Name:      "recommend_results_returned",
			Help:      "Number of recommendations returned per request",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)

	RecommendFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "assessrec",
			Name:      "recommend_fallbacks_total",
			Help:      "Requests answered by the single-result fallback after the duration filter emptied the list",
		},
	)

	FetchFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "assessrec",
			Name:      "fetch_failures_total",
			Help:      "URL fetches that failed and were skipped",
		},
	)

	FetchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assessrec",
			Name:      "fetch_cache_total",
			Help:      "URL content cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var recMetricsRegistered bool

// RegisterRecommendMetrics registers recommendation metrics. Must be called once from main.
func RegisterRecommendMetrics() {
	if recMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendRequestsTotal)
	prometheus.MustRegister(RecommendResultsReturned)
	prometheus.MustRegister(RecommendFallbacksTotal)
	prometheus.MustRegister(FetchFailuresTotal)
	prometheus.MustRegister(FetchCacheTotal)
	recMetricsRegistered = true
}
