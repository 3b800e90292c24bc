package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Ingestion results.
const (
	ResultStored    = "stored"
	ResultInvalid   = "invalid"
	ResultDuplicate = "duplicate"
	ResultFailed    = "failed"
)

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mangarec_recommend_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mangarec_recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CorpusItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mangarec_corpus_items",
			Help: "Number of items in the most recently loaded corpus",
		},
	)

	VocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mangarec_vocabulary_size",
			Help: "Number of terms in the most recently built term matrix",
		},
	)

	// Matrix Cache Metrics
	MatrixCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mangarec_matrix_cache_hits_total",
			Help: "Total number of term matrix cache hits",
		},
	)

	MatrixCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mangarec_matrix_cache_misses_total",
			Help: "Total number of term matrix cache misses",
		},
	)

	// Ingestion Metrics
	IngestedItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mangarec_ingested_items_total",
			Help: "Total number of items processed by ingestion, by result",
		},
		[]string{"result"},
	)
)

// RecordRecommend records one recommendation request.
func RecordRecommend(outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordMatrixBuild records the size of a term matrix and whether it came from cache.
func RecordMatrixBuild(docs, vocabulary int, cached bool) {
	CorpusItems.Set(float64(docs))
	VocabularySize.Set(float64(vocabulary))
	if cached {
		MatrixCacheHits.Inc()
	} else {
		MatrixCacheMisses.Inc()
	}
}

// RecordIngested adds n items to the given ingestion result.
func RecordIngested(result string, n int) {
	if n <= 0 {
		return
	}
	IngestedItems.WithLabelValues(result).Add(float64(n))
}
