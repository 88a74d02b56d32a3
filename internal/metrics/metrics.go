package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis Metrics
var (
	// AnalysesTotal tracks completed analyses by backend and resulting label
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_analyses_total",
			Help: "Total sentiment analyses by backend and resulting label",
		},
		[]string{"backend", "label"},
	)

	// AnalysisDuration tracks end-to-end analysis latency by backend
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentiment_analysis_duration_seconds",
			Help:    "Sentiment analysis duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"backend"},
	)

	// PipelineErrorsTotal tracks failed pipeline invocations by backend
	PipelineErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_pipeline_errors_total",
			Help: "Total failed pipeline invocations by backend",
		},
		[]string{"backend"},
	)

	// BatchSize tracks the number of texts per batch request
	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentiment_batch_size",
			Help:    "Number of texts per batch request",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		},
	)
)

// Result Cache Metrics
var (
	// CacheHits tracks local in-memory result cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_hits_total",
			Help: "Total number of local result cache hits",
		},
	)

	// CacheMisses tracks local in-memory result cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_misses_total",
			Help: "Total number of local result cache misses",
		},
	)

	// CacheRedisHits tracks result lookups served from the Redis tier
	CacheRedisHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_redis_hits_total",
			Help: "Total number of result lookups served from the Redis tier",
		},
	)

	// CacheSize tracks current number of entries in the local cache
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "result_cache_entries",
			Help: "Current number of entries in the local result cache",
		},
	)

	// CacheEvictions tracks number of expired entries evicted
	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_evictions_total",
			Help: "Total number of expired result cache entries evicted",
		},
	)
)

// Build Information Metrics
var (
	// BuildInfo is a gauge that always returns 1, with build metadata as labels
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information with version, commit, build_time, and go_version labels (value is always 1)",
		},
		[]string{"version", "commit", "build_time", "go_version"},
	)
)

// HTTP Error Metrics
// Note: http_errors_total{type} is provided by internal/errors package
