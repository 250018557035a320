package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks daily batches served from cache.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ga_batch_cache_hits_total",
			Help: "Total number of daily batches served from cache",
		},
	)

	// CacheMisses tracks daily batches that had to be fetched.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ga_batch_cache_misses_total",
			Help: "Total number of daily batch cache misses",
		},
	)

	// CacheSize tracks bytes written to the batch cache.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ga_batch_cache_size_bytes",
			Help: "Bytes written to the daily batch cache",
		},
	)

	// CacheErrors tracks cache operation errors.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ga_batch_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
