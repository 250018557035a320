// Package metrics provides the centralized Prometheus metrics reference for
// the analytics exporter. All metrics are defined in their respective packages
// (reporting, pagination, batch, cache) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the exporter.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/reporting):
//   - ga_requests_total{status} (Counter): Core Reporting API requests by outcome (ok, client, server, quota, network)
//   - ga_request_duration_seconds (Histogram): Core Reporting API request duration
//
// Retry Metrics (pkg/reporting):
//   - ga_retries_total{error_class} (Counter): Retry attempts by error class
//   - ga_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - ga_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Pagination Metrics (pkg/pagination):
//   - ga_pages_fetched_total (Counter): Result pages fetched
//   - ga_rows_fetched_total (Counter): Rows fetched across all pages
//   - ga_page_size_clamps_total (Counter): Requested page sizes clamped to the API maximum
//
// Batch Metrics (pkg/batch):
//   - ga_days_fetched_total (Counter): Single-day batches fetched from the API
//   - ga_sampled_days_total (Counter): Days whose responses contained sampled data
//
// Cache Metrics (pkg/cache):
//   - ga_batch_cache_hits_total (Counter): Daily batches served from Redis
//   - ga_batch_cache_misses_total (Counter): Daily batches absent from Redis
//   - ga_batch_cache_size_bytes (Gauge): Size of the last batch written
//   - ga_batch_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(ga_batch_cache_hits_total[5m])) /
//   (sum(rate(ga_batch_cache_hits_total[5m])) + sum(rate(ga_batch_cache_misses_total[5m])))
//
//   # Sampling Incidence
//   rate(ga_sampled_days_total[1h]) / rate(ga_days_fetched_total[1h])
//
//   # Request Error Rate
//   sum(rate(ga_requests_total{status!="ok"}[5m]))
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(ga_request_duration_seconds_bucket[5m]))
//
//   # Quota Pressure
//   rate(ga_retries_total{error_class="quota"}[5m])
