// Package cache provides a Redis-backed cache for completed daily report
// batches. A past day's report is immutable once the day has closed, which
// makes daily batches ideal cache entries: re-running an overlapping date
// range skips the API round trips for days already fetched.
package cache

import (
	"time"

	"github.com/konrad-woj/google-analytics/pkg/reporting"
)

// Entry is one cached daily batch: the day's stitched rows plus the schema
// and sampling state recorded from its first page.
type Entry struct {
	// Rows are all rows of the day, in fetch order.
	Rows [][]string `json:"rows"`

	// Headers is the day's column schema.
	Headers []reporting.ColumnHeader `json:"headers"`

	// Sampled marks whether the day's result was based on sampled data.
	Sampled bool `json:"sampled"`

	// SamplingRatio is the sampled percentage (0 when not sampled).
	SamplingRatio float64 `json:"sampling_ratio"`

	// CachedAt is when this batch was stored.
	CachedAt time.Time `json:"cached_at"`
}
