// Package query defines the immutable report query descriptor and the
// date-window arithmetic used to split a range into daily sub-queries.
package query

import (
	"errors"
	"fmt"
	"strings"
)

// Page size limits enforced by the Core Reporting API.
const (
	// DefaultPageSize is used when a query does not request a page size.
	DefaultPageSize = 1000

	// MaxPageSize is the hard per-call row limit. Larger requests are
	// capped server-side, so we cap them client-side with a warning.
	MaxPageSize = 10000
)

// ErrInvalidArgument indicates malformed caller input (negative page size,
// unparsable dates). It is detected before any network call.
var ErrInvalidArgument = errors.New("invalid argument")

// Query describes one logical report query. It is constructed once from
// external input and never mutated; the daily window and start index are
// supplied per call, not stored here.
type Query struct {
	// IDs is the view (profile) identifier set, e.g. "ga:12345678".
	IDs string `yaml:"ids"`

	// Dimensions, e.g. ["ga:date", "ga:country"].
	Dimensions []string `yaml:"dimensions"`

	// Metrics, e.g. ["ga:sessions", "ga:pageviews"]. At least one is required.
	Metrics []string `yaml:"metrics"`

	// Filters is an optional filter expression.
	Filters string `yaml:"filters,omitempty"`

	// Segment is an optional segment expression.
	Segment string `yaml:"segment,omitempty"`

	// Sort is an optional sort spec, e.g. ["-ga:sessions"].
	Sort []string `yaml:"sort,omitempty"`

	// MaxResults is the requested page size. Zero means DefaultPageSize.
	MaxResults int64 `yaml:"max_results,omitempty"`
}

// Validate checks the required fields and the page-size lower bound.
// The upper bound is not an error: page sizes above MaxPageSize are
// clamped at fetch time.
func (q Query) Validate() error {
	if q.IDs == "" {
		return fmt.Errorf("%w: ids is required", ErrInvalidArgument)
	}
	if len(q.Metrics) == 0 {
		return fmt.Errorf("%w: at least one metric is required", ErrInvalidArgument)
	}
	if q.MaxResults < 0 {
		return fmt.Errorf("%w: max_results must be positive (got %d)", ErrInvalidArgument, q.MaxResults)
	}
	return nil
}

// DimensionsExpr returns the dimensions as the comma-joined wire form.
func (q Query) DimensionsExpr() string {
	return strings.Join(q.Dimensions, ",")
}

// MetricsExpr returns the metrics as the comma-joined wire form.
func (q Query) MetricsExpr() string {
	return strings.Join(q.Metrics, ",")
}

// SortExpr returns the sort spec as the comma-joined wire form.
func (q Query) SortExpr() string {
	return strings.Join(q.Sort, ",")
}
