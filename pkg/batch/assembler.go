// Package batch stitches paginated daily responses into whole-day batches
// and drives a date range day by day into one coherent dataset.
//
// The daily decomposition is the core policy of this exporter: the reporting
// API degrades accuracy via statistical sampling once a query's matched row
// volume crosses a threshold, and one day's rows usually stay below it. The
// price is one API round trip (plus pagination) per calendar day.
package batch

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/konrad-woj/google-analytics/pkg/logging"
	"github.com/konrad-woj/google-analytics/pkg/pagination"
	"github.com/konrad-woj/google-analytics/pkg/query"
	"github.com/konrad-woj/google-analytics/pkg/reporting"
)

// Prometheus metrics for batch assembly.
var (
	gaDaysFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ga_days_fetched_total",
		Help: "Total daily batches fetched from the reporting API",
	})

	gaSampledDaysTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ga_sampled_days_total",
		Help: "Total daily batches based on sampled data",
	})
)

// DailyResult is one day's stitched batch: all pages' rows in fetch order,
// the schema from the day's first page, and the sampling state.
type DailyResult struct {
	Rows          [][]string
	Headers       []reporting.ColumnHeader
	Sampled       bool
	SamplingRatio float64
}

// Assembler drives the page fetcher across all pages of a single day.
type Assembler struct {
	fetcher *pagination.Fetcher
	logger  zerolog.Logger
}

// NewAssembler creates a daily batch assembler over the reporting service.
func NewAssembler(svc reporting.Service) *Assembler {
	return &Assembler{
		fetcher: pagination.NewFetcher(svc),
		logger:  logging.NewLogger("batch"),
	}
}

// AssembleDay fetches every page of one day's sub-query and concatenates
// the rows in page order. The first page carries the metadata that plans
// the rest, so it is always fetched before anything else. Any fetch failure
// aborts the whole day; rows already accumulated are discarded.
func (a *Assembler) AssembleDay(ctx context.Context, q query.Query, day query.DateWindow) (*DailyResult, error) {
	first, err := a.fetcher.FetchPage(ctx, q, day, 1, q.MaxResults)
	if err != nil {
		return nil, err
	}

	result := &DailyResult{
		Rows:    first.Rows,
		Headers: first.Headers,
	}

	if first.ContainsSampledData {
		result.Sampled = true
		result.SamplingRatio = first.SamplingRatio()
		gaSampledDaysTotal.Inc()
		a.logger.Warn().
			Str("date", day.StartString()).
			Float64("sampling_pct", result.SamplingRatio).
			Msg("Results are based on sampled data")
	}

	// The plan is derived once from the first page's metadata; the first
	// start index is the page already in hand.
	starts := pagination.PageStarts(first.ItemsPerPage, first.TotalResults)
	if len(starts) > 1 {
		for _, start := range starts[1:] {
			page, err := a.fetcher.FetchPage(ctx, q, day, start, q.MaxResults)
			if err != nil {
				return nil, err
			}
			result.Rows = append(result.Rows, page.Rows...)
		}
	}

	gaDaysFetchedTotal.Inc()
	return result, nil
}
