package pagination

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/konrad-woj/google-analytics/pkg/logging"
	"github.com/konrad-woj/google-analytics/pkg/query"
	"github.com/konrad-woj/google-analytics/pkg/reporting"
)

// Prometheus metrics for page fetching.
var (
	gaPagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ga_pages_fetched_total",
		Help: "Total result pages fetched",
	})

	gaRowsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ga_rows_fetched_total",
		Help: "Total result rows fetched across all pages",
	})

	gaPageSizeClampsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ga_page_size_clamps_total",
		Help: "Total requests whose page size was clamped to the API maximum",
	})
)

// Fetcher issues one bounded query per call against the reporting service
// and reports pagination progress.
type Fetcher struct {
	svc    reporting.Service
	logger zerolog.Logger
}

// NewFetcher creates a page fetcher over the given reporting service.
func NewFetcher(svc reporting.Service) *Fetcher {
	return &Fetcher{
		svc:    svc,
		logger: logging.NewLogger("pagination"),
	}
}

// FetchPage fetches the rows at startIndex for a single day's window.
//
// pageSize 0 falls back to the default; a negative value is invalid input;
// a value above the API maximum is clamped with a warning rather than
// rejected, mirroring the server-side cap. Transport errors propagate
// unchanged; retry is the reporting service's concern.
func (f *Fetcher) FetchPage(ctx context.Context, q query.Query, day query.DateWindow, startIndex, pageSize int64) (*reporting.Page, error) {
	if pageSize == 0 {
		pageSize = query.DefaultPageSize
	}
	if pageSize < 0 {
		return nil, fmt.Errorf("%w: page size must be positive (got %d)", query.ErrInvalidArgument, pageSize)
	}
	if pageSize > query.MaxPageSize {
		f.logger.Warn().
			Int64("requested", pageSize).
			Int64("max", query.MaxPageSize).
			Msg("Page size clamped to the API maximum")
		gaPageSizeClampsTotal.Inc()
		pageSize = query.MaxPageSize
	}

	page, err := f.svc.Query(ctx, reporting.Request{
		Query:      q,
		Window:     day,
		StartIndex: startIndex,
		MaxResults: pageSize,
	})
	if err != nil {
		return nil, err
	}

	gaPagesFetchedTotal.Inc()
	gaRowsFetchedTotal.Add(float64(len(page.Rows)))

	lastIndex := startIndex + page.ItemsPerPage - 1
	if lastIndex > page.TotalResults {
		lastIndex = page.TotalResults
	}
	f.logger.Info().
		Str("date", day.StartString()).
		Int64("first", startIndex).
		Int64("last", lastIndex).
		Int64("total", page.TotalResults).
		Msg("Retrieved rows")

	return page, nil
}
