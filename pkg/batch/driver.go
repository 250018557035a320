package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/konrad-woj/google-analytics/pkg/cache"
	"github.com/konrad-woj/google-analytics/pkg/dataset"
	"github.com/konrad-woj/google-analytics/pkg/logging"
	"github.com/konrad-woj/google-analytics/pkg/query"
	"github.com/konrad-woj/google-analytics/pkg/reporting"
)

// DriverConfig holds the optional collaborators of a range driver.
type DriverConfig struct {
	// Cache, when set, serves completed daily batches without API calls.
	Cache *cache.Manager

	// Now overrides the clock used for cache TTL decisions (tests).
	Now func() time.Time
}

// Driver expands a date range into daily sub-queries and accumulates the
// results into a single dataset. Days are processed strictly in ascending
// order by a single writer; the dataset is committed only after the whole
// range has succeeded.
type Driver struct {
	assembler *Assembler
	cache     *cache.Manager
	now       func() time.Time
	logger    zerolog.Logger
}

// NewDriver creates a date-range driver over the reporting service.
func NewDriver(svc reporting.Service, cfg DriverConfig) *Driver {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Driver{
		assembler: NewAssembler(svc),
		cache:     cfg.Cache,
		now:       now,
		logger:    logging.NewLogger("driver"),
	}
}

// Run fetches the whole range one day at a time and returns the coerced
// dataset. Any failure aborts the run; no partial dataset is returned.
func (d *Driver) Run(ctx context.Context, q query.Query, window query.DateWindow) (*dataset.Dataset, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	builder := dataset.NewBuilder()
	days := window.Days()

	for _, day := range days {
		dayWindow := query.SingleDay(day)
		d.logger.Info().
			Str("date", dayWindow.StartString()).
			Str("range", window.String()).
			Msg("Fetching daily batch")

		result, err := d.assembleDay(ctx, q, dayWindow)
		if err != nil {
			d.logger.Error().
				Err(err).
				Str("date", dayWindow.StartString()).
				Msg("Range run aborted")
			return nil, err
		}

		if len(result.Headers) > 0 {
			if err := builder.SetSchema(result.Headers); err != nil {
				return nil, err
			}
		} else if len(result.Rows) > 0 {
			// Rows without a schema cannot be typed; the wire contract puts
			// column headers on every day's first page.
			return nil, fmt.Errorf("day %s returned %d rows without column headers",
				dayWindow.StartString(), len(result.Rows))
		}
		if err := builder.Append(result.Rows); err != nil {
			return nil, err
		}
	}

	ds := builder.Commit()

	if !ds.Empty() {
		if err := dataset.Coerce(ds); err != nil {
			return nil, err
		}
	}

	d.logger.Info().
		Int("rows", len(ds.Rows)).
		Int("columns", len(ds.Fields)).
		Int("days", len(days)).
		Msg("Dataset committed")

	return ds, nil
}

// assembleDay serves one day from cache when possible, falling back to the
// API. Cache failures degrade to a direct fetch; they never abort the run.
func (d *Driver) assembleDay(ctx context.Context, q query.Query, day query.DateWindow) (*DailyResult, error) {
	if d.cache == nil {
		return d.assembler.AssembleDay(ctx, q, day)
	}

	key := cache.NewKey(q, day)
	entry, err := d.cache.Get(ctx, key)
	if err == nil {
		d.logger.Debug().
			Str("date", day.StartString()).
			Msg("Daily batch served from cache")
		return &DailyResult{
			Rows:          entry.Rows,
			Headers:       entry.Headers,
			Sampled:       entry.Sampled,
			SamplingRatio: entry.SamplingRatio,
		}, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		d.logger.Warn().
			Err(err).
			Str("date", day.StartString()).
			Msg("Cache get failed, fetching directly")
	}

	result, err := d.assembler.AssembleDay(ctx, q, day)
	if err != nil {
		return nil, err
	}

	setErr := d.cache.Set(ctx, key, &cache.Entry{
		Rows:          result.Rows,
		Headers:       result.Headers,
		Sampled:       result.Sampled,
		SamplingRatio: result.SamplingRatio,
		CachedAt:      d.now().UTC(),
	}, cache.TTLFor(day.Start, d.now()))
	if setErr != nil {
		d.logger.Warn().
			Err(setErr).
			Str("date", day.StartString()).
			Msg("Cache set failed")
	}

	return result, nil
}
