package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	analytics "google.golang.org/api/analytics/v3"

	"github.com/konrad-woj/google-analytics/pkg/logging"
)

// Prometheus metrics for reporting API calls.
var (
	gaRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ga_requests_total",
		Help: "Total Core Reporting API requests by outcome",
	}, []string{"status"})

	gaRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ga_request_duration_seconds",
		Help:    "Core Reporting API request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})
)

// namespacePrefix is stripped from column names in responses.
const namespacePrefix = "ga:"

// Config holds the Google reporting service configuration. SamplingLevel and
// Output are fixed by this core, not caller-configurable; they live here so
// the wire constants are in one immutable struct instead of scattered
// module-level globals.
type Config struct {
	// SamplingLevel requested on every call. HIGHER_PRECISION trades response
	// time for accuracy.
	SamplingLevel string

	// Output is the response encoding. Always the structured json form, never
	// the dataTable flat form.
	Output string

	// QPS is the client-side request rate cap. The Core Reporting API meters
	// roughly 10 requests/second per IP.
	QPS rate.Limit

	// Burst is the rate limiter burst size.
	Burst int
}

// DefaultConfig returns the fixed production configuration.
func DefaultConfig() Config {
	return Config{
		SamplingLevel: "HIGHER_PRECISION",
		Output:        "json",
		QPS:           10,
		Burst:         1,
	}
}

// GoogleService implements Service against the Core Reporting API v3.
type GoogleService struct {
	svc     *analytics.Service
	limiter *rate.Limiter
	config  Config
	logger  zerolog.Logger
}

// NewGoogleService creates the reporting service around an authorized
// analytics API handle.
func NewGoogleService(svc *analytics.Service, cfg Config) (*GoogleService, error) {
	if svc == nil {
		return nil, fmt.Errorf("analytics service is required")
	}
	if cfg.SamplingLevel == "" {
		return nil, fmt.Errorf("sampling level is required")
	}
	if cfg.Output == "" {
		return nil, fmt.Errorf("output format is required")
	}
	if cfg.QPS <= 0 {
		return nil, fmt.Errorf("qps must be positive (got %v)", cfg.QPS)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	return &GoogleService{
		svc:     svc,
		limiter: rate.NewLimiter(cfg.QPS, cfg.Burst),
		config:  cfg,
		logger:  logging.NewLogger("reporting"),
	}, nil
}

// Query performs one bounded Core Reporting call. It waits on the client-side
// rate limiter, retries retriable failures with backoff, and converts the
// response into a Page with namespace-stripped headers.
func (s *GoogleService) Query(ctx context.Context, req Request) (*Page, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		gaRequestDuration.Observe(time.Since(start).Seconds())
	}()

	s.logger.Debug().
		Str("ids", req.Query.IDs).
		Str("date", req.Window.StartString()).
		Int64("start_index", req.StartIndex).
		Int64("max_results", req.MaxResults).
		Msg("Executing reporting query")

	var data *analytics.GaData
	err := retryWithBackoff(ctx, func() error {
		call := s.svc.Data.Ga.Get(
			req.Query.IDs,
			req.Window.StartString(),
			req.Window.EndString(),
			req.Query.MetricsExpr(),
		).
			StartIndex(req.StartIndex).
			MaxResults(req.MaxResults).
			SamplingLevel(s.config.SamplingLevel).
			Output(s.config.Output).
			Context(ctx)

		if expr := req.Query.DimensionsExpr(); expr != "" {
			call = call.Dimensions(expr)
		}
		if req.Query.Filters != "" {
			call = call.Filters(req.Query.Filters)
		}
		if req.Query.Segment != "" {
			call = call.Segment(req.Query.Segment)
		}
		if expr := req.Query.SortExpr(); expr != "" {
			call = call.Sort(expr)
		}

		var callErr error
		data, callErr = call.Do()
		return callErr
	}, classifyError)

	if err != nil {
		class := classifyError(err)
		gaRequestsTotal.WithLabelValues(string(class)).Inc()
		s.logger.Warn().
			Err(err).
			Str("ids", req.Query.IDs).
			Str("date", req.Window.StartString()).
			Str("error_class", string(class)).
			Msg("Reporting query failed")
		return nil, wrapError(err)
	}

	gaRequestsTotal.WithLabelValues("ok").Inc()
	return toPage(data), nil
}

// toPage converts the wire response into the collaborator-neutral Page.
func toPage(data *analytics.GaData) *Page {
	headers := make([]ColumnHeader, 0, len(data.ColumnHeaders))
	for _, h := range data.ColumnHeaders {
		headers = append(headers, ColumnHeader{
			Name: strings.TrimPrefix(h.Name, namespacePrefix),
			Type: DeclaredType(h.DataType),
		})
	}

	return &Page{
		Rows:                data.Rows,
		ItemsPerPage:        data.ItemsPerPage,
		TotalResults:        data.TotalResults,
		ContainsSampledData: data.ContainsSampledData,
		SampleSize:          data.SampleSize,
		SampleSpace:         data.SampleSpace,
		Headers:             headers,
	}
}

// Ensure GoogleService satisfies Service.
var _ Service = (*GoogleService)(nil)
