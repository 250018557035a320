package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/konrad-woj/google-analytics/pkg/batch"
	"github.com/konrad-woj/google-analytics/pkg/cache"
	"github.com/konrad-woj/google-analytics/pkg/dataset"
	"github.com/konrad-woj/google-analytics/pkg/logging"
	"github.com/konrad-woj/google-analytics/pkg/query"
	"github.com/konrad-woj/google-analytics/pkg/reporting"
)

func main() {
	os.Exit(Execute())
}

// Execute runs the CLI.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// exportOptions collects every flag of the export command.
type exportOptions struct {
	// Query definition, either inline or from a YAML file.
	queryFile  string
	ids        string
	dimensions []string
	metrics    []string
	filters    string
	segment    string
	sort       []string
	startDate  string
	endDate    string
	maxResults int64

	// Output.
	outputPath string
	summary    bool

	// Credentials.
	clientSecret string
	tokenFile    string

	// Infrastructure.
	redisAddr   string
	metricsAddr string
	logLevel    string
	pretty      bool
}

func newRootCmd() *cobra.Command {
	opts := &exportOptions{}

	rootCmd := &cobra.Command{
		Use:   "ga-export",
		Short: "Export Google Analytics report data",
		Long: `Exports Core Reporting API data over a date range, one day at a time
to avoid sampling, and writes the combined result as CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logging.Setup(logging.Config{
				Level:  logging.LogLevel(opts.logLevel),
				Pretty: opts.pretty,
			})
			return runExport(cmd.Context(), opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.queryFile, "query-file", "f", "", "YAML query definition (overrides the query flags)")
	flags.StringVar(&opts.ids, "ids", "", "Analytics view ID, e.g. ga:12345678")
	flags.StringSliceVar(&opts.dimensions, "dimensions", nil, "Dimensions, e.g. ga:date,ga:country")
	flags.StringSliceVar(&opts.metrics, "metrics", nil, "Metrics, e.g. ga:sessions,ga:pageviews")
	flags.StringVar(&opts.filters, "filters", "", "Filter expression")
	flags.StringVar(&opts.segment, "segment", "", "Segment expression")
	flags.StringSliceVar(&opts.sort, "sort", nil, "Sort columns, prefix with - for descending")
	flags.StringVar(&opts.startDate, "start-date", "", "Range start (YYYY-MM-DD)")
	flags.StringVar(&opts.endDate, "end-date", "", "Range end (YYYY-MM-DD)")
	flags.Int64Var(&opts.maxResults, "max-results", 0, "Rows per page (0 uses the default)")

	flags.StringVarP(&opts.outputPath, "output", "o", "", "CSV output path (- for stdout)")
	flags.BoolVar(&opts.summary, "summary", false, "Print a dataset summary to stdout (implied when no --output is given)")

	flags.StringVar(&opts.clientSecret, "client-secret", "client_secrets.json", "OAuth client secrets file")
	flags.StringVar(&opts.tokenFile, "token-file", "token.json", "Cached OAuth token file")

	flags.StringVar(&opts.redisAddr, "redis", "", "Redis address for the daily batch cache (empty disables caching)")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while exporting")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.BoolVar(&opts.pretty, "pretty", false, "Human-readable log output")

	return rootCmd
}

func runExport(ctx context.Context, opts *exportOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewLogger("ga-export")

	q, window, err := resolveQuery(opts)
	if err != nil {
		return err
	}

	svc, err := reporting.NewAnalyticsService(ctx, reporting.CredentialConfig{
		ClientSecretPath: opts.clientSecret,
		TokenPath:        opts.tokenFile,
	})
	if err != nil {
		return err
	}

	reportSvc, err := reporting.NewGoogleService(svc, reporting.DefaultConfig())
	if err != nil {
		return err
	}

	driverCfg := batch.DriverConfig{}
	if opts.redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: opts.redisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis at %s: %w", opts.redisAddr, err)
		}
		defer redisClient.Close()
		driverCfg.Cache = cache.NewManager(redisClient)
		logger.Info().Str("addr", opts.redisAddr).Msg("Daily batch cache enabled")
	}

	if opts.metricsAddr != "" {
		go serveMetrics(opts.metricsAddr, logger)
	}

	driver := batch.NewDriver(reportSvc, driverCfg)
	ds, err := driver.Run(ctx, q, window)
	if err != nil {
		return err
	}

	return writeOutput(opts, ds, os.Stdout)
}

// resolveQuery builds the validated query and date window from either the
// YAML file or the inline flags. The file, when given, wins.
func resolveQuery(opts *exportOptions) (query.Query, query.DateWindow, error) {
	if opts.queryFile != "" {
		spec, window, err := query.LoadSpec(opts.queryFile)
		if err != nil {
			return query.Query{}, query.DateWindow{}, err
		}
		return spec.Query, window, nil
	}

	q := query.Query{
		IDs:        opts.ids,
		Dimensions: opts.dimensions,
		Metrics:    opts.metrics,
		Filters:    opts.filters,
		Segment:    opts.segment,
		Sort:       opts.sort,
		MaxResults: opts.maxResults,
	}
	if err := q.Validate(); err != nil {
		return query.Query{}, query.DateWindow{}, err
	}

	window, err := query.ParseDateWindow(opts.startDate, opts.endDate)
	if err != nil {
		return query.Query{}, query.DateWindow{}, err
	}
	return q, window, nil
}

// writeOutput renders the dataset. The CSV destination comes from --output;
// with no destination the summary is always printed, so a bare run still
// shows something.
func writeOutput(opts *exportOptions, ds *dataset.Dataset, stdout io.Writer) error {
	switch opts.outputPath {
	case "":
		return dataset.WriteSummary(stdout, ds)
	case "-":
		if err := dataset.WriteCSV(stdout, ds); err != nil {
			return err
		}
	default:
		if err := dataset.WriteCSVFile(opts.outputPath, ds); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(ds.Rows), opts.outputPath)
	}

	if opts.summary {
		return dataset.WriteSummary(stdout, ds)
	}
	return nil
}

func serveMetrics(addr string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info().Str("addr", addr).Msg("Serving Prometheus metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("Metrics server stopped")
	}
}
