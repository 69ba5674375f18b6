package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"defensecli/internal/config"
	apperrors "defensecli/internal/errors"
	"defensecli/internal/exporter"
	"defensecli/internal/files"
	"defensecli/internal/infrastructure"
	"defensecli/internal/playtype"
	"defensecli/internal/validation"
)

// options are the command line overrides of the loaded configuration
type options struct {
	configPath string
	dataDir    string
	outputDir  string
	chartsDir  string
	players    string
	format     string
	noCharts   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a YAML config file (defaults to defense.yaml or configs/defense.yaml)")
	flag.StringVar(&opts.dataDir, "data", "", "directory holding the seven <play type>.csv tables")
	flag.StringVar(&opts.outputDir, "out", "", "output directory for CSV reports and the workbook")
	flag.StringVar(&opts.chartsDir, "charts", "", "output directory for charts (defaults to <out>/charts)")
	flag.StringVar(&opts.players, "player", "", "comma-separated players to draw bar and radar charts for")
	flag.StringVar(&opts.format, "format", "", "chart format: png or svg")
	flag.BoolVar(&opts.noCharts, "no-charts", false, "skip chart rendering")
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		slog.Error("Defense report failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration and applies the command line overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.dataDir != "" {
		cfg.Paths.DataDir = opts.dataDir
	}
	if opts.outputDir != "" {
		cfg.Paths.OutputDir = opts.outputDir
		cfg.Paths.ChartsDir = filepath.Join(opts.outputDir, "charts")
		cfg.Paths.LogsDir = filepath.Join(opts.outputDir, "logs")
	}
	if opts.chartsDir != "" {
		cfg.Paths.ChartsDir = opts.chartsDir
	}
	if opts.format != "" {
		cfg.Analysis.ChartFormat = strings.ToLower(opts.format)
	}
	if opts.players != "" {
		cfg.Analysis.Players = splitPlayers(opts.players)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitPlayers(s string) []string {
	var players []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			players = append(players, p)
		}
	}
	return players
}

func run(ctx context.Context, opts options, stdout io.Writer) (err error) {
	started := time.Now()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}
	ctx = infrastructure.EnsureTraceID(ctx)
	logger = infrastructure.WithComponent(logger, "defense_report")

	providers, err := infrastructure.InitializeOTel(ctx, infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		return err
	}
	defer func() {
		if serr := providers.Shutdown(ctx); serr != nil {
			infrastructure.WithError(logger, serr).WarnContext(ctx, "Telemetry shutdown failed")
		}
	}()

	metrics, merr := infrastructure.CreateReportMetrics(otel.Meter(infrastructure.MeterName))
	if merr != nil {
		infrastructure.WithError(logger, merr).WarnContext(ctx, "Report metrics unavailable")
	}
	defer func() {
		if err != nil {
			metrics.RecordRun(ctx, time.Since(started), err)
		}
	}()

	paths, err := cfg.GetPaths()
	if err != nil {
		return err
	}
	paths.LogPathResolution(logger)

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(paths.DataDir, "*.csv"); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(paths.OutputDir); err != nil {
		return err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	tables, err := files.NewDiscovery(paths.BaseDir).DiscoverTables(paths.DataDir)
	if err != nil {
		return err
	}
	for _, f := range tables.Unrecognized {
		logger.WarnContext(ctx, "Ignoring unrecognized table", slog.String("file", f.Path))
	}
	if err := validateTables(validator, tables); err != nil {
		return err
	}

	organizer := playtype.NewOrganizer(logger)
	res, err := organizer.LoadAndMerge(ctx, tables.Sources())
	if err != nil {
		return fmt.Errorf("organize play data: %w", err)
	}

	summaries, err := exportReports(ctx, logger, paths, res, metrics)
	if err != nil {
		return err
	}

	if !opts.noCharts {
		if err := renderCharts(ctx, logger, cfg.Analysis, paths, res, metrics); err != nil {
			return err
		}
	}

	metrics.RecordRun(ctx, time.Since(started), nil)
	if cfg.Telemetry.MetricsFile != "" && providers.Registry != nil {
		metricsPath := cfg.Telemetry.MetricsFile
		if !filepath.IsAbs(metricsPath) {
			metricsPath = paths.GetReportPath(metricsPath)
		}
		if err := providers.WriteMetricsTextfile(metricsPath); err != nil {
			logger.WarnContext(ctx, "Failed to write metrics textfile", slog.String("error", err.Error()))
		}
	}

	logger.InfoContext(ctx, "Defense report generated successfully",
		slog.Int("players", res.Merged.Len()),
		slog.String("output", paths.OutputDir),
		slog.Duration("elapsed", time.Since(started)))

	printSummary(stdout, res, summaries, cfg.Analysis.EliteTotal)
	return nil
}

// validateTables checks that every discovered table is a readable CSV file
// before anything is loaded.
func validateTables(v *validation.FileValidator, set *files.TableSet) error {
	var errs []error
	for _, p := range playtype.All {
		f, ok := set.Files[p]
		if !ok {
			continue
		}
		if err := v.ValidateCSVFile(f.Path); err != nil {
			errs = append(errs, apperrors.NewStorageError(fmt.Sprintf("%s table", p), err).
				WithContext("play_type", p.String()))
		}
	}
	return errors.Join(errs...)
}

// exportReports writes the CSV reports and the workbook.
func exportReports(ctx context.Context, logger *slog.Logger, paths *config.Paths, res *playtype.Result, metrics *infrastructure.ReportMetrics) ([]exporter.PlayerSummary, error) {
	reports := exporter.NewReportExporter(paths)
	if err := reports.ExportAll(res); err != nil {
		return nil, fmt.Errorf("export reports: %w", err)
	}
	metrics.RecordExport(ctx, "csv", len(res.Tables)+2)

	summaries, err := exporter.GenerateSummaries(res)
	if err != nil {
		return nil, err
	}
	summaryPath := paths.GetReportPath("summary.csv")
	if err := reports.ExportSummaries(summaries, summaryPath); err != nil {
		return nil, fmt.Errorf("export summaries: %w", err)
	}
	metrics.RecordExport(ctx, "csv", 1)

	if err := exporter.NewWorkbookExporter(logger).Export(res, summaries, paths.WorkbookFile); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	metrics.RecordExport(ctx, "xlsx", 1)

	logger.InfoContext(ctx, "Reports exported",
		slog.String("merged", paths.MergedCSV),
		slog.String("averages", paths.AveragesCSV),
		slog.String("summary", summaryPath),
		slog.String("workbook", paths.WorkbookFile))

	return summaries, nil
}
