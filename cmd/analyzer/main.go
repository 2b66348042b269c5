package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"popcli/internal/analysis"
	"popcli/internal/config"
	"popcli/internal/infrastructure"
	"popcli/internal/services"
	"popcli/internal/store"
)

func main() {
	configFile := flag.String("config", "", "config file path (defaults to popcli.yaml if present)")
	mode := flag.String("mode", "dimension", "analysis mode: dimension or interval")
	dimensions := flag.String("dimensions", "", "comma-separated dimension columns (dimension mode)")
	binMetric := flag.String("bin-metric", "", "metric column to bin (interval mode)")
	cutpoints := flag.String("cutpoints", "", "comma-separated cutpoints (interval mode)")
	metrics := flag.String("metrics", "", "comma-separated metrics to sum (default: all detected)")
	exclude := flag.String("exclude", "", "comma-separated extra columns to exclude")
	priorDate := flag.String("prior", "", "prior period date (YYYY-MM-DD)")
	currentDate := flag.String("current", "", "current period date (YYYY-MM-DD)")
	formats := flag.String("formats", "xlsx,csv", "report formats: xlsx, csv, or both")
	rangeMetric := flag.String("range", "", "print a metric's value range instead of running an analysis")
	noHistory := flag.Bool("no-history", false, "skip recording this run in the history database")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if err := cfg.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *priorDate == "" || *currentDate == "" {
		logger.Error("Both -prior and -current dates are required")
		flag.Usage()
		os.Exit(2)
	}

	var st *store.Store
	if !*noHistory {
		st, err = store.Open(logger, cfg.Paths.DBPath)
		if err != nil {
			logger.Warn("Run history disabled", slog.String("error", err.Error()))
		} else {
			defer st.Close()
		}
	}

	svc := services.NewAnalysisService(cfg, logger, st)
	ctx := infrastructure.EnsureTraceID(context.Background())

	if *rangeMetric != "" {
		summary, err := svc.MetricRange(ctx, services.RangeRequest{
			Metric:      *rangeMetric,
			PriorDate:   *priorDate,
			CurrentDate: *currentDate,
		})
		if err != nil {
			logger.Error("Metric range failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("%s: count=%d min=%g max=%g mean=%g median=%g\n",
			summary.Metric, summary.Count, summary.Min, summary.Max, summary.Mean, summary.Median)
		return
	}

	req := services.RunRequest{
		Request: analysis.Request{
			Mode:           analysis.Mode(*mode),
			Dimensions:     splitList(*dimensions),
			BinMetric:      *binMetric,
			Metrics:        splitList(*metrics),
			ExcludeColumns: splitList(*exclude),
		},
		PriorDate:   *priorDate,
		CurrentDate: *currentDate,
		Formats:     splitList(*formats),
	}

	if *cutpoints != "" {
		points, err := parseCutpoints(*cutpoints)
		if err != nil {
			logger.Error("Invalid cutpoints", slog.String("error", err.Error()))
			os.Exit(2)
		}
		req.Cutpoints = points
	}

	result, err := svc.RunAnalysis(ctx, req)
	if err != nil {
		logger.Error("Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Analysis completed",
		slog.String("run_id", result.RunID),
		slog.Int("groups", len(result.Comparison.Rows)),
		slog.Int("coercion_failures", result.Comparison.Stats.CoercionFailures))

	for _, path := range result.ReportPaths {
		fmt.Println(path)
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseCutpoints(raw string) ([]float64, error) {
	parts := splitList(raw)
	points := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("cutpoint %q is not a number", p)
		}
		points = append(points, v)
	}
	return points, nil
}
