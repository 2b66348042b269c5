package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"popcli/internal/analysis"
	"popcli/internal/config"
	"popcli/internal/dataset"
	"popcli/internal/errors"
	"popcli/internal/exporter"
	"popcli/internal/store"
)

// RunRequest is one comparison request: an analysis configuration plus
// the two period dates whose files should be compared.
type RunRequest struct {
	analysis.Request

	PriorDate   string `json:"prior_date" validate:"required"`
	CurrentDate string `json:"current_date" validate:"required"`

	// Formats selects report outputs: "csv", "xlsx", or both.
	// Empty means both.
	Formats []string `json:"formats,omitempty"`
}

// RunResult is the outcome of one completed comparison run.
type RunResult struct {
	RunID       string               `json:"run_id"`
	ReportPaths []string             `json:"report_paths"`
	Comparison  *analysis.Comparison `json:"comparison"`
}

// AnalysisService orchestrates a full run: resolve period files, load
// them, execute the pipeline, write reports, and record run history.
type AnalysisService struct {
	config   *config.Config
	logger   *slog.Logger
	pipeline *analysis.Pipeline
	store    *store.Store
	csv      *exporter.CSVWriter
	excel    *exporter.ExcelReporter
}

// NewAnalysisService creates an analysis service using the configured
// data and reports directories.
func NewAnalysisService(cfg *config.Config, logger *slog.Logger, st *store.Store) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}

	classifierCfg := analysis.ClassifierConfig{
		ExcludeColumns: cfg.Analysis.ExcludeColumns,
		SampleSize:     cfg.Analysis.SampleSize,
	}

	logger.Info("AnalysisService initialized with paths",
		slog.String("data_dir", cfg.Paths.DataDir),
		slog.String("reports_dir", cfg.Paths.ReportsDir))

	return &AnalysisService{
		config:   cfg,
		logger:   logger,
		pipeline: analysis.NewPipeline(logger, classifierCfg),
		store:    st,
		csv:      exporter.NewCSVWriter(logger, cfg.Paths.ReportsDir),
		excel:    exporter.NewExcelReporter(logger, cfg.Paths.ReportsDir),
	}
}

// RunAnalysis executes one comparison run end to end. Failures after the
// run record exists are written back to run history before returning.
func (s *AnalysisService) RunAnalysis(ctx context.Context, req RunRequest) (*RunResult, error) {
	current, prior, err := s.loadPeriods(ctx, req.CurrentDate, req.PriorDate)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	run := &store.Run{
		ID:          runID,
		Mode:        string(req.Mode),
		PriorDate:   req.PriorDate,
		CurrentDate: req.CurrentDate,
	}
	if s.store != nil {
		if err := s.store.CreateRun(ctx, run); err != nil {
			return nil, err
		}
	}

	comparison, err := s.pipeline.Run(ctx, req.Request, current, prior)
	if err != nil {
		s.recordFailure(ctx, runID, err)
		return nil, err
	}

	reportPaths, err := s.writeReports(req, comparison)
	if err != nil {
		s.recordFailure(ctx, runID, err)
		return nil, err
	}

	if s.store != nil {
		reportPath := ""
		if len(reportPaths) > 0 {
			reportPath = reportPaths[0]
		}
		if err := s.store.CompleteRun(ctx, runID, reportPath, len(comparison.Rows), comparison.Stats.CoercionFailures); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "analysis run completed",
		slog.String("run_id", runID),
		slog.String("mode", string(req.Mode)),
		slog.Int("groups", len(comparison.Rows)),
		slog.Any("reports", reportPaths))

	return &RunResult{
		RunID:       runID,
		ReportPaths: reportPaths,
		Comparison:  comparison,
	}, nil
}

// RangeRequest asks for one metric's value range across both periods.
type RangeRequest struct {
	Metric      string `json:"metric" validate:"required"`
	PriorDate   string `json:"prior_date" validate:"required"`
	CurrentDate string `json:"current_date" validate:"required"`
}

// MetricRange summarizes a metric's combined value range, to guide
// cutpoint selection before an interval run.
func (s *AnalysisService) MetricRange(ctx context.Context, req RangeRequest) (analysis.RangeSummary, error) {
	current, prior, err := s.loadPeriods(ctx, req.CurrentDate, req.PriorDate)
	if err != nil {
		return analysis.RangeSummary{}, err
	}
	return analysis.MetricRange(req.Metric, prior, current)
}

// ListRuns returns recent run history, newest first.
func (s *AnalysisService) ListRuns(ctx context.Context, limit int) ([]*store.Run, error) {
	if s.store == nil {
		return nil, errors.NewStorageError("run history is not enabled", nil)
	}
	return s.store.ListRuns(ctx, limit)
}

// GetRun returns one recorded run.
func (s *AnalysisService) GetRun(ctx context.Context, id string) (*store.Run, error) {
	if s.store == nil {
		return nil, errors.NewStorageError("run history is not enabled", nil)
	}
	return s.store.GetRun(ctx, id)
}

// loadPeriods resolves and loads both period files concurrently.
func (s *AnalysisService) loadPeriods(ctx context.Context, currentDate, priorDate string) (current, prior *dataset.Dataset, err error) {
	if err := dataset.ValidateDate(currentDate); err != nil {
		return nil, nil, err
	}
	if err := dataset.ValidateDate(priorDate); err != nil {
		return nil, nil, err
	}
	if currentDate == priorDate {
		return nil, nil, errors.NewAppValidationError("current and prior periods must differ")
	}

	prefix := s.config.Analysis.FilePrefix
	dataDir := s.config.Paths.DataDir

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		path, err := dataset.FindPeriodFile(dataDir, prefix, currentDate)
		if err != nil {
			return err
		}
		current, err = dataset.Load(path)
		return err
	})
	g.Go(func() error {
		path, err := dataset.FindPeriodFile(dataDir, prefix, priorDate)
		if err != nil {
			return err
		}
		prior, err = dataset.Load(path)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return current, prior, nil
}

func (s *AnalysisService) writeReports(req RunRequest, c *analysis.Comparison) ([]string, error) {
	formats := req.Formats
	if len(formats) == 0 {
		formats = []string{"xlsx", "csv"}
	}

	var paths []string
	for _, format := range formats {
		switch format {
		case "csv":
			name := exporter.ReportFileName(c.Mode, req.CurrentDate, req.PriorDate, "csv")
			header, records := analysis.Table(c)
			if err := s.csv.WriteSimpleCSV(name, header, records); err != nil {
				return nil, err
			}
			paths = append(paths, s.config.GetReportPath(name))
		case "xlsx":
			name := exporter.ReportFileName(c.Mode, req.CurrentDate, req.PriorDate, "xlsx")
			meta := exporter.ReportMeta{CurrentDate: req.CurrentDate, PriorDate: req.PriorDate}
			if err := s.excel.WriteReport(name, c, meta); err != nil {
				return nil, err
			}
			paths = append(paths, s.config.GetReportPath(name))
		default:
			return nil, errors.NewAppValidationError("unsupported report format: " + format)
		}
	}
	return paths, nil
}

func (s *AnalysisService) recordFailure(ctx context.Context, runID string, cause error) {
	if s.store == nil {
		return
	}
	if err := s.store.FailRun(ctx, runID, cause.Error()); err != nil {
		s.logger.WarnContext(ctx, "failed to record run failure",
			slog.String("run_id", runID),
			slog.String("error", err.Error()))
	}
}
