package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popcli/internal/analysis"
	"popcli/internal/config"
	apperrors "popcli/internal/errors"
	"popcli/internal/store"
)

func newTestService(t *testing.T) (*AnalysisService, *config.Config) {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.ReportsDir = filepath.Join(base, "reports")
	cfg.Paths.LogsDir = filepath.Join(base, "logs")
	cfg.Paths.DBPath = filepath.Join(base, "runs.db")
	require.NoError(t, cfg.EnsureDirectories())

	st, err := store.Open(nil, cfg.Paths.DBPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return NewAnalysisService(&cfg, nil, st), &cfg
}

func writePeriodCSV(t *testing.T, cfg *config.Config, date, content string) {
	t.Helper()
	path := filepath.Join(cfg.Paths.DataDir, cfg.Analysis.FilePrefix+"_"+date+".csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestAnalysisService_RunAnalysis(t *testing.T) {
	svc, cfg := newTestService(t)

	writePeriodCSV(t, cfg, "2024-01-31", `region,sales
East,400
West,200
`)
	writePeriodCSV(t, cfg, "2024-02-29", `region,sales
East,500
`)

	result, err := svc.RunAnalysis(context.Background(), RunRequest{
		Request: analysis.Request{
			Mode:       analysis.ModeDimension,
			Dimensions: []string{"region"},
		},
		PriorDate:   "2024-01-31",
		CurrentDate: "2024-02-29",
		Formats:     []string{"csv"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	require.Len(t, result.ReportPaths, 1)
	assert.FileExists(t, result.ReportPaths[0])
	require.Len(t, result.Comparison.Rows, 2)

	// run history reflects the completed run
	run, err := svc.GetRun(context.Background(), result.RunID)
	require.NoError(t, err)
	assert.Equal(t, store.StatusCompleted, run.Status)
	assert.Equal(t, 2, run.GroupCount)
}

func TestAnalysisService_RunAnalysis_DefaultsToBothFormats(t *testing.T) {
	svc, cfg := newTestService(t)

	writePeriodCSV(t, cfg, "2024-01-31", "region,sales\nEast,100\n")
	writePeriodCSV(t, cfg, "2024-02-29", "region,sales\nEast,200\n")

	result, err := svc.RunAnalysis(context.Background(), RunRequest{
		Request: analysis.Request{
			Mode:       analysis.ModeDimension,
			Dimensions: []string{"region"},
		},
		PriorDate:   "2024-01-31",
		CurrentDate: "2024-02-29",
	})
	require.NoError(t, err)
	require.Len(t, result.ReportPaths, 2)
	assert.Contains(t, result.ReportPaths[0], ".xlsx")
	assert.Contains(t, result.ReportPaths[1], ".csv")
}

func TestAnalysisService_RunAnalysis_PipelineFailureRecorded(t *testing.T) {
	svc, cfg := newTestService(t)

	writePeriodCSV(t, cfg, "2024-01-31", "sales\n100\n")
	writePeriodCSV(t, cfg, "2024-02-29", "sales\n200\n")

	_, err := svc.RunAnalysis(context.Background(), RunRequest{
		Request: analysis.Request{
			Mode:       analysis.ModeDimension,
			Dimensions: []string{"region"},
		},
		PriorDate:   "2024-01-31",
		CurrentDate: "2024-02-29",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))

	runs, err := svc.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, store.StatusFailed, runs[0].Status)
	assert.NotEmpty(t, runs[0].Error)
}

func TestAnalysisService_RunAnalysis_InvalidDates(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RunAnalysis(context.Background(), RunRequest{
		Request:     analysis.Request{Mode: analysis.ModeDimension, Dimensions: []string{"region"}},
		PriorDate:   "Jan 2024",
		CurrentDate: "2024-02-29",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

	_, err = svc.RunAnalysis(context.Background(), RunRequest{
		Request:     analysis.Request{Mode: analysis.ModeDimension, Dimensions: []string{"region"}},
		PriorDate:   "2024-02-29",
		CurrentDate: "2024-02-29",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestAnalysisService_RunAnalysis_MissingPeriodFile(t *testing.T) {
	svc, cfg := newTestService(t)

	writePeriodCSV(t, cfg, "2024-02-29", "region,sales\nEast,200\n")

	_, err := svc.RunAnalysis(context.Background(), RunRequest{
		Request:     analysis.Request{Mode: analysis.ModeDimension, Dimensions: []string{"region"}},
		PriorDate:   "2024-01-31",
		CurrentDate: "2024-02-29",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestAnalysisService_MetricRange(t *testing.T) {
	svc, cfg := newTestService(t)

	writePeriodCSV(t, cfg, "2024-01-31", "region,loan_amount\nEast,100\nWest,300\n")
	writePeriodCSV(t, cfg, "2024-02-29", "region,loan_amount\nEast,200\nWest,400\n")

	got, err := svc.MetricRange(context.Background(), RangeRequest{
		Metric:      "loan_amount",
		PriorDate:   "2024-01-31",
		CurrentDate: "2024-02-29",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, got.Count)
	assert.Equal(t, 100.0, got.Min)
	assert.Equal(t, 400.0, got.Max)
}

func TestHealthService_GetHealth(t *testing.T) {
	cfg := config.Default()
	st, err := store.Open(nil, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer st.Close()

	hs := NewHealthService("1.0.0", cfg.Paths, st, nil)
	status := hs.GetHealth(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.0.0", status.Version)
	assert.Equal(t, "healthy", status.Services["run_store"])
}
