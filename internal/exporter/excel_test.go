package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"popcli/internal/analysis"
)

func sampleComparison() *analysis.Comparison {
	return &analysis.Comparison{
		Mode:         analysis.ModeDimension,
		GroupColumns: []string{"region"},
		Metrics:      []string{"sales"},
		Rows: []analysis.ComparisonRow{
			{
				Key:   analysis.MakeGroupKey([]string{"East"}),
				Parts: []string{"East"},
				Metrics: []analysis.MetricComparison{
					{Metric: "sales", Prior: 400, Current: 500, Delta: 100, Growth: analysis.GrowthRate(25)},
				},
			},
			{
				Key:   analysis.MakeGroupKey([]string{"West"}),
				Parts: []string{"West"},
				Metrics: []analysis.MetricComparison{
					{Metric: "sales", Prior: 200, Current: 0, Delta: -200, Growth: analysis.GrowthRate(-100)},
				},
			},
		},
		Classified: analysis.Classification{
			Dimensions: []string{"region"},
			Metrics:    []string{"sales"},
			Ignored:    []string{"order_id"},
		},
		Stats: analysis.Stats{CurrentRows: 1, PriorRows: 3, CurrentGroups: 1, PriorGroups: 2},
	}
}

func TestExcelReporter_WriteReport(t *testing.T) {
	dir := t.TempDir()
	reporter := NewExcelReporter(nil, dir)

	err := reporter.WriteReport("report.xlsx", sampleComparison(), ReportMeta{
		CurrentDate: "2024-02-29",
		PriorDate:   "2024-01-31",
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(dir, "report.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{sheetComparison, sheetSummary, sheetRoles}, f.GetSheetList())

	rows, err := f.GetRows(sheetComparison)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"region", "sales_prior", "sales_current", "sales_delta", "sales_growth_pct"}, rows[0])
	assert.Equal(t, []string{"East", "400", "500", "100", "25.00%"}, rows[1])
	assert.Equal(t, []string{"West", "200", "0", "-200", "-100.00%"}, rows[2])
}

func TestExcelReporter_SummarySheet(t *testing.T) {
	dir := t.TempDir()
	reporter := NewExcelReporter(nil, dir)

	require.NoError(t, reporter.WriteReport("report.xlsx", sampleComparison(), ReportMeta{
		CurrentDate: "2024-02-29",
		PriorDate:   "2024-01-31",
	}))

	f, err := excelize.OpenFile(filepath.Join(dir, "report.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	mode, err := f.GetCellValue(sheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "dimension", mode)

	currentDate, err := f.GetCellValue(sheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", currentDate)

	// grand totals: prior 600, current 500 -> -16.67%
	metric, err := f.GetCellValue(sheetSummary, "A12")
	require.NoError(t, err)
	assert.Equal(t, "sales", metric)

	growth, err := f.GetCellValue(sheetSummary, "E12")
	require.NoError(t, err)
	assert.Equal(t, "-16.67%", growth)
}

func TestExcelReporter_RolesSheet(t *testing.T) {
	dir := t.TempDir()
	reporter := NewExcelReporter(nil, dir)

	require.NoError(t, reporter.WriteReport("report.xlsx", sampleComparison(), ReportMeta{}))

	f, err := excelize.OpenFile(filepath.Join(dir, "report.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetRoles)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"region", "dimension"}, rows[1])
	assert.Equal(t, []string{"sales", "metric"}, rows[2])
	assert.Equal(t, []string{"order_id", "ignored"}, rows[3])
}

func TestReportFileName(t *testing.T) {
	got := ReportFileName(analysis.ModeInterval, "2024-02-29", "2024-01-31", "xlsx")
	assert.Equal(t, "comparison_interval_2024-02-29_vs_2024-01-31.xlsx", got)
}
