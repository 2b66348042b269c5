package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"popcli/internal/analysis"
)

const (
	sheetComparison = "Comparison"
	sheetSummary    = "Summary"
	sheetRoles      = "Column Roles"
)

// ReportMeta carries run context rendered on the summary sheet.
type ReportMeta struct {
	CurrentDate string
	PriorDate   string
}

// ExcelReporter writes a comparison as a multi-sheet Excel workbook:
// the comparison table, a run summary with per-metric grand totals, and
// the column role classification.
type ExcelReporter struct {
	logger  *slog.Logger
	baseDir string
}

// NewExcelReporter creates an Excel reporter rooted at baseDir.
func NewExcelReporter(logger *slog.Logger, baseDir string) *ExcelReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelReporter{
		logger:  logger.With(slog.String("component", "excel_reporter")),
		baseDir: baseDir,
	}
}

// WriteReport renders the comparison into an .xlsx file. Relative paths
// resolve against the reporter's base directory.
func (r *ExcelReporter) WriteReport(filePath string, c *analysis.Comparison, meta ReportMeta) error {
	fullPath := filePath
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(r.baseDir, filePath)
	}

	r.logger.Info("Writing Excel report",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("group_count", len(c.Rows)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetComparison)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := r.writeComparisonSheet(f, c, headerStyle); err != nil {
		return err
	}
	if err := r.writeSummarySheet(f, c, meta, headerStyle); err != nil {
		return err
	}
	if err := r.writeRolesSheet(f, c, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (r *ExcelReporter) writeComparisonSheet(f *excelize.File, c *analysis.Comparison, headerStyle int) error {
	header, records := analysis.Table(c)

	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := f.SetSheetRow(sheetComparison, "A1", &row); err != nil {
		return fmt.Errorf("failed to write comparison header: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("failed to resolve column name: %w", err)
	}
	if err := f.SetCellStyle(sheetComparison, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style comparison header: %w", err)
	}

	for i, record := range records {
		cells := make([]interface{}, len(record))
		for j, v := range record {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetComparison, cell, &cells); err != nil {
			return fmt.Errorf("failed to write comparison row %d: %w", i, err)
		}
	}

	// keep the header visible while scrolling
	if err := f.SetPanes(sheetComparison, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	return nil
}

func (r *ExcelReporter) writeSummarySheet(f *excelize.File, c *analysis.Comparison, meta ReportMeta, headerStyle int) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Run", ""},
		{"Mode", string(c.Mode)},
		{"Current period", meta.CurrentDate},
		{"Prior period", meta.PriorDate},
		{"Current rows", c.Stats.CurrentRows},
		{"Prior rows", c.Stats.PriorRows},
		{"Current groups", c.Stats.CurrentGroups},
		{"Prior groups", c.Stats.PriorGroups},
		{"Coercion failures", c.Stats.CoercionFailures},
		{},
		{"Metric", "Prior total", "Current total", "Delta", "Growth"},
	}

	for _, metric := range c.Metrics {
		var priorTotal, currentTotal float64
		for _, row := range c.Rows {
			for _, m := range row.Metrics {
				if m.Metric == metric {
					priorTotal += m.Prior
					currentTotal += m.Current
				}
			}
		}
		delta, rate := analysis.Growth(priorTotal, currentTotal)
		rows = append(rows, []interface{}{metric, priorTotal, currentTotal, delta, rate.String()})
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to resolve cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetSummary, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i, err)
		}
	}

	if err := f.SetCellStyle(sheetSummary, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("failed to style summary sheet: %w", err)
	}
	if err := f.SetCellStyle(sheetSummary, "A11", "E11", headerStyle); err != nil {
		return fmt.Errorf("failed to style summary sheet: %w", err)
	}
	return nil
}

func (r *ExcelReporter) writeRolesSheet(f *excelize.File, c *analysis.Comparison, headerStyle int) error {
	if _, err := f.NewSheet(sheetRoles); err != nil {
		return fmt.Errorf("failed to create roles sheet: %w", err)
	}

	header := []interface{}{"Column", "Role"}
	if err := f.SetSheetRow(sheetRoles, "A1", &header); err != nil {
		return fmt.Errorf("failed to write roles header: %w", err)
	}
	if err := f.SetCellStyle(sheetRoles, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("failed to style roles header: %w", err)
	}

	line := 2
	writeRole := func(name, role string) error {
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return fmt.Errorf("failed to resolve cell name: %w", err)
		}
		row := []interface{}{name, role}
		if err := f.SetSheetRow(sheetRoles, cell, &row); err != nil {
			return fmt.Errorf("failed to write role row: %w", err)
		}
		line++
		return nil
	}

	for _, name := range c.Classified.Dimensions {
		if err := writeRole(name, analysis.RoleDimension.String()); err != nil {
			return err
		}
	}
	for _, name := range c.Classified.Metrics {
		if err := writeRole(name, analysis.RoleMetric.String()); err != nil {
			return err
		}
	}
	for _, name := range c.Classified.Ignored {
		if err := writeRole(name, analysis.RoleIgnored.String()); err != nil {
			return err
		}
	}
	return nil
}
