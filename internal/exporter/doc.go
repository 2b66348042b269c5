// Package exporter writes comparison results to disk.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// appending, and UTF-8 BOM for Excel compatibility.
//
// ExcelReporter: Renders a comparison as a multi-sheet workbook holding
// the comparison table, a run summary with per-metric grand totals, and
// the detected column roles.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(logger, cfg.Paths.ReportsDir)
//	header, records := analysis.Table(comparison)
//	err := writer.WriteSimpleCSV("comparison.csv", header, records)
//
//	reporter := exporter.NewExcelReporter(logger, cfg.Paths.ReportsDir)
//	err = reporter.WriteReport("comparison.xlsx", comparison, exporter.ReportMeta{
//		CurrentDate: "2024-02-29",
//		PriorDate:   "2024-01-31",
//	})
package exporter
