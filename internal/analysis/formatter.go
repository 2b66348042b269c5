package analysis

import (
	"strconv"
)

// Per-metric output column suffixes. External consumers rely on these
// names, so they are part of the result contract.
const (
	SuffixPrior   = "_prior"
	SuffixCurrent = "_current"
	SuffixDelta   = "_delta"
	SuffixGrowth  = "_growth_pct"
)

// Header returns the deterministic output column order: grouping keys in
// original order, then prior/current/delta/growth per metric in original
// order.
func Header(groupColumns, metrics []string) []string {
	header := make([]string, 0, len(groupColumns)+4*len(metrics))
	header = append(header, groupColumns...)
	for _, metric := range metrics {
		header = append(header,
			metric+SuffixPrior,
			metric+SuffixCurrent,
			metric+SuffixDelta,
			metric+SuffixGrowth,
		)
	}
	return header
}

// Render converts comparison rows into string records matching Header's
// column order. Totals and deltas keep their shortest exact decimal form;
// growth rates render as two-decimal percentages or the infinity tokens.
func Render(rows []ComparisonRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := make([]string, 0, len(row.Parts)+4*len(row.Metrics))
		record = append(record, row.Parts...)
		for _, m := range row.Metrics {
			record = append(record,
				formatTotal(m.Prior),
				formatTotal(m.Current),
				formatTotal(m.Delta),
				m.Growth.String(),
			)
		}
		records = append(records, record)
	}
	return records
}

// Table renders a comparison as header plus records, ready for a CSV or
// spreadsheet writer.
func Table(c *Comparison) (header []string, records [][]string) {
	return Header(c.GroupColumns, c.Metrics), Render(c.Rows)
}

func formatTotal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
