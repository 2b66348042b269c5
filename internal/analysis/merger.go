package analysis

import (
	"popcli/internal/errors"
)

// Merge outer-joins the two periods' aggregates on GroupKey. The result
// covers the union of both key sets; a group present in only one period
// has the other side's totals zero-filled before growth is computed. Row
// order is unspecified; the pipeline sorts.
func Merge(current, prior *Aggregate) ([]ComparisonRow, error) {
	if !sameColumns(current.GroupColumns, prior.GroupColumns) {
		return nil, errors.NewConfigError("period aggregates have different grouping columns", nil)
	}
	if !sameColumns(current.Metrics, prior.Metrics) {
		return nil, errors.NewConfigError("period aggregates have different metric columns", nil)
	}

	keys := make(map[GroupKey][]string, len(current.Rows)+len(prior.Rows))
	for key, row := range current.Rows {
		keys[key] = row.Parts
	}
	for key, row := range prior.Rows {
		if _, seen := keys[key]; !seen {
			keys[key] = row.Parts
		}
	}

	rows := make([]ComparisonRow, 0, len(keys))
	for key, parts := range keys {
		row := ComparisonRow{
			Key:     key,
			Parts:   parts,
			Metrics: make([]MetricComparison, 0, len(current.Metrics)),
		}

		for _, metric := range current.Metrics {
			var priorTotal, currentTotal float64
			if aggRow, ok := prior.Rows[key]; ok {
				priorTotal = aggRow.Totals[metric]
			}
			if aggRow, ok := current.Rows[key]; ok {
				currentTotal = aggRow.Totals[metric]
			}

			delta, rate := Growth(priorTotal, currentTotal)
			row.Metrics = append(row.Metrics, MetricComparison{
				Metric:  metric,
				Prior:   priorTotal,
				Current: currentTotal,
				Delta:   delta,
				Growth:  rate,
			})
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
