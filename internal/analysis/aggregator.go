package analysis

import (
	"popcli/internal/dataset"
	"popcli/internal/errors"
)

// AggregateDataset groups the dataset's rows by the given key columns and
// sums each metric column per group.
//
// Combinations absent from the data produce no row. Rows with a missing
// value in any key column are excluded from grouping (this is also how
// binner-rejected rows drop out of interval aggregation). Metric cells
// that fail numeric coercion count as zero and are tallied in
// CoercionFailures. An empty key list yields a single grand-total row; an
// empty metric list is a configuration error.
func AggregateDataset(ds *dataset.Dataset, groupColumns, metrics []string) (*Aggregate, error) {
	if len(metrics) == 0 {
		return nil, errors.NewConfigError("aggregation requires at least one metric column", nil)
	}

	keyIdx := make([]int, len(groupColumns))
	for i, name := range groupColumns {
		idx := ds.ColumnIndex(name)
		if idx < 0 {
			return nil, errors.NewSchemaError("grouping column not present in dataset").
				WithContext("column", name)
		}
		keyIdx[i] = idx
	}

	metricIdx := make([]int, len(metrics))
	for i, name := range metrics {
		idx := ds.ColumnIndex(name)
		if idx < 0 {
			return nil, errors.NewSchemaError("metric column not present in dataset").
				WithContext("column", name)
		}
		metricIdx[i] = idx
	}

	agg := &Aggregate{
		GroupColumns: groupColumns,
		Metrics:      metrics,
		Rows:         make(map[GroupKey]*AggregateRow),
	}

	for _, row := range ds.Rows {
		parts, ok := keyParts(row, keyIdx)
		if !ok {
			continue
		}
		key := MakeGroupKey(parts)

		aggRow, exists := agg.Rows[key]
		if !exists {
			aggRow = &AggregateRow{
				Key:    key,
				Parts:  parts,
				Totals: make(map[string]float64, len(metrics)),
			}
			agg.Rows[key] = aggRow
		}

		for i, name := range metrics {
			cell := row[metricIdx[i]]
			if cell.IsMissing() {
				continue
			}
			v, ok := cell.Float()
			if !ok {
				agg.CoercionFailures++
				continue
			}
			aggRow.Totals[name] += v
		}
	}

	return agg, nil
}

// keyParts extracts the grouping tuple for one row. Rows with a missing
// key cell carry no group and are skipped.
func keyParts(row dataset.Row, keyIdx []int) ([]string, bool) {
	parts := make([]string, len(keyIdx))
	for i, idx := range keyIdx {
		cell := row[idx]
		if cell.IsMissing() {
			return nil, false
		}
		parts[i] = cell.String()
	}
	return parts, true
}
