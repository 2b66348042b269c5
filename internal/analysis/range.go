package analysis

import (
	"sort"

	"popcli/internal/dataset"
	"popcli/internal/errors"
)

// RangeSummary describes a metric's observed value range across the
// supplied datasets. It backs cutpoint selection before an interval run.
type RangeSummary struct {
	Metric string  `json:"metric"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// MetricRange computes min/max/mean/median of one metric over every
// supplied dataset (typically both periods combined). Values that fail
// numeric coercion are skipped; a metric with no coercible values is a
// schema error.
func MetricRange(metric string, datasets ...*dataset.Dataset) (RangeSummary, error) {
	var values []float64
	for _, ds := range datasets {
		for _, cell := range ds.Values(metric) {
			if v, ok := cell.Float(); ok {
				values = append(values, v)
			}
		}
	}

	if len(values) == 0 {
		return RangeSummary{}, errors.NewSchemaError("metric has no numeric values").
			WithContext("column", metric)
	}

	sort.Float64s(values)

	var sum float64
	for _, v := range values {
		sum += v
	}

	n := len(values)
	median := values[n/2]
	if n%2 == 0 {
		median = (values[n/2-1] + values[n/2]) / 2
	}

	return RangeSummary{
		Metric: metric,
		Count:  n,
		Min:    values[0],
		Max:    values[n-1],
		Mean:   sum / float64(n),
		Median: median,
	}, nil
}
