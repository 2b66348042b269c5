package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"popcli/internal/dataset"
	"popcli/internal/errors"
)

// IntervalSpec partitions the real line into N+1 buckets from N strictly
// increasing cutpoints. Every finite value lands in exactly one bucket:
// the first label covers v <= c1, a middle label ci-cj covers ci < v <= cj,
// and the last covers v > cN.
type IntervalSpec struct {
	Cutpoints []float64
	labels    []string
}

// NewIntervalSpec builds an IntervalSpec. Cutpoints are sorted and
// de-duplicated; at least one finite cutpoint is required.
func NewIntervalSpec(cutpoints []float64) (*IntervalSpec, error) {
	if len(cutpoints) == 0 {
		return nil, errors.NewRangeError("at least one cutpoint is required")
	}

	sorted := make([]float64, len(cutpoints))
	copy(sorted, cutpoints)
	sort.Float64s(sorted)

	unique := sorted[:0]
	for i, c := range sorted {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, errors.NewRangeError("cutpoints must be finite numbers")
		}
		if i > 0 && c == sorted[i-1] {
			continue
		}
		unique = append(unique, c)
	}

	spec := &IntervalSpec{Cutpoints: unique}
	spec.labels = buildLabels(unique)
	return spec, nil
}

// buildLabels renders the N+1 interval labels: <=c1, c1-c2, ..., >cN.
func buildLabels(cutpoints []float64) []string {
	labels := make([]string, 0, len(cutpoints)+1)
	labels = append(labels, "<="+formatCutpoint(cutpoints[0]))
	for i := 0; i < len(cutpoints)-1; i++ {
		labels = append(labels, formatCutpoint(cutpoints[i])+"-"+formatCutpoint(cutpoints[i+1]))
	}
	labels = append(labels, ">"+formatCutpoint(cutpoints[len(cutpoints)-1]))
	return labels
}

func formatCutpoint(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}

// Labels returns the ordered interval labels.
func (s *IntervalSpec) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// LabelFor returns the label of the interval containing v.
func (s *IntervalSpec) LabelFor(v float64) string {
	for i, c := range s.Cutpoints {
		if v <= c {
			return s.labels[i]
		}
	}
	return s.labels[len(s.labels)-1]
}

// LabelIndex returns the ordinal position of a label, or -1 for labels the
// spec did not produce.
func (s *IntervalSpec) LabelIndex(label string) int {
	for i, l := range s.labels {
		if l == label {
			return i
		}
	}
	return -1
}

// String renders the spec for logs.
func (s *IntervalSpec) String() string {
	return fmt.Sprintf("IntervalSpec(%v)", s.Cutpoints)
}

// ApplyBinning returns a copy of the dataset with one synthetic text
// column holding each row's interval label for the given metric. Rows
// whose metric value fails numeric coercion get a missing label and are
// thereby excluded from interval aggregation.
func ApplyBinning(ds *dataset.Dataset, metric string, spec *IntervalSpec) (*dataset.Dataset, error) {
	idx := ds.ColumnIndex(metric)
	if idx < 0 {
		return nil, errors.NewSchemaError("binning metric not present in dataset").
			WithContext("column", metric)
	}

	labels := make([]dataset.Value, len(ds.Rows))
	for i, row := range ds.Rows {
		v, ok := row[idx].Float()
		if !ok {
			labels[i] = dataset.Missing()
			continue
		}
		labels[i] = dataset.Text(spec.LabelFor(v))
	}

	return ds.WithColumn(dataset.Column{Name: IntervalColumn, Type: dataset.TypeText}, labels), nil
}
