package analysis

import "strings"

// Mode selects how rows are grouped for comparison.
type Mode string

const (
	// ModeDimension groups by one or more dimension columns.
	ModeDimension Mode = "dimension"
	// ModeInterval groups by value buckets of a single metric.
	ModeInterval Mode = "interval"
)

// IntervalColumn is the name of the synthetic grouping column added by the
// interval binner.
const IntervalColumn = "interval"

// ColumnRole is the part a column plays in one analysis run.
type ColumnRole int

const (
	RoleIgnored ColumnRole = iota
	RoleDimension
	RoleMetric
)

func (r ColumnRole) String() string {
	switch r {
	case RoleDimension:
		return "dimension"
	case RoleMetric:
		return "metric"
	default:
		return "ignored"
	}
}

// groupKeySep joins key parts into one comparable string. The unit
// separator cannot appear in cell text read from spreadsheets.
const groupKeySep = "\x1f"

// GroupKey identifies one aggregated row: the joined tuple of dimension
// values, or a single interval label.
type GroupKey string

// MakeGroupKey builds a GroupKey from ordered key parts.
func MakeGroupKey(parts []string) GroupKey {
	return GroupKey(strings.Join(parts, groupKeySep))
}

// Parts splits the key back into its ordered parts. The empty key (grand
// total row) has no parts.
func (k GroupKey) Parts() []string {
	if k == "" {
		return nil
	}
	return strings.Split(string(k), groupKeySep)
}

// AggregateRow holds one group's metric totals for a single period.
type AggregateRow struct {
	Key    GroupKey
	Parts  []string
	Totals map[string]float64
}

// Aggregate is one period's grouped totals: a mapping from GroupKey to
// per-metric sums. No row ordering is implied.
type Aggregate struct {
	GroupColumns []string
	Metrics      []string
	Rows         map[GroupKey]*AggregateRow

	// CoercionFailures counts metric cells that failed numeric coercion
	// and were summed as zero.
	CoercionFailures int
}

// MetricComparison is the prior/current/delta/growth quadruple for one
// metric in one group.
type MetricComparison struct {
	Metric  string     `json:"metric"`
	Prior   float64    `json:"prior"`
	Current float64    `json:"current"`
	Delta   float64    `json:"delta"`
	Growth  GrowthRate `json:"growth_pct"`
}

// ComparisonRow is one group's period-over-period comparison.
type ComparisonRow struct {
	Key     GroupKey           `json:"-"`
	Parts   []string           `json:"group"`
	Metrics []MetricComparison `json:"metrics"`
}

// Stats summarizes one pipeline run.
type Stats struct {
	CurrentRows      int `json:"current_rows"`
	PriorRows        int `json:"prior_rows"`
	CurrentGroups    int `json:"current_groups"`
	PriorGroups      int `json:"prior_groups"`
	CoercionFailures int `json:"coercion_failures"`
}

// Comparison is the full result of one pipeline run.
type Comparison struct {
	Mode         Mode             `json:"mode"`
	GroupColumns []string         `json:"group_columns"`
	Metrics      []string         `json:"metrics"`
	Rows         []ComparisonRow  `json:"rows"`
	Classified   Classification   `json:"classified"`
	Stats        Stats            `json:"stats"`
}

// Request configures one pipeline run. Grouping is either a non-empty list
// of dimension names, or one metric plus cutpoints for interval binning.
type Request struct {
	Mode Mode `json:"mode" validate:"required,oneof=dimension interval"`

	// Dimension mode
	Dimensions []string `json:"dimensions,omitempty" validate:"required_if=Mode dimension"`

	// Interval mode
	BinMetric string    `json:"bin_metric,omitempty" validate:"required_if=Mode interval"`
	Cutpoints []float64 `json:"cutpoints,omitempty" validate:"required_if=Mode interval"`

	// Metrics to sum. Empty means every metric the classifier detected
	// (minus the binning metric in interval mode).
	Metrics []string `json:"metrics,omitempty"`

	// ExcludeColumns extends the classifier's exclusion set for this run.
	ExcludeColumns []string `json:"exclude_columns,omitempty"`
}
