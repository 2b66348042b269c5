package analysis

import (
	"log/slog"
	"strings"

	"popcli/internal/dataset"
)

// defaultExcludeColumns are common identifier and date column names that
// never make useful dimensions or metrics. Matched case-insensitively.
var defaultExcludeColumns = []string{
	"id",
	"customer_id", "cust_id",
	"order_id", "order_no",
	"product_id", "prod_id",
	"date", "time", "datetime",
}

// ClassifierConfig holds configuration options for the Classifier.
type ClassifierConfig struct {
	// ExcludeColumns are additional names classified Ignored, merged with
	// the defaults. Case-insensitive.
	ExcludeColumns []string
	// SampleSize bounds how many non-missing values are probed for a
	// column whose declared type is ambiguous.
	SampleSize int
}

// DefaultClassifierConfig returns the default classifier configuration.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{SampleSize: 10}
}

// Classifier assigns each dataset column a role: dimension, metric, or
// ignored. It carries no per-run state; Classify is a pure function of the
// dataset and the fixed exclusion set.
type Classifier struct {
	logger     *slog.Logger
	exclude    map[string]struct{}
	sampleSize int
}

// NewClassifier creates a classifier with the given configuration.
func NewClassifier(logger *slog.Logger, cfg ClassifierConfig) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = 10
	}

	exclude := make(map[string]struct{}, len(defaultExcludeColumns)+len(cfg.ExcludeColumns))
	for _, name := range defaultExcludeColumns {
		exclude[strings.ToLower(name)] = struct{}{}
	}
	for _, name := range cfg.ExcludeColumns {
		exclude[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	return &Classifier{
		logger:     logger,
		exclude:    exclude,
		sampleSize: cfg.SampleSize,
	}
}

// Classification is the result of classifying one dataset: two disjoint
// ordered column lists plus the names that were set aside.
type Classification struct {
	Dimensions []string `json:"dimensions"`
	Metrics    []string `json:"metrics"`
	Ignored    []string `json:"ignored"`
}

// Role returns the role assigned to the named column.
func (c Classification) Role(name string) ColumnRole {
	for _, d := range c.Dimensions {
		if d == name {
			return RoleDimension
		}
	}
	for _, m := range c.Metrics {
		if m == name {
			return RoleMetric
		}
	}
	return RoleIgnored
}

// Classify inspects every column and assigns it a role, preserving the
// dataset's column order within each list. Extra names in excludeExtra are
// ignored for this call on top of the configured exclusion set.
func (c *Classifier) Classify(ds *dataset.Dataset, excludeExtra ...string) Classification {
	extra := make(map[string]struct{}, len(excludeExtra))
	for _, name := range excludeExtra {
		extra[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	var result Classification
	for _, col := range ds.Columns {
		lower := strings.ToLower(col.Name)
		if _, ok := c.exclude[lower]; ok {
			result.Ignored = append(result.Ignored, col.Name)
			continue
		}
		if _, ok := extra[lower]; ok {
			result.Ignored = append(result.Ignored, col.Name)
			continue
		}

		values := nonMissing(ds.Values(col.Name))
		if len(values) == 0 {
			result.Ignored = append(result.Ignored, col.Name)
			continue
		}

		switch classifyColumn(col.Type, sample(values, c.sampleSize)) {
		case RoleDimension:
			result.Dimensions = append(result.Dimensions, col.Name)
		case RoleMetric:
			result.Metrics = append(result.Metrics, col.Name)
		default:
			result.Ignored = append(result.Ignored, col.Name)
		}
	}

	c.logger.Debug("classified dataset columns",
		slog.Int("dimensions", len(result.Dimensions)),
		slog.Int("metrics", len(result.Metrics)),
		slog.Int("ignored", len(result.Ignored)))

	return result
}

// classifyColumn is the role decision for a single column: declared type
// first, sample convertibility for the ambiguous case.
func classifyColumn(declared dataset.ColumnType, samples []dataset.Value) ColumnRole {
	switch declared {
	case dataset.TypeNumber:
		return RoleMetric
	case dataset.TypeText:
		return RoleDimension
	default:
		// Mixed content: probe a sample; metric only if every sampled
		// value converts.
		for _, v := range samples {
			if _, ok := v.Float(); !ok {
				return RoleDimension
			}
		}
		return RoleMetric
	}
}

func nonMissing(values []dataset.Value) []dataset.Value {
	out := make([]dataset.Value, 0, len(values))
	for _, v := range values {
		if !v.IsMissing() {
			out = append(out, v)
		}
	}
	return out
}

func sample(values []dataset.Value, n int) []dataset.Value {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
