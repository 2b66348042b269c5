package analysis

import (
	"context"
	"log/slog"
	"sort"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"popcli/internal/dataset"
	"popcli/internal/errors"
)

// Pipeline runs the full comparison: classify -> (bin) -> aggregate per
// period -> merge -> growth -> ordered result. It holds no per-run state,
// so one Pipeline may serve concurrent runs.
type Pipeline struct {
	logger     *slog.Logger
	classifier *Classifier
	validate   *validator.Validate
}

// NewPipeline creates a pipeline with the given classifier configuration.
func NewPipeline(logger *slog.Logger, cfg ClassifierConfig) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:     logger.With(slog.String("component", "pipeline")),
		classifier: NewClassifier(logger, cfg),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Run executes one comparison of the current period against the prior one.
// Classification and configuration problems surface before any aggregation
// starts; cell-level coercion failures are absorbed per policy and only
// reported in the run's stats.
func (p *Pipeline) Run(ctx context.Context, req Request, current, prior *dataset.Dataset) (*Comparison, error) {
	if err := p.validate.Struct(req); err != nil {
		return nil, errors.NewAppValidationError(err.Error())
	}

	classified := p.classifier.Classify(current, req.ExcludeColumns...)

	p.logger.InfoContext(ctx, "classified columns",
		slog.Any("dimensions", classified.Dimensions),
		slog.Any("metrics", classified.Metrics),
		slog.Any("ignored", classified.Ignored))

	var (
		groupColumns []string
		metrics      []string
		spec         *IntervalSpec
		currentDS    = current
		priorDS      = prior
	)

	switch req.Mode {
	case ModeDimension:
		if len(classified.Dimensions) == 0 {
			return nil, errors.NewSchemaError("no dimension columns detected")
		}
		for _, dim := range req.Dimensions {
			if classified.Role(dim) != RoleDimension {
				return nil, errors.NewSchemaError("requested grouping column is not a dimension").
					WithContext("column", dim)
			}
		}
		groupColumns = req.Dimensions

		var err error
		if metrics, err = p.resolveMetrics(req.Metrics, classified, ""); err != nil {
			return nil, err
		}

	case ModeInterval:
		if classified.Role(req.BinMetric) != RoleMetric {
			return nil, errors.NewSchemaError("binning metric is not a numeric column").
				WithContext("column", req.BinMetric)
		}

		var err error
		if spec, err = NewIntervalSpec(req.Cutpoints); err != nil {
			return nil, err
		}
		if metrics, err = p.resolveMetrics(req.Metrics, classified, req.BinMetric); err != nil {
			return nil, err
		}

		if currentDS, err = ApplyBinning(current, req.BinMetric, spec); err != nil {
			return nil, err
		}
		if priorDS, err = ApplyBinning(prior, req.BinMetric, spec); err != nil {
			return nil, err
		}
		groupColumns = []string{IntervalColumn}
	}

	// The two periods share nothing, so aggregate them concurrently.
	var currentAgg, priorAgg *Aggregate
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		currentAgg, err = AggregateDataset(currentDS, groupColumns, metrics)
		return err
	})
	g.Go(func() error {
		var err error
		priorAgg, err = AggregateDataset(priorDS, groupColumns, metrics)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows, err := Merge(currentAgg, priorAgg)
	if err != nil {
		return nil, err
	}
	p.sortRows(rows, spec)

	coercionFailures := currentAgg.CoercionFailures + priorAgg.CoercionFailures
	if coercionFailures > 0 {
		p.logger.WarnContext(ctx, "some metric values failed numeric coercion and were summed as zero",
			slog.Int("count", coercionFailures))
	}

	p.logger.InfoContext(ctx, "comparison complete",
		slog.String("mode", string(req.Mode)),
		slog.Int("groups", len(rows)),
		slog.Int("metrics", len(metrics)))

	return &Comparison{
		Mode:         req.Mode,
		GroupColumns: groupColumns,
		Metrics:      metrics,
		Rows:         rows,
		Classified:   classified,
		Stats: Stats{
			CurrentRows:      current.NumRows(),
			PriorRows:        prior.NumRows(),
			CurrentGroups:    len(currentAgg.Rows),
			PriorGroups:      len(priorAgg.Rows),
			CoercionFailures: coercionFailures,
		},
	}, nil
}

// resolveMetrics picks the metric list for a run: the explicit request
// list (validated against the classification), or every detected metric
// minus the binning metric.
func (p *Pipeline) resolveMetrics(requested []string, classified Classification, binMetric string) ([]string, error) {
	if len(requested) > 0 {
		metrics := make([]string, 0, len(requested))
		for _, m := range requested {
			if m == binMetric {
				continue
			}
			if classified.Role(m) != RoleMetric {
				return nil, errors.NewSchemaError("requested metric is not a numeric column").
					WithContext("column", m)
			}
			metrics = append(metrics, m)
		}
		if len(metrics) == 0 {
			return nil, errors.NewSchemaError("no metric columns left to aggregate")
		}
		return metrics, nil
	}

	metrics := make([]string, 0, len(classified.Metrics))
	for _, m := range classified.Metrics {
		if m != binMetric {
			metrics = append(metrics, m)
		}
	}
	if len(metrics) == 0 {
		return nil, errors.NewSchemaError("no metric columns detected")
	}
	return metrics, nil
}

// sortRows orders the result deterministically: interval rows follow the
// spec's bucket order, dimension rows sort lexicographically by key parts.
func (p *Pipeline) sortRows(rows []ComparisonRow, spec *IntervalSpec) {
	if spec != nil {
		sort.Slice(rows, func(i, j int) bool {
			return spec.LabelIndex(rows[i].Parts[0]) < spec.LabelIndex(rows[j].Parts[0])
		})
		return
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Key < rows[j].Key
	})
}
