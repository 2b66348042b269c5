// Package analysis implements the period-over-period comparison engine.
// It reconciles two snapshots of a tabular dataset and produces per-group
// (or per-interval-bucket) metric totals, absolute deltas, and growth
// rates with explicit zero-denominator handling.
//
// # Architecture
//
// The engine is a linear pipeline of six stateless components:
//
//  1. Classifier: assigns each column a role (dimension, metric, ignored)
//  2. IntervalSpec / ApplyBinning: maps a metric onto ordered value buckets
//  3. AggregateDataset: groups rows and sums metrics per period
//  4. Merge: outer-joins the two periods' aggregates, zero-filling gaps
//  5. Growth: computes delta and growth rate per group and metric
//  6. Header / Render: arranges and formats the output deterministically
//
// Pipeline.Run wires them together. All components are pure functions of
// their inputs; nothing carries state across calls, so a single Pipeline
// can serve concurrent runs.
//
// # Usage
//
//	p := analysis.NewPipeline(logger, analysis.DefaultClassifierConfig())
//	result, err := p.Run(ctx, analysis.Request{
//	    Mode:       analysis.ModeDimension,
//	    Dimensions: []string{"region"},
//	}, currentDS, priorDS)
//
// # Error Handling
//
// Schema and configuration problems (no metrics detected, bad cutpoints,
// non-numeric binning metric) fail fast before any aggregation starts.
// Cell-level coercion failures never fail a run: they are absorbed as
// zeros (aggregation) or row exclusion (binning) and reported only in the
// run's stats.
package analysis
