package http

import (
	"context"

	"popcli/internal/analysis"
	"popcli/internal/services"
	"popcli/internal/store"
)

// AnalysisServiceInterface defines the interface for analysis operations
type AnalysisServiceInterface interface {
	RunAnalysis(ctx context.Context, req services.RunRequest) (*services.RunResult, error)
	MetricRange(ctx context.Context, req services.RangeRequest) (analysis.RangeSummary, error)
	ListRuns(ctx context.Context, limit int) ([]*store.Run, error)
	GetRun(ctx context.Context, id string) (*store.Run, error)
}
