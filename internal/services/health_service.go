package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"popcli/internal/config"
	"popcli/internal/store"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	paths     config.PathsConfig
	store     *store.Store
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version string, paths config.PathsConfig, st *store.Store, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		paths:     paths,
		store:     st,
		startTime: time.Now(),
		logger:    logger,
	}
}

// GetHealth returns the overall service health.
func (hs *HealthService) GetHealth(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
			"goroutines":     runtime.NumGoroutine(),
		},
		Services: map[string]interface{}{},
	}

	if hs.store != nil {
		storeStatus := "healthy"
		if _, err := hs.store.ListRuns(ctx, 1); err != nil {
			storeStatus = fmt.Sprintf("unhealthy: %v", err)
			status.Status = "degraded"
		}
		status.Services["run_store"] = storeStatus
	}

	hs.logger.DebugContext(ctx, "health check",
		slog.String("status", status.Status))
	return status
}
