package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	imports   *ImportService
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

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Imports *ImportStats `json:"imports,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, imports *ImportService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized", slog.String("version", version))

	return &HealthService{
		version:   version,
		imports:   imports,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck returns readiness status
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	imports := hs.checkImportHealth()
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]interface{}{
			"imports": imports,
		},
	}
	if imports.Status != "ready" {
		status.Status = "not_ready"
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() contracts.VersionInfo {
	return contracts.GetVersionInfo()
}

// checkImportHealth reports whether uploads can be validated
func (hs *HealthService) checkImportHealth() ServiceHealth {
	if hs.imports == nil || hs.imports.engine == nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: "validation engine not configured",
		}
	}

	stats := hs.imports.Stats()
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d of %d import slots in use", stats.InFlight, stats.Capacity),
		Imports: &stats,
	}
}
