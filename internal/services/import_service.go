package services

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/WayPool/ElysiumBOT-sub001/internal/infrastructure"
	"github.com/WayPool/ElysiumBOT-sub001/internal/tradeimport"
)

// ImportStats is a point-in-time view of import slot usage
type ImportStats struct {
	Capacity int64 `json:"capacity"`
	InFlight int64 `json:"in_flight"`
}

// ImportService runs uploads through the validation engine with a bounded
// number of concurrent validations.
type ImportService struct {
	engine   *tradeimport.Engine
	slots    *semaphore.Weighted
	capacity int64
	inFlight atomic.Int64
	logger   *slog.Logger
}

// NewImportService creates an import service allowing maxConcurrent validations at once
func NewImportService(engine *tradeimport.Engine, maxConcurrent int64, logger *slog.Logger) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &ImportService{
		engine:   engine,
		slots:    semaphore.NewWeighted(maxConcurrent),
		capacity: maxConcurrent,
		logger:   infrastructure.WithComponent(logger, "import_service"),
	}
}

// Validate validates one uploaded stream. It never waits for a slot: when
// all slots are busy it returns ErrImportCapacity immediately.
func (s *ImportService) Validate(ctx context.Context, name string, size int64, r io.Reader) (*tradeimport.Result, error) {
	if s.engine == nil {
		return nil, ErrNoEngine
	}
	if !s.slots.TryAcquire(1) {
		s.logger.WarnContext(ctx, "import rejected, no free slot",
			slog.String("name", name),
			slog.Int64("capacity", s.capacity))
		return nil, ErrImportCapacity
	}
	s.inFlight.Add(1)
	defer func() {
		s.inFlight.Add(-1)
		s.slots.Release(1)
	}()

	s.logger.DebugContext(ctx, "import started",
		slog.String("name", name),
		slog.Int64("size", size))

	return s.engine.ValidateReader(ctx, name, size, r), nil
}

// Stats reports current slot usage
func (s *ImportService) Stats() ImportStats {
	return ImportStats{
		Capacity: s.capacity,
		InFlight: s.inFlight.Load(),
	}
}
