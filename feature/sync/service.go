package sync

import (
	"context"
	gosync "sync"
	"sync/atomic"
	"time"

	"record-sync/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Runner executes one reconciliation run.
type Runner interface {
	Run(ctx context.Context) (*reconcile.RunSummary, error)
	MissingDates(ctx context.Context) ([]string, error)
}

// CheckpointReader lists the checkpoint log content.
type CheckpointReader interface {
	Lines(ctx context.Context) ([]string, error)
}

// MappingCounter reports how many records are mapped to the destination.
type MappingCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Status is the state reported by the status endpoint.
type Status struct {
	Running   bool                  `json:"running"`
	LastRun   *reconcile.RunSummary `json:"last_run,omitempty"`
	LastError string                `json:"last_error,omitempty"`
	LastAt    *time.Time            `json:"last_at,omitempty"`
	Mappings  *int64                `json:"mappings,omitempty"`
}

// CheckpointView lists the completed and missing dates of the lookback window.
type CheckpointView struct {
	Completed []string `json:"completed"`
	Missing   []string `json:"missing"`
}

// Service coordinates reconciliation runs.
type Service struct {
	runner     Runner
	checkpoint CheckpointReader
	mappings   MappingCounter
	logger     *zap.Logger

	group   singleflight.Group
	running atomic.Bool

	mu      gosync.RWMutex
	last    *reconcile.RunSummary
	lastErr error
	lastAt  time.Time
}

// NewService creates a new sync service. mappings may be nil.
func NewService(runner Runner, checkpoint CheckpointReader, mappings MappingCounter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		runner:     runner,
		checkpoint: checkpoint,
		mappings:   mappings,
		logger:     logger,
	}
}

// Run executes a reconciliation run, or joins the one already in flight.
// shared is true when the result comes from a run started by another caller.
func (s *Service) Run(ctx context.Context) (summary *reconcile.RunSummary, shared bool, err error) {
	v, err, shared := s.group.Do("run", func() (any, error) {
		s.running.Store(true)
		defer s.running.Store(false)

		summary, err := s.runner.Run(ctx)

		s.mu.Lock()
		if summary != nil {
			s.last = summary
		}
		s.lastErr = err
		s.lastAt = time.Now().UTC()
		s.mu.Unlock()

		if err != nil {
			s.logger.Error("Sync run failed", zap.Error(err))
		}
		return summary, err
	})
	if v != nil {
		summary = v.(*reconcile.RunSummary)
	}
	return summary, shared, err
}

// Status returns the current state.
func (s *Service) Status(ctx context.Context) Status {
	s.mu.RLock()
	st := Status{
		Running: s.running.Load(),
		LastRun: s.last,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	if !s.lastAt.IsZero() {
		at := s.lastAt
		st.LastAt = &at
	}
	s.mu.RUnlock()

	if s.mappings != nil {
		if n, err := s.mappings.Count(ctx); err != nil {
			s.logger.Warn("Failed to count mappings", zap.Error(err))
		} else {
			st.Mappings = &n
		}
	}
	return st
}

// Checkpoint returns the checkpoint log and the dates still missing.
func (s *Service) Checkpoint(ctx context.Context) (*CheckpointView, error) {
	completed, err := s.checkpoint.Lines(ctx)
	if err != nil {
		return nil, err
	}
	missing, err := s.runner.MissingDates(ctx)
	if err != nil {
		return nil, err
	}
	if completed == nil {
		completed = []string{}
	}
	if missing == nil {
		missing = []string{}
	}
	return &CheckpointView{Completed: completed, Missing: missing}, nil
}
