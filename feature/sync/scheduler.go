package sync

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs the service periodically.
type Scheduler struct {
	service  *Service
	interval time.Duration
	logger   *zap.Logger
}

// NewScheduler creates a scheduler. A non-positive interval disables it.
func NewScheduler(service *Service, interval time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{service: service, interval: interval, logger: logger}
}

// Enabled reports whether the scheduler has an interval.
func (s *Scheduler) Enabled() bool {
	return s.interval > 0
}

// Start blocks, triggering a run on every tick until ctx is done.
// When runNow is set the first run starts immediately.
func (s *Scheduler) Start(ctx context.Context, runNow bool) {
	if runNow {
		s.tick(ctx)
	}
	if !s.Enabled() {
		return
	}

	s.logger.Info("Sync scheduler started", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sync scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	summary, shared, err := s.service.Run(ctx)
	if err != nil || shared || summary == nil {
		return
	}
	if summary.HasFailures() {
		s.logger.Warn("Scheduled sync finished with failures",
			zap.String("run_id", summary.RunID),
			zap.Int("aborted", summary.Aborted),
			zap.Int("errors", summary.Counters.Errors),
		)
	}
}
