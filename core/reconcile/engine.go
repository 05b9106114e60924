package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultLookbackDays is the number of trailing calendar days considered by a run.
const DefaultLookbackDays = 7

// Spec bundles the collaborators and settings of the engine.
type Spec struct {
	// Feed reads the source change feed.
	Feed FeedReader

	// Resolver maps source ids to destination ids for deletes.
	Resolver Resolver

	// Applier performs destination mutations.
	Applier Applier

	// Checkpoint stores the dates considered complete.
	Checkpoint Checkpoint

	// Reporter receives progress notifications. Optional.
	Reporter Reporter

	// RecordKind restricts reconciliation to one record family. Empty accepts all.
	RecordKind string

	// LookbackDays is the size of the trailing window, today included.
	// Zero or negative uses DefaultLookbackDays.
	LookbackDays int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Engine computes which dates still need reconciling and reconciles them in order.
type Engine struct {
	spec   Spec
	window *Window
	logger *zap.Logger
}

// NewEngine validates spec and returns an engine.
func NewEngine(spec Spec, logger *zap.Logger) (*Engine, error) {
	if spec.Feed == nil || spec.Resolver == nil || spec.Applier == nil || spec.Checkpoint == nil {
		return nil, fmt.Errorf("reconcile spec requires feed, resolver, applier and checkpoint")
	}
	if spec.LookbackDays <= 0 {
		spec.LookbackDays = DefaultLookbackDays
	}
	if spec.Now == nil {
		spec.Now = time.Now
	}
	if spec.Reporter == nil {
		spec.Reporter = NopReporter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		spec:   spec,
		window: NewWindow(spec.Feed, spec.Resolver, spec.Applier, spec.Checkpoint, spec.RecordKind, logger),
		logger: logger,
	}, nil
}

// MissingDates returns the lookback dates absent from the checkpoint, oldest first.
func (e *Engine) MissingDates(ctx context.Context) ([]string, error) {
	completed, err := e.spec.Checkpoint.Completed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	// Scan from today backwards, then reverse for processing order.
	var missing []string
	day := e.spec.Now()
	for i := 0; i < e.spec.LookbackDays; i++ {
		date := day.AddDate(0, 0, -i).Format(DateLayout)
		if _, ok := completed[date]; !ok {
			missing = append(missing, date)
		}
	}
	for i, j := 0, len(missing)-1; i < j; i, j = i+1, j-1 {
		missing[i], missing[j] = missing[j], missing[i]
	}

	return missing, nil
}

// Run reconciles every missing date of the lookback window, oldest first.
// A failing date does not stop the following ones. The returned error is non-nil only
// when the checkpoint cannot be read or ctx is cancelled between dates.
func (e *Engine) Run(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: e.spec.Now(),
	}

	missing, err := e.MissingDates(ctx)
	if err != nil {
		return nil, err
	}

	if len(missing) == 0 {
		e.logger.Info("Nothing to update", zap.Int("lookback_days", e.spec.LookbackDays))
		summary.FinishedAt = e.spec.Now()
		return summary, nil
	}

	e.logger.Info("Reconciling change feed",
		zap.String("run_id", summary.RunID),
		zap.Strings("dates", missing),
	)

	for _, date := range missing {
		if err := ctx.Err(); err != nil {
			summary.FinishedAt = e.spec.Now()
			return summary, err
		}
		rc := NewRunContext(summary.RunID, date, e.spec.Reporter)
		summary.add(e.window.Reconcile(ctx, rc))
	}

	summary.FinishedAt = e.spec.Now()
	e.logger.Info("Change feed reconciliation finished",
		zap.String("run_id", summary.RunID),
		zap.Int("dates", len(summary.Dates)),
		zap.Int("aborted", summary.Aborted),
		zap.Int("errors", summary.Counters.Errors),
	)

	return summary, nil
}
