package reconcile

import (
	"context"

	"go.uber.org/zap"
)

// NopReporter discards every notification.
type NopReporter struct{}

func (NopReporter) WindowStarted(context.Context, string, string) {}
func (NopReporter) PageFetched(context.Context, string, int, int) {}
func (NopReporter) EventApplied(context.Context, string, ChangeEvent, error) {}
func (NopReporter) WindowFinished(context.Context, string, Summary) {}

// LogReporter writes notifications to a zap logger.
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter creates a reporter backed by logger.
func NewLogReporter(logger *zap.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// WindowStarted logs the window title.
func (r *LogReporter) WindowStarted(_ context.Context, runID, date string) {
	r.logger.Info("Processing changes", zap.String("run_id", runID), zap.String("date", date))
}

// PageFetched logs the page number and its item count.
func (r *LogReporter) PageFetched(_ context.Context, date string, page, items int) {
	r.logger.Info("Fetched change feed page",
		zap.String("date", date),
		zap.Int("page", page),
		zap.Int("items", items),
	)
}

// EventApplied logs failed applies only; successes are too chatty for info level.
func (r *LogReporter) EventApplied(_ context.Context, date string, ev ChangeEvent, err error) {
	if err == nil {
		return
	}
	r.logger.Error("Change not applied",
		zap.String("date", date),
		zap.String("source_id", ev.SourceID),
		zap.String("change_type", string(ev.ChangeType)),
		zap.Error(err),
	)
}

// WindowFinished logs the per-date summary.
func (r *LogReporter) WindowFinished(_ context.Context, runID string, s Summary) {
	fields := []zap.Field{
		zap.String("run_id", runID),
		zap.String("date", s.Date),
		zap.String("status", string(s.Status)),
		zap.Int("pages", s.Pages),
		zap.Int("total", s.Total),
		zap.Int("created", s.Counters.Created),
		zap.Int("updated", s.Counters.Updated),
		zap.Int("deleted", s.Counters.Deleted),
		zap.Int("duplicate", s.Counters.Duplicate),
		zap.Int("malformed", s.Counters.Malformed),
		zap.Int("irrelevant", s.Counters.Irrelevant),
		zap.Int("errors", s.Counters.Errors),
		zap.Bool("checkpointed", s.Checkpointed),
	}
	if s.Status == StatusAborted || s.Counters.Errors > 0 {
		r.logger.Warn("Date summary", append(fields, zap.String("error", s.Error))...)
		return
	}
	r.logger.Info("Date summary", fields...)
}

// MultiReporter fans notifications out to several reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) WindowStarted(ctx context.Context, runID, date string) {
	for _, r := range m {
		r.WindowStarted(ctx, runID, date)
	}
}

func (m MultiReporter) PageFetched(ctx context.Context, date string, page, items int) {
	for _, r := range m {
		r.PageFetched(ctx, date, page, items)
	}
}

func (m MultiReporter) EventApplied(ctx context.Context, date string, ev ChangeEvent, err error) {
	for _, r := range m {
		r.EventApplied(ctx, date, ev, err)
	}
}

func (m MultiReporter) WindowFinished(ctx context.Context, runID string, s Summary) {
	for _, r := range m {
		r.WindowFinished(ctx, runID, s)
	}
}
