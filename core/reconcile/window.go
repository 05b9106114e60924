package reconcile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// RunContext carries the state of one date window. It is created when the window
// starts, passed explicitly to every step and dropped when the window ends.
type RunContext struct {
	RunID    string
	Date     string
	Page     int
	Reporter Reporter

	// seen holds every source id already acted on for Date, across all pages.
	seen    map[string]struct{}
	summary Summary
}

// NewRunContext returns an empty context for date.
func NewRunContext(runID, date string, reporter Reporter) *RunContext {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &RunContext{
		RunID:    runID,
		Date:     date,
		Reporter: reporter,
		seen:     make(map[string]struct{}),
		summary:  Summary{Date: date, Status: StatusDone},
	}
}

// claim marks sourceID as acted on and reports whether this was its first occurrence.
func (rc *RunContext) claim(sourceID string) bool {
	if _, ok := rc.seen[sourceID]; ok {
		return false
	}
	rc.seen[sourceID] = struct{}{}
	return true
}

// Summary returns a copy of the window's current summary.
func (rc *RunContext) Summary() Summary {
	return rc.summary
}

type eventClass int

const (
	classMalformed eventClass = iota
	classIrrelevant
	classDelete
	classUpsert
)

// Window reconciles the change feed of a single date.
type Window struct {
	feed       FeedReader
	resolver   Resolver
	applier    Applier
	checkpoint Checkpoint
	logger     *zap.Logger

	// recordKind is the only record kind acted on. Empty accepts every kind.
	recordKind string
}

// NewWindow creates a date window over the given collaborators.
func NewWindow(feed FeedReader, resolver Resolver, applier Applier, checkpoint Checkpoint, recordKind string, logger *zap.Logger) *Window {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Window{
		feed:       feed,
		resolver:   resolver,
		applier:    applier,
		checkpoint: checkpoint,
		logger:     logger,
		recordKind: recordKind,
	}
}

// Reconcile walks every page of date's feed and applies its events.
// It never returns an error: a failed page fetch ends the window with StatusAborted
// and per-event failures are counted in the summary.
func (w *Window) Reconcile(ctx context.Context, rc *RunContext) Summary {
	rc.Reporter.WindowStarted(ctx, rc.RunID, rc.Date)

	cursor := ""
	for {
		rc.Page++

		page, err := w.feed.FetchPage(ctx, rc.Date, cursor)
		if err != nil {
			w.abort(rc, err)
			break
		}
		rc.summary.Pages = rc.Page
		if rc.Page == 1 {
			rc.summary.Total = page.TotalCount
		}
		rc.Reporter.PageFetched(ctx, rc.Date, rc.Page, len(page.Events))

		if rc.Page == 1 && page.TotalCount == 0 && len(page.Events) == 0 {
			w.markComplete(ctx, rc)
			break
		}

		w.applyPage(ctx, rc, page)

		if page.NextCursor == "" {
			break
		}
		if page.NextCursor == cursor {
			w.logger.Warn("Change feed returned the same cursor twice, stopping pagination",
				zap.String("date", rc.Date),
				zap.String("cursor", cursor),
			)
			break
		}
		cursor = page.NextCursor
	}

	summary := rc.Summary()
	rc.Reporter.WindowFinished(ctx, rc.RunID, summary)
	return summary
}

func (w *Window) abort(rc *RunContext, err error) {
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		err = &FetchError{Date: rc.Date, Page: rc.Page, Err: err}
	} else if fetchErr.Page == 0 {
		fetchErr.Page = rc.Page
	}
	rc.summary.Status = StatusAborted
	rc.summary.Error = err.Error()
	w.logger.Error("Change feed fetch failed, skipping date",
		zap.String("date", rc.Date),
		zap.Int("page", rc.Page),
		zap.Error(err),
	)
}

func (w *Window) markComplete(ctx context.Context, rc *RunContext) {
	if err := w.checkpoint.MarkComplete(ctx, rc.Date); err != nil {
		rc.summary.Counters.Errors++
		rc.summary.Error = fmt.Sprintf("checkpoint: %v", err)
		w.logger.Error("Failed to record completed date", zap.String("date", rc.Date), zap.Error(err))
		return
	}
	rc.summary.Checkpointed = true
}

// applyPage processes all deletes of the page before any create or update.
func (w *Window) applyPage(ctx context.Context, rc *RunContext, page Page) {
	var deletes, upserts []ChangeEvent
	for _, ev := range page.Events {
		switch w.classify(ev) {
		case classMalformed:
			rc.summary.Counters.Malformed++
		case classIrrelevant:
			rc.summary.Counters.Irrelevant++
		case classDelete:
			deletes = append(deletes, ev)
		case classUpsert:
			upserts = append(upserts, ev)
		}
	}

	for _, ev := range deletes {
		w.applyDelete(ctx, rc, ev)
	}
	for _, ev := range upserts {
		w.applyUpsert(ctx, rc, ev)
	}
}

func (w *Window) classify(ev ChangeEvent) eventClass {
	if ev.SourceID == "" || ev.ChangeType == "" {
		return classMalformed
	}
	if w.recordKind != "" && ev.RecordKind != w.recordKind {
		return classIrrelevant
	}
	switch ev.ChangeType.Normalize() {
	case ChangeDelete:
		return classDelete
	case ChangeCreate, ChangeUpdate:
		return classUpsert
	default:
		return classMalformed
	}
}

func (w *Window) applyDelete(ctx context.Context, rc *RunContext, ev ChangeEvent) {
	if !rc.claim(ev.SourceID) {
		rc.summary.Counters.Duplicate++
		return
	}
	rc.summary.Counters.Deleted++

	destinationID, err := w.resolver.Resolve(ctx, ev.SourceID)
	if errors.Is(err, ErrNotFound) {
		rc.summary.Outcomes.Absent++
		rc.Reporter.EventApplied(ctx, rc.Date, ev, nil)
		return
	}
	if err != nil {
		w.fail(ctx, rc, ev, &ApplyError{Op: "resolve", SourceID: ev.SourceID, Err: err})
		return
	}

	outcome, err := w.applier.ApplyDelete(ctx, destinationID)
	if err != nil {
		w.fail(ctx, rc, ev, &ApplyError{Op: "delete", SourceID: ev.SourceID, Err: err})
		return
	}
	if outcome == DeleteAbsent {
		rc.summary.Outcomes.Absent++
	} else {
		rc.summary.Outcomes.Deleted++
	}
	w.logger.Debug("Deleted destination record",
		zap.String("source_id", ev.SourceID),
		zap.String("destination_id", destinationID),
	)
	rc.Reporter.EventApplied(ctx, rc.Date, ev, nil)
}

func (w *Window) applyUpsert(ctx context.Context, rc *RunContext, ev ChangeEvent) {
	if !rc.claim(ev.SourceID) {
		rc.summary.Counters.Duplicate++
		return
	}
	if ev.ChangeType.Normalize() == ChangeCreate {
		rc.summary.Counters.Created++
	} else {
		rc.summary.Counters.Updated++
	}

	outcome, err := w.applier.ApplyUpsert(ctx, ev.SourceID)
	if err != nil {
		w.fail(ctx, rc, ev, &ApplyError{Op: "upsert", SourceID: ev.SourceID, Err: err})
		return
	}
	if outcome == UpsertCreated {
		rc.summary.Outcomes.Created++
	} else {
		rc.summary.Outcomes.Updated++
	}
	w.logger.Debug("Upserted destination record",
		zap.String("source_id", ev.SourceID),
		zap.String("change_type", string(ev.ChangeType)),
		zap.Stringer("outcome", outcome),
	)
	rc.Reporter.EventApplied(ctx, rc.Date, ev, nil)
}

func (w *Window) fail(ctx context.Context, rc *RunContext, ev ChangeEvent, err *ApplyError) {
	rc.summary.Counters.Errors++
	w.logger.Warn("Failed to apply change",
		zap.String("date", rc.Date),
		zap.String("source_id", ev.SourceID),
		zap.String("op", err.Op),
		zap.Error(err.Err),
	)
	rc.Reporter.EventApplied(ctx, rc.Date, ev, err)
}
