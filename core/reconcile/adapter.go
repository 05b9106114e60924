package reconcile

import "context"

// FeedReader reads the source catalog's change feed one page at a time.
type FeedReader interface {
	// FetchPage returns the page of date's feed addressed by cursor.
	// An empty cursor requests the first page. Failures are returned as *FetchError.
	FetchPage(ctx context.Context, date, cursor string) (Page, error)
}

// Resolver maps a source identifier to the destination identifier.
type Resolver interface {
	// Resolve returns the destination id for sourceID, or ErrNotFound if the record
	// is not present in the destination.
	Resolve(ctx context.Context, sourceID string) (string, error)
}

// DeleteOutcome is the result of a destination delete.
type DeleteOutcome int

const (
	// DeleteDeleted means the destination removed the record.
	DeleteDeleted DeleteOutcome = iota
	// DeleteAbsent means the record no longer existed. Counted as success.
	DeleteAbsent
)

// UpsertOutcome is the result of a destination create-or-update.
type UpsertOutcome int

const (
	// UpsertCreated means a new destination record was created.
	UpsertCreated UpsertOutcome = iota
	// UpsertUpdated means an existing destination record was updated.
	UpsertUpdated
)

// String returns a readable outcome name.
func (o UpsertOutcome) String() string {
	if o == UpsertCreated {
		return "created"
	}
	return "updated"
}

// Applier performs idempotent mutations against the destination repository.
type Applier interface {
	// ApplyDelete deletes the destination record. A record that is already gone
	// yields DeleteAbsent and no error.
	ApplyDelete(ctx context.Context, destinationID string) (DeleteOutcome, error)

	// ApplyUpsert fetches the source record, transforms it and creates or updates
	// the destination record depending on whether a mapping already exists.
	ApplyUpsert(ctx context.Context, sourceID string) (UpsertOutcome, error)
}

// Checkpoint is the durable log of dates considered fully reconciled.
type Checkpoint interface {
	// Completed returns the set of dates present in the log.
	Completed(ctx context.Context) (map[string]struct{}, error)

	// MarkComplete appends date to the log.
	MarkComplete(ctx context.Context, date string) error
}

// Reporter receives progress notifications from the engine.
// Implementations must not block for long; they run inline with reconciliation.
type Reporter interface {
	// WindowStarted is called when a date window begins.
	WindowStarted(ctx context.Context, runID, date string)

	// PageFetched is called after every successfully fetched page.
	PageFetched(ctx context.Context, date string, page, items int)

	// EventApplied is called after every event that reached the destination,
	// with err set when the apply failed.
	EventApplied(ctx context.Context, date string, event ChangeEvent, err error)

	// WindowFinished is called with the final summary of a date window.
	WindowFinished(ctx context.Context, runID string, summary Summary)
}
