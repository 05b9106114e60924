// Package reconcile implements the change-feed reconciliation engine that keeps a
// destination repository eventually consistent with a source catalog.
//
// The source catalog publishes, per calendar date, a paginated feed of create, update
// and delete events. The engine decides which dates of a trailing lookback window still
// need work, walks each date's feed page by page and applies the events to the
// destination through injected collaborators.
//
// # Architecture
//
// 1. Engine: computes the missing dates (lookback dates absent from the Checkpoint),
//    then runs one Window per date, oldest first, strictly sequentially.
//
// 2. Window: per-date state machine. All state lives in an explicit RunContext:
//    the set of source ids already acted on (shared by every page of the date) and the
//    counters. Within a page all deletes are applied before any create or update, and
//    the first occurrence of a source id wins; later ones are counted as duplicates.
//
// 3. Collaborators: FeedReader, Resolver, Applier, Checkpoint and Reporter are
//    interfaces so that the HTTP, database and storage glue can be replaced by fakes.
//
// # Checkpoint Policy
//
// A date is written to the checkpoint only when its first page reports zero events.
// Dates that had events are reprocessed on every run while they stay inside the
// lookback window. Replays are safe because deletes tolerate missing records and
// upserts are keyed by the source-to-destination mapping.
//
// # Failure Handling
//
// A failed page fetch (*FetchError) aborts the current date only. Per-event failures
// (*ApplyError) are counted and never stop the window or the run.
//
// # Usage Example
//
//	engine, err := reconcile.NewEngine(reconcile.Spec{
//	    Feed:       feedClient,
//	    Resolver:   mappings,
//	    Applier:    applier,
//	    Checkpoint: checkpointLog,
//	    Reporter:   reconcile.NewLogReporter(logger),
//	    RecordKind: "ResearchOutput",
//	}, logger)
//
//	summary, err := engine.Run(ctx)
package reconcile
