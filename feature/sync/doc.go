// Package sync exposes reconciliation runs over HTTP and on a schedule.
//
// # Service
//
// Service wraps a reconcile.Engine. Concurrent triggers (HTTP, scheduler) are collapsed
// with singleflight so at most one run touches the checkpoint log at a time; late callers
// receive the result of the run in flight. The last run summary is kept for the status
// endpoint.
//
// # Routes
//
//   - GET  /sync/status: whether a run is in progress and the last summary
//   - GET  /sync/checkpoint: completed and missing dates of the lookback window
//   - POST /sync/run: run now; ?async=true returns 202 immediately
//
// # Scheduler
//
// Scheduler triggers Service.Run every configured interval until its context ends.
package sync
