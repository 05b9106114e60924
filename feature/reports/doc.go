// Package reports archives per-date reconciliation reports in object storage.
//
// Archive implements reconcile.Reporter. While a date is reconciled it collects one line
// per fetched page and one entry per failed event; when the date finishes it uploads
// a JSON report to {prefix}/{date}/{run_id}.json.
//
// Uploads are best effort: a storage failure is logged and never affects the run.
//
// Prune deletes reports whose date folder is older than the retention period.
package reports
