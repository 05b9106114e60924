package reconcile

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used by the change feed and the checkpoint log.
const DateLayout = "2006-01-02"

// ChangeType identifies what happened to a source record.
type ChangeType string

const (
	// ChangeCreate marks a newly created source record.
	ChangeCreate ChangeType = "CREATE"
	// ChangeAdd is a synonym of ChangeCreate used by some feeds.
	ChangeAdd ChangeType = "ADD"
	// ChangeUpdate marks a modified source record.
	ChangeUpdate ChangeType = "UPDATE"
	// ChangeDelete marks a removed source record.
	ChangeDelete ChangeType = "DELETE"
)

// Normalize folds synonyms and casing into the canonical change type.
// Unknown values are returned as-is (upper-cased).
func (t ChangeType) Normalize() ChangeType {
	ct := ChangeType(strings.ToUpper(strings.TrimSpace(string(t))))
	if ct == ChangeAdd {
		return ChangeCreate
	}
	return ct
}

// IsUpsert reports whether the change type creates or updates a record.
func (t ChangeType) IsUpsert() bool {
	switch t.Normalize() {
	case ChangeCreate, ChangeUpdate:
		return true
	default:
		return false
	}
}

// ChangeEvent is a single entry of a date's change feed.
type ChangeEvent struct {
	// SourceID is the stable identifier of the record in the source catalog.
	SourceID string `json:"source_id"`

	// ChangeType is the kind of change (CREATE, ADD, UPDATE, DELETE).
	ChangeType ChangeType `json:"change_type"`

	// RecordKind is the family of the source record (e.g. "ResearchOutput").
	RecordKind string `json:"record_kind"`
}

// Page is one page of a date's change feed.
type Page struct {
	// TotalCount is the number of events for the whole date.
	// Only the first page of a date carries a meaningful value.
	TotalCount int

	// Events holds the page's events in feed order.
	Events []ChangeEvent

	// NextCursor is the opaque token of the next page. Empty means last page.
	NextCursor string
}

// Counters tracks how the events of a date were classified.
type Counters struct {
	Created    int `json:"created"`
	Updated    int `json:"updated"`
	Deleted    int `json:"deleted"`
	Duplicate  int `json:"duplicate"`
	Malformed  int `json:"malformed"`
	Irrelevant int `json:"irrelevant"`
	Errors     int `json:"errors"`
}

// Add accumulates other into c.
func (c *Counters) Add(other Counters) {
	c.Created += other.Created
	c.Updated += other.Updated
	c.Deleted += other.Deleted
	c.Duplicate += other.Duplicate
	c.Malformed += other.Malformed
	c.Irrelevant += other.Irrelevant
	c.Errors += other.Errors
}

// Outcomes tracks what the destination actually did.
// Created and Updated come from the applier's decision, not from the feed's change type,
// so a replayed CREATE against an existing mapping shows up as Updated here.
type Outcomes struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	// Absent counts deletes where the destination had nothing to remove.
	Absent int `json:"absent"`
}

// Add accumulates other into o.
func (o *Outcomes) Add(other Outcomes) {
	o.Created += other.Created
	o.Updated += other.Updated
	o.Deleted += other.Deleted
	o.Absent += other.Absent
}

// WindowStatus is the terminal state of a date window.
type WindowStatus string

const (
	// StatusDone means every page of the date was processed.
	StatusDone WindowStatus = "done"
	// StatusAborted means a page fetch failed and the date was abandoned.
	StatusAborted WindowStatus = "aborted"
)

// Summary is the result of reconciling one date.
type Summary struct {
	Date     string       `json:"date"`
	Status   WindowStatus `json:"status"`
	Pages    int          `json:"pages"`
	Total    int          `json:"total"`
	Counters Counters     `json:"counters"`
	Outcomes Outcomes     `json:"outcomes"`
	// Checkpointed is true when the date was written to the checkpoint log.
	Checkpointed bool   `json:"checkpointed"`
	Error        string `json:"error,omitempty"`
}

// RunSummary aggregates the summaries of one engine run.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	// Dates lists the per-date summaries, oldest first.
	Dates    []Summary `json:"dates"`
	Counters Counters  `json:"counters"`
	Outcomes Outcomes  `json:"outcomes"`
	Aborted  int       `json:"aborted"`
}

// NothingToUpdate reports whether the run found no missing dates.
func (r *RunSummary) NothingToUpdate() bool {
	return len(r.Dates) == 0
}

// HasFailures reports whether any date was aborted or any apply failed.
func (r *RunSummary) HasFailures() bool {
	return r.Aborted > 0 || r.Counters.Errors > 0
}

func (r *RunSummary) add(s Summary) {
	r.Dates = append(r.Dates, s)
	r.Counters.Add(s.Counters)
	r.Outcomes.Add(s.Outcomes)
	if s.Status == StatusAborted {
		r.Aborted++
	}
}
