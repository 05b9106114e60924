package reconcile

import (
	"context"
	"fmt"
	"sort"
)

// fakeFeed serves pages keyed by "date|cursor". Unknown keys return an empty page.
type fakeFeed struct {
	pages map[string]Page
	errs  map[string]error
	calls []string
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{
		pages: make(map[string]Page),
		errs:  make(map[string]error),
	}
}

func (f *fakeFeed) set(date, cursor string, page Page) {
	f.pages[date+"|"+cursor] = page
}

func (f *fakeFeed) fail(date, cursor string, err error) {
	f.errs[date+"|"+cursor] = err
}

func (f *fakeFeed) FetchPage(_ context.Context, date, cursor string) (Page, error) {
	key := date + "|" + cursor
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return Page{}, err
	}
	return f.pages[key], nil
}

// fakeDestination implements both Resolver and Applier over an in-memory mapping.
type fakeDestination struct {
	records    map[string]string
	absent     map[string]bool
	deleteErr  map[string]error
	upsertErr  map[string]error
	resolveErr error

	deleteCalls []string
	upsertCalls []string
	nextID      int
}

func newFakeDestination() *fakeDestination {
	return &fakeDestination{
		records:   make(map[string]string),
		absent:    make(map[string]bool),
		deleteErr: make(map[string]error),
		upsertErr: make(map[string]error),
	}
}

func (d *fakeDestination) Resolve(_ context.Context, sourceID string) (string, error) {
	if d.resolveErr != nil {
		return "", d.resolveErr
	}
	if id, ok := d.records[sourceID]; ok {
		return id, nil
	}
	return "", ErrNotFound
}

func (d *fakeDestination) ApplyDelete(_ context.Context, destinationID string) (DeleteOutcome, error) {
	d.deleteCalls = append(d.deleteCalls, destinationID)
	if err, ok := d.deleteErr[destinationID]; ok {
		return 0, err
	}
	for src, dst := range d.records {
		if dst == destinationID {
			delete(d.records, src)
		}
	}
	if d.absent[destinationID] {
		return DeleteAbsent, nil
	}
	return DeleteDeleted, nil
}

func (d *fakeDestination) ApplyUpsert(_ context.Context, sourceID string) (UpsertOutcome, error) {
	d.upsertCalls = append(d.upsertCalls, sourceID)
	if err, ok := d.upsertErr[sourceID]; ok {
		return 0, err
	}
	if _, ok := d.records[sourceID]; ok {
		return UpsertUpdated, nil
	}
	d.nextID++
	d.records[sourceID] = fmt.Sprintf("dest-%d", d.nextID)
	return UpsertCreated, nil
}

func (d *fakeDestination) sourceIDs() []string {
	ids := make([]string, 0, len(d.records))
	for id := range d.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// fakeCheckpoint is an in-memory checkpoint log.
type fakeCheckpoint struct {
	lines    []string
	readErr  error
	writeErr error
}

func (c *fakeCheckpoint) Completed(context.Context) (map[string]struct{}, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	set := make(map[string]struct{}, len(c.lines))
	for _, l := range c.lines {
		set[l] = struct{}{}
	}
	return set, nil
}

func (c *fakeCheckpoint) MarkComplete(_ context.Context, date string) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.lines = append(c.lines, date)
	return nil
}

func event(id string, ct ChangeType) ChangeEvent {
	return ChangeEvent{SourceID: id, ChangeType: ct, RecordKind: "ResearchOutput"}
}
