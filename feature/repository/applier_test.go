package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"record-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var _ reconcile.Applier = (*Applier)(nil)

// fakeRepository is an in-memory destination record API.
type fakeRepository struct {
	mu      sync.Mutex
	records map[string]map[string]any
	gone    map[string]bool
	nextID  int
	fail    int
	calls   []string
}

func newFakeRepository(t *testing.T) (*fakeRepository, *httptest.Server) {
	repo := &fakeRepository{records: make(map[string]map[string]any), gone: make(map[string]bool)}
	srv := httptest.NewServer(http.HandlerFunc(repo.serve))
	t.Cleanup(srv.Close)
	return repo, srv
}

func (f *fakeRepository) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	if r.Header.Get("Authorization") != "Bearer tok" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if f.fail != 0 {
		w.WriteHeader(f.fail)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/records")
	id = strings.TrimPrefix(id, "/")

	switch r.Method {
	case http.MethodPost:
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.nextID++
		newID := fmt.Sprintf("rec-%d", f.nextID)
		f.records[newID] = body
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": newID})
	case http.MethodPut:
		if _, ok := f.records[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.records[id] = body
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		if f.gone[id] {
			w.WriteHeader(http.StatusGone)
			return
		}
		if _, ok := f.records[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(f.records, id)
		f.gone[id] = true
		w.WriteHeader(http.StatusNoContent)
	}
}

type fakeSource map[string]map[string]any

func (s fakeSource) Record(_ context.Context, sourceID string) (map[string]any, error) {
	rec, ok := s[sourceID]
	if !ok {
		return nil, errors.New("not in catalog")
	}
	return rec, nil
}

func setupApplier(t *testing.T, source fakeSource) (*Applier, *MappingStore, *fakeRepository) {
	t.Helper()
	repo, srv := newFakeRepository(t)
	store := setupStore(t)
	client := NewClient(Config{BaseURL: srv.URL, Token: "tok"})
	return NewApplier(store, client, source, nil, zap.NewNop()), store, repo
}

func TestApplier_UpsertCreatesThenUpdates(t *testing.T) {
	source := fakeSource{"A": {"uuid": "A", "title": map[string]any{"value": "On Things"}}}
	applier, store, repo := setupApplier(t, source)
	ctx := context.Background()

	outcome, err := applier.ApplyUpsert(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, reconcile.UpsertCreated, outcome)

	destID, err := store.Resolve(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", destID)

	metadata := repo.records["rec-1"]["metadata"].(map[string]any)
	assert.Equal(t, "On Things", metadata["title"])
	assert.Equal(t, "A", metadata["source_id"])

	outcome, err = applier.ApplyUpsert(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, reconcile.UpsertUpdated, outcome)
	assert.Equal(t, []string{"POST /api/records", "PUT /api/records/rec-1"}, repo.calls)
}

func TestApplier_UpsertRecreatesVanishedRecord(t *testing.T) {
	applier, store, repo := setupApplier(t, fakeSource{"A": {"title": "x"}})
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "A", "rec-old"))

	outcome, err := applier.ApplyUpsert(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, reconcile.UpsertCreated, outcome)

	destID, err := store.Resolve(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", destID)
	assert.Equal(t, []string{"PUT /api/records/rec-old", "POST /api/records"}, repo.calls)
}

func TestApplier_UpsertSourceFailure(t *testing.T) {
	applier, store, repo := setupApplier(t, fakeSource{})

	_, err := applier.ApplyUpsert(context.Background(), "missing")
	assert.Error(t, err)
	assert.Empty(t, repo.calls)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestApplier_DeleteOutcomes(t *testing.T) {
	applier, store, repo := setupApplier(t, fakeSource{"A": {"title": "x"}})
	ctx := context.Background()

	_, err := applier.ApplyUpsert(ctx, "A")
	require.NoError(t, err)

	outcome, err := applier.ApplyDelete(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, reconcile.DeleteDeleted, outcome)

	_, err = store.Resolve(ctx, "A")
	assert.ErrorIs(t, err, reconcile.ErrNotFound)

	// 410 on the second delete
	outcome, err = applier.ApplyDelete(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, reconcile.DeleteAbsent, outcome)

	// 404 for a record that never existed
	outcome, err = applier.ApplyDelete(ctx, "rec-404")
	require.NoError(t, err)
	assert.Equal(t, reconcile.DeleteAbsent, outcome)
	assert.Empty(t, repo.records)
}

func TestApplier_DeleteServerError(t *testing.T) {
	applier, store, repo := setupApplier(t, fakeSource{})
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "A", "rec-1"))
	repo.fail = http.StatusForbidden

	_, err := applier.ApplyDelete(ctx, "rec-1")
	require.Error(t, err)

	// the mapping survives a failed delete so the next run can retry
	destID, err := store.Resolve(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", destID)
}

func TestEnvelopeTransformer(t *testing.T) {
	tr := EnvelopeTransformer{ResourceType: "publication-article"}

	out, err := tr.Transform("A", map[string]any{"title": "Plain", "publicationDate": "2024-01-01"})
	require.NoError(t, err)
	metadata := out["metadata"].(map[string]any)
	assert.Equal(t, "Plain", metadata["title"])
	assert.Equal(t, "publication-article", metadata["resource_type"])
	assert.Equal(t, "2024-01-01", metadata["publication_date"])

	_, err = tr.Transform("A", nil)
	assert.Error(t, err)
}
