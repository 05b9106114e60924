package sync

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"record-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(runner *fakeRunner, lines fakeLines) (*fiber.App, *Service) {
	app := fiber.New()
	svc := NewService(runner, lines, fakeCounter(2), nil)
	feature := NewFeature(svc)
	_ = feature.Load(app)
	return app, svc
}

func TestFeature(t *testing.T) {
	f := NewFeature(NewService(&fakeRunner{}, fakeLines{}, nil, nil))
	assert.Equal(t, "sync", f.Name())
	assert.True(t, f.IsEnabled())
}

func TestHandleRun(t *testing.T) {
	runner := &fakeRunner{summary: &reconcile.RunSummary{
		RunID:    "run-1",
		Counters: reconcile.Counters{Created: 1},
	}}
	app, _ := setupTestApp(runner, fakeLines{})

	resp, err := app.Test(httptest.NewRequest("POST", "/sync/run", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body reconcile.RunSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "run-1", body.RunID)
	assert.Equal(t, 1, body.Counters.Created)
}

func TestHandleRun_Error(t *testing.T) {
	app, _ := setupTestApp(&fakeRunner{err: errors.New("checkpoint unreadable")}, fakeLines{})

	resp, err := app.Test(httptest.NewRequest("POST", "/sync/run", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "checkpoint unreadable", body["error"])
}

func TestHandleRun_Async(t *testing.T) {
	runner := &fakeRunner{gate: make(chan struct{}), summary: &reconcile.RunSummary{}}
	app, _ := setupTestApp(runner, fakeLines{})
	defer close(runner.gate)

	resp, err := app.Test(httptest.NewRequest("POST", "/sync/run?async=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 202, resp.StatusCode)
}

func TestHandleStatus(t *testing.T) {
	app, svc := setupTestApp(&fakeRunner{summary: &reconcile.RunSummary{RunID: "run-1"}}, fakeLines{})
	_, _, err := svc.Run(t.Context())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/sync/status", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["running"])
	assert.Equal(t, float64(2), body["mappings"])
	assert.Equal(t, "run-1", body["last_run"].(map[string]any)["run_id"])
}

func TestHandleCheckpoint(t *testing.T) {
	runner := &fakeRunner{missing: []string{"2024-03-07"}}
	app, _ := setupTestApp(runner, fakeLines{lines: []string{"2024-03-06"}})

	resp, err := app.Test(httptest.NewRequest("GET", "/sync/checkpoint", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body CheckpointView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"2024-03-06"}, body.Completed)
	assert.Equal(t, []string{"2024-03-07"}, body.Missing)
}

func TestHandleCheckpoint_Error(t *testing.T) {
	app, _ := setupTestApp(&fakeRunner{}, fakeLines{err: errors.New("disk")})

	resp, err := app.Test(httptest.NewRequest("GET", "/sync/checkpoint", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
