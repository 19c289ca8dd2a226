package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarwork/crewledger/internal/model"
)

func newTestServer(t *testing.T, token string) *Server {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "ledger.db"), token)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")
	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthToken(t *testing.T) {
	s := newTestServer(t, "secret-token")

	rec := doJSON(t, s, http.MethodGet, "/api/v1/workers", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workers", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/workers", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWorkerCRUD(t *testing.T) {
	s := newTestServer(t, "")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workers", map[string]any{
		"name": "Ana", "code": "A1", "hourlyRate": 20.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.Worker](t, rec)
	assert.Equal(t, "Ana", created.Name)
	assert.NotEmpty(t, created.Color)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/workers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	workers := decode[[]model.Worker](t, rec)
	require.Len(t, workers, 1)

	rec = doJSON(t, s, http.MethodPatch, "/api/v1/workers/"+created.ID, map[string]any{"name": "Anna"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Anna", decode[model.Worker](t, rec).Name)

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/workers/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/workers/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorkerValidationStatus(t *testing.T) {
	s := newTestServer(t, "")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workers", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkerPatchCode(t *testing.T) {
	s := newTestServer(t, "")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workers", map[string]any{
		"name": "Ana", "code": "A1", "hourlyRate": 20.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.Worker](t, rec)

	// An omitted code stays put.
	rec = doJSON(t, s, http.MethodPatch, "/api/v1/workers/"+created.ID, map[string]any{"name": "Anna"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A1", decode[model.Worker](t, rec).Code)

	// An explicit empty code clears it.
	rec = doJSON(t, s, http.MethodPatch, "/api/v1/workers/"+created.ID, map[string]any{"code": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", decode[model.Worker](t, rec).Code)
}

func TestTaskFlow(t *testing.T) {
	s := newTestServer(t, "")

	w, err := s.ledger.AddWorker("Ana", "A1", 20, "")
	require.NoError(t, err)
	p, err := s.ledger.AddProject(context.Background(), "Hall 3", nil)
	require.NoError(t, err)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/tasks", map[string]any{
		"projectId": p.ID, "tableNumber": "T-12",
		"workerIds": []string{w.ID}, "rewardPerWorker": 40.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	entry := decode[model.WorkEntry](t, rec)
	assert.Equal(t, model.EntryTask, entry.Type)

	// Filtered listing.
	rec = doJSON(t, s, http.MethodGet, "/api/v1/entries?projectId="+p.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]model.WorkEntry](t, rec)
	require.Len(t, entries, 1)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/entries?projectId=nope", nil)
	assert.Empty(t, decode[[]model.WorkEntry](t, rec))

	rec = doJSON(t, s, http.MethodGet, "/api/v1/entries?range=fortnight", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Stats credit the reward.
	rec = doJSON(t, s, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		TotalTaskEarnings float64 `json:"totalTaskEarnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 40.0, stats.TotalTaskEarnings)

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/entries/"+entry.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTaskImportPartialSuccess(t *testing.T) {
	s := newTestServer(t, "")

	w, err := s.ledger.AddWorker("Ana", "A1", 20, "")
	require.NoError(t, err)
	p, err := s.ledger.AddProject(context.Background(), "Hall 3", nil)
	require.NoError(t, err)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/tasks/import", []map[string]any{
		{"projectId": p.ID, "tableNumber": "1", "workerIds": []string{w.ID}, "rewardPerWorker": 10.0},
		{"projectId": "proj-missing", "tableNumber": "2", "workerIds": []string{w.ID}, "rewardPerWorker": 10.0},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Succeeded int `json:"succeeded"`
		Total     int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 2, result.Total)
}

func TestShiftOverHTTP(t *testing.T) {
	s := newTestServer(t, "")

	w, err := s.ledger.AddWorker("Ana", "A1", 20, "")
	require.NoError(t, err)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/shift", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[shiftStatus](t, rec)
	assert.False(t, status.IsRunning)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/shift/start", map[string]string{"workerId": w.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/shift/start", map[string]string{"workerId": w.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/shift/break/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, s, http.MethodPost, "/api/v1/shift/break/end", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/shift/stop", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entry := decode[model.WorkEntry](t, rec)
	assert.Equal(t, model.EntryHourly, entry.Type)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/shift/stop", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPlanUploadAndDownload(t *testing.T) {
	s := newTestServer(t, "")

	p, err := s.ledger.AddProject(context.Background(), "Hall 3", nil)
	require.NoError(t, err)

	pdf := []byte("%PDF-1.4 uploaded plan")
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/projects/%s/plan", p.ID), bytes.NewReader(pdf))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/projects/%s/plan", p.ID), nil)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pdf, rec.Body.Bytes())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	// Listing reports the upload.
	recList := doJSON(t, s, http.MethodGet, "/api/v1/projects", nil)
	require.Equal(t, http.StatusOK, recList.Code)
	projects := decode[[]projectView](t, recList)
	require.Len(t, projects, 1)
	assert.True(t, projects[0].HasPlan)
}

func TestBackupRestoreOverHTTP(t *testing.T) {
	s := newTestServer(t, "")

	_, err := s.ledger.AddWorker("Ana", "A1", 20, "")
	require.NoError(t, err)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/backup", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	backupData := rec.Body.Bytes()

	// A fresh server restores to the captured state.
	other := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restore", bytes.NewReader(backupData))
	rec = httptest.NewRecorder()
	other.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	workers := other.ledger.Workers()
	require.Len(t, workers, 1)
	assert.Equal(t, "Ana", workers[0].Name)
}

func TestRestoreConcurrentWithReads(t *testing.T) {
	s := newTestServer(t, "")

	_, err := s.ledger.AddWorker("Ana", "A1", 20, "")
	require.NoError(t, err)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/backup", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	backupData := rec.Body.Bytes()

	// Readers hammer the entry listing while restores swap the state
	// underneath them. Run with -race.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
				rec := httptest.NewRecorder()
				s.Router().ServeHTTP(rec, req)
				assert.Equal(t, http.StatusOK, rec.Code)
			}
		}()
	}

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/restore", bytes.NewReader(backupData))
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	wg.Wait()

	workers := s.ledger.Workers()
	require.Len(t, workers, 1)
	assert.Equal(t, "Ana", workers[0].Name)
}

func TestRestoreRejectsGarbage(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/restore", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
