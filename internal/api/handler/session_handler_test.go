package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-dashboard-wizard/internal/api"
	"go-dashboard-wizard/internal/model"
	"go-dashboard-wizard/internal/session"
	"go-dashboard-wizard/internal/store"
	"go-dashboard-wizard/pkg/router"
)

// fakeService scripts the collaborator's answers.
type fakeService struct {
	cleanResult *model.CleaningResult
	cleanErr    error
	charts      []model.ChartDescriptor
	chartsErr   error
}

func (f *fakeService) CleanDataset(ctx context.Context, rawText, instructions string) (*model.CleaningResult, error) {
	return f.cleanResult, f.cleanErr
}

func (f *fakeService) GenerateChartConfigs(ctx context.Context, ds model.Dataset, instructions string) ([]model.ChartDescriptor, error) {
	return f.charts, f.chartsErr
}

func newTestServer(t *testing.T, svc session.Service) *httptest.Server {
	t.Helper()
	require.NoError(t, store.InitDB(filepath.Join(t.TempDir(), "test.db")))
	m := session.NewManager(svc, nil, 10, nil)
	r := router.New()
	api.RegisterRoutes(r, m)
	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	} else {
		body.WriteString("{}")
	}
	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id, ok := body["id"].(string)
	require.True(t, ok, "session id missing in %v", body)
	return id
}

func uploadCSV(t *testing.T, srv *httptest.Server, id, csv string) {
	t.Helper()
	url := fmt.Sprintf("%s/api/v1/sessions/%s/upload?filename=data.csv", srv.URL, id)
	resp, err := http.Post(url, "application/octet-stream", bytes.NewBufferString(csv))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func waitForStatus(t *testing.T, srv *httptest.Server, id, status string) map[string]interface{} {
	t.Helper()
	var snap map[string]interface{}
	require.Eventually(t, func() bool {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/sessions/"+id, nil)
		if resp.StatusCode != http.StatusOK {
			return false
		}
		snap = body
		return body["status"] == status
	}, 2*time.Second, 5*time.Millisecond)
	return snap
}

func exampleCleaning() *model.CleaningResult {
	return &model.CleaningResult{
		Cleaned: model.Dataset{
			{"id": 1, "country": "US"},
			{"id": 2, "country": "DE"},
			{"id": 3, "country": "US"},
		},
		ChangeLog: model.ChangeLog{
			Summary: "Removed 1 duplicate row",
			Removed: []model.RemovedRow{
				{ID: "rr-1", Row: model.Record{"id": 1, "country": "US"}, Reason: "duplicate"},
			},
		},
	}
}

func TestWizardFlowOverHTTP(t *testing.T) {
	svc := &fakeService{
		cleanResult: exampleCleaning(),
		charts: []model.ChartDescriptor{
			{Title: "Rows by country", ChartType: model.ChartBar, DataKey: "country", ValueKeys: []string{"id"}},
		},
	}
	srv := newTestServer(t, svc)

	id := createSession(t, srv)
	uploadCSV(t, srv, id, "id,country\n1,US\n2,DE\n3,US\n1,US\n")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/clean",
		map[string]string{"instructions": "drop duplicates"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	waitForStatus(t, srv, id, session.StatusCleaned)

	// Change log carries the removed rows with durable IDs
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/sessions/"+id+"/changelog", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Removed 1 duplicate row", body["summary"])
	assert.EqualValues(t, 1, body["count"])

	// Restore the removed row, then undo it
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/restore",
		map[string]string{"id": "rr-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["restored"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/undo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["moved"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/redo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["moved"])

	// Filters and rows
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/sessions/"+id+"/filters", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"]) // country is filterable, id is numeric

	resp, body = doJSON(t, http.MethodPut, srv.URL+"/api/v1/sessions/"+id+"/filters",
		map[string][]string{"country": {"US"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["totalRows"]) // rr-1 restored above

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/sessions/"+id+"/rows", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["pageIndex"])

	// Dashboard
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/dashboard",
		map[string]string{"instructions": "show countries"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	waitForStatus(t, srv, id, session.StatusDashboardReady)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/sessions/"+id+"/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	charts, ok := body["charts"].([]interface{})
	require.True(t, ok)
	require.Len(t, charts, 1)

	// Export honors the filter
	exportResp, err := http.Get(srv.URL + "/api/v1/sessions/" + id + "/export")
	require.NoError(t, err)
	defer exportResp.Body.Close()
	require.Equal(t, http.StatusOK, exportResp.StatusCode)
	assert.Equal(t, "text/csv", exportResp.Header.Get("Content-Type"))

	// Delete
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ctxWatchingService answers only if the context it was handed is still
// alive once the accepting request has long since returned.
type ctxWatchingService struct {
	cleanResult *model.CleaningResult
	charts      []model.ChartDescriptor
}

func (f *ctxWatchingService) CleanDataset(ctx context.Context, rawText, instructions string) (*model.CleaningResult, error) {
	time.Sleep(50 * time.Millisecond)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.cleanResult, nil
}

func (f *ctxWatchingService) GenerateChartConfigs(ctx context.Context, ds model.Dataset, instructions string) ([]model.ChartDescriptor, error) {
	time.Sleep(50 * time.Millisecond)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.charts, nil
}

func TestAsyncRunsOutliveTheAcceptingRequest(t *testing.T) {
	svc := &ctxWatchingService{
		cleanResult: exampleCleaning(),
		charts: []model.ChartDescriptor{
			{Title: "Rows by country", ChartType: model.ChartBar, DataKey: "country", ValueKeys: []string{"id"}},
		},
	}
	srv := newTestServer(t, svc)
	id := createSession(t, srv)
	uploadCSV(t, srv, id, "id,country\n1,US\n2,DE\n")

	// The 202 returns (and net/http tears down the request context)
	// well before the collaborator answers; the run must not notice.
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/clean",
		map[string]string{"instructions": "clean"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	snap := waitForStatus(t, srv, id, session.StatusCleaned)
	assert.Empty(t, snap["error"])

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/dashboard",
		map[string]string{"instructions": "charts"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	snap = waitForStatus(t, srv, id, session.StatusDashboardReady)
	assert.Empty(t, snap["error"])
}

func TestUnknownSessionIs404(t *testing.T) {
	srv := newTestServer(t, &fakeService{})

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions/nope/clean",
		map[string]string{"instructions": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCleanWithoutInstructionsIs400(t *testing.T) {
	srv := newTestServer(t, &fakeService{cleanResult: exampleCleaning()})
	id := createSession(t, srv)
	uploadCSV(t, srv, id, "id,country\n1,US\n")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/clean",
		map[string]string{"instructions": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "instruction")
}

func TestCleanWithoutUploadIs400(t *testing.T) {
	srv := newTestServer(t, &fakeService{cleanResult: exampleCleaning()})
	id := createSession(t, srv)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/clean",
		map[string]string{"instructions": "drop duplicates"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadRejectsUnsupportedFile(t *testing.T) {
	srv := newTestServer(t, &fakeService{})
	id := createSession(t, srv)

	url := fmt.Sprintf("%s/api/v1/sessions/%s/upload?filename=report.pdf", srv.URL, id)
	resp, err := http.Post(url, "application/octet-stream", bytes.NewBufferString("%PDF-1.4"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	srv := newTestServer(t, &fakeService{})
	id := createSession(t, srv)

	// One byte past the 32 MiB cap must be rejected outright, never
	// truncated into a shorter file that still parses.
	body := bytes.NewReader(make([]byte, 32<<20+1))
	url := fmt.Sprintf("%s/api/v1/sessions/%s/upload?filename=big.csv", srv.URL, id)
	resp, err := http.Post(url, "application/octet-stream", body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestUploadRequiresFilename(t *testing.T) {
	srv := newTestServer(t, &fakeService{})
	id := createSession(t, srv)

	resp, err := http.Post(srv.URL+"/api/v1/sessions/"+id+"/upload",
		"application/octet-stream", bytes.NewBufferString("a,b\n1,2\n"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubrouteNotShadowedBySessionRoute(t *testing.T) {
	svc := &fakeService{cleanResult: exampleCleaning()}
	srv := newTestServer(t, svc)
	id := createSession(t, srv)
	uploadCSV(t, srv, id, "id,country\n1,US\n2,DE\n")

	doJSON(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/clean",
		map[string]string{"instructions": "clean"})
	waitForStatus(t, srv, id, session.StatusCleaned)

	// /rows must reach the rows handler, not the session getter
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/sessions/"+id+"/rows", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, hasRows := body["rows"]
	assert.True(t, hasRows, "expected a rows page, got %v", body)
}

func TestSessionListIncludesCreated(t *testing.T) {
	srv := newTestServer(t, &fakeService{})
	id := createSession(t, srv)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sessions, ok := body["sessions"].([]interface{})
	require.True(t, ok)
	found := false
	for _, s := range sessions {
		if rec, ok := s.(map[string]interface{}); ok && rec["id"] == id {
			found = true
		}
	}
	assert.True(t, found)
}
