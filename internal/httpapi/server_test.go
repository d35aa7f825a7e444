package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/app"
	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/telemetry"
	"github.com/cleanos-ai/cleanos/internal/testutil"
)

const catalogJSON = `{"data": [
	{"id": "anthropic/claude-sonnet-4", "name": "Claude Sonnet 4", "context_length": 200000},
	{"id": "openai/gpt-4o", "name": "GPT-4o", "context_length": 128000}
]}`

func newTestServer(t *testing.T, gw *testutil.FakeGateway, origins ...string) (*app.App, http.Handler) {
	t.Helper()
	a := app.New(gw, nil)
	require.NoError(t, a.Bootstrap(context.Background()))
	return a, NewMux(a, telemetry.New(nil), origins)
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func withFiles(a *app.App) {
	a.Store.SetScannedFiles([]models.FileRecord{
		{ID: "f1", Path: "/tmp/a.iso", Size: 100},
		{ID: "f2", Path: "/tmp/b.iso", Size: 250},
	})
}

func TestGetState(t *testing.T) {
	a, h := newTestServer(t, testutil.NewFakeGateway())
	withFiles(a)

	w := do(h, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	// Selection only marshals, so decode into a plain shape.
	body := decode[struct {
		ScannedFiles           []models.FileRecord            `json:"scanned_files"`
		SelectedFiles          []string                       `json:"selected_files"`
		CurrentView            string                         `json:"current_view"`
		CleanupRecommendations []models.CleanupRecommendation `json:"cleanup_recommendations"`
		Providers              []models.ProviderStatus        `json:"providers"`
	}](t, w)
	assert.Len(t, body.ScannedFiles, 2)
	assert.Empty(t, body.SelectedFiles)
	assert.Equal(t, "dashboard", body.CurrentView)
	assert.NotNil(t, body.CleanupRecommendations)
	assert.Len(t, body.Providers, 4)
}

func TestGetAggregates(t *testing.T) {
	a, h := newTestServer(t, testutil.NewFakeGateway())
	withFiles(a)
	a.Store.ToggleFileSelection("f2")

	w := do(h, http.MethodGet, "/api/aggregates", "")
	require.Equal(t, http.StatusOK, w.Code)

	sum := decode[aggregate.Summary](t, w)
	assert.Equal(t, 2, sum.FileCount)
	assert.Equal(t, int64(350), sum.TotalSize)
	assert.Equal(t, 1, sum.SelectedCount)
	assert.Equal(t, int64(250), sum.SelectedSize)
}

func TestFileSelection(t *testing.T) {
	a, h := newTestServer(t, testutil.NewFakeGateway())
	withFiles(a)

	w := do(h, http.MethodPost, "/api/files/f1/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"selected_files": ["f1"]}`, w.Body.String())

	w = do(h, http.MethodPost, "/api/files/select-all", "")
	assert.JSONEq(t, `{"selected_files": ["f1", "f2"]}`, w.Body.String())

	w = do(h, http.MethodPost, "/api/files/deselect-all", "")
	assert.JSONEq(t, `{"selected_files": []}`, w.Body.String())

	w = do(h, http.MethodPost, "/api/files/nope/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"selected_files": ["nope"]}`, w.Body.String())
}

func TestFileSelection_StaleIDAfterRescan(t *testing.T) {
	a, h := newTestServer(t, testutil.NewFakeGateway())
	withFiles(a)

	w := do(h, http.MethodPost, "/api/files/f1/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)

	a.Store.SetScannedFiles([]models.FileRecord{{ID: "f3", Path: "/tmp/c.iso", Size: 10}})
	assert.Equal(t, []string{"f1"}, a.Store.Snapshot().SelectedFiles.IDs())

	w = do(h, http.MethodPost, "/api/files/f1/toggle", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"selected_files": []}`, w.Body.String())
}

func TestSetActiveProvider(t *testing.T) {
	gw := testutil.NewFakeGateway()
	a, h := newTestServer(t, gw)

	w := do(h, http.MethodPut, "/api/active-provider", `{"id": "gemini"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "gemini", a.Store.Snapshot().ActiveProviderID())
	assert.Equal(t, "gemini", gw.Settings[models.SettingDefaultProvider])

	w = do(h, http.MethodPut, "/api/active-provider", `{"id": ""}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"active_provider": null}`, w.Body.String())

	w = do(h, http.MethodPut, "/api/active-provider", `{"id": "mistral"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mistral", a.Store.Snapshot().ActiveProviderID())

	w = do(h, http.MethodPut, "/api/active-provider", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPut, "/api/active-provider", strings.NewReader(`{"id":"claude"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestSetActiveProvider_BeforeProvidersLoad(t *testing.T) {
	gw := testutil.NewFakeGateway()
	a := app.New(gw, nil)
	h := NewMux(a, telemetry.New(nil), nil)

	w := do(h, http.MethodPut, "/api/active-provider", `{"id": "ollama"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "ollama", a.Store.Snapshot().ActiveProviderID())
}

func TestSetActiveProvider_SaveFails(t *testing.T) {
	gw := testutil.NewFakeGateway()
	a, h := newTestServer(t, gw)
	before := a.Store.Snapshot().ActiveProviderID()
	gw.SettingsErr = errors.New("disk full")

	w := do(h, http.MethodPut, "/api/active-provider", `{"id": "gemini"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "disk full")
	assert.Equal(t, before, a.Store.Snapshot().ActiveProviderID())
}

func TestCatalogRefresh(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.Catalog = catalogJSON
	_, h := newTestServer(t, gw)

	w := do(h, http.MethodPost, "/api/catalog/refresh", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[CatalogRefreshResponse](t, w)
	assert.Equal(t, 2, body.Models)
	assert.Equal(t, "valid", body.State)

	gw.CatalogErr = errors.New("offline")
	w = do(h, http.MethodPost, "/api/catalog/refresh", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "offline")
}

func TestGetProviders(t *testing.T) {
	_, h := newTestServer(t, testutil.NewFakeGateway())

	w := do(h, http.MethodGet, "/api/providers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Providers []models.ProviderDefinition `json:"providers"`
		Status    []models.ProviderStatus     `json:"status"`
		Catalog   string                      `json:"catalog"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Providers, 4)
	assert.Len(t, body.Status, 4)
	for _, p := range body.Providers {
		assert.NotEmpty(t, p.Models, p.ID)
	}
}

func TestCORS(t *testing.T) {
	_, h := newTestServer(t, testutil.NewFakeGateway(), "http://localhost:1420")

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Origin", "http://localhost:1420")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:1420", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOrigins(t *testing.T) {
	_, h := newTestServer(t, testutil.NewFakeGateway())

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Origin", "http://localhost:1420")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthzAndMetrics(t *testing.T) {
	_, h := newTestServer(t, testutil.NewFakeGateway())

	w := do(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	do(h, http.MethodGet, "/api/state", "")
	w = do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cleanos_http_requests_total")
	assert.Contains(t, w.Body.String(), `path="/api/state"`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotImplemented, statusFor(gateway.Unsupported("clean_logs")))
	assert.Equal(t, http.StatusBadGateway, statusFor(errors.New("offline")))
}
