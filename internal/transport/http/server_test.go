package transporthttp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"sponsorwatch/internal/monitor"
	"sponsorwatch/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	source, err := monitor.NewStaticFileSource("snapshot",
		filepath.Join("..", "..", "..", "data", "sample_athletes.json"))
	if err != nil {
		t.Fatalf("static source: %v", err)
	}

	ingest := monitor.NewIngestSource("ingest")

	registry, err := monitor.NewRegistry(source, ingest)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	analyzer, err := monitor.NewAnalyzer(monitor.DefaultTaxonomy())
	if err != nil {
		t.Fatalf("analyzer: %v", err)
	}

	st, err := store.New(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return NewServer(analyzer, registry, ingest, st, logger, time.Minute)
}

func TestReportEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var report monitor.AlertReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(report.Alerts) == 0 {
		t.Fatal("expected alerts for the sample snapshot")
	}
	if report.Analytics.Summary.TotalAlerts != len(report.Alerts) {
		t.Fatalf("summary should match the alert list: %d vs %d",
			report.Analytics.Summary.TotalAlerts, len(report.Alerts))
	}
}

func TestAlertsEndpointFilters(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/alerts?severity=3&platform=twitch", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload struct {
		Total  int             `json:"total"`
		Alerts []monitor.Alert `json:"alerts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Total != len(payload.Alerts) {
		t.Fatalf("total should match alert count: %d vs %d", payload.Total, len(payload.Alerts))
	}
	for _, a := range payload.Alerts {
		if a.Severity != 3 || a.Platform != monitor.PlatformTwitch {
			t.Fatalf("filter leaked alert %+v", a)
		}
	}
}

func TestExportCSVEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/export/csv", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "alert_id,") {
		t.Fatalf("expected CSV header, got %q", rec.Body.String()[:40])
	}
}

func TestIngestEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := []byte(`{
		"name": "New Athlete",
		"nickname": "newbie",
		"platforms": {
			"twitch": {
				"followers": 50000,
				"content": [{"id": "c1", "title": "live na blaze, apenas hoje"}]
			}
		}
	}`)

	req := httptest.NewRequest(http.MethodPost, "/api/athletes", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", rec.Code, rec.Body.String())
	}

	// The new athlete must show up in the next report.
	req = httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	var report monitor.AlertReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	var found bool
	for _, a := range report.Alerts {
		if a.Athlete.Name == "New Athlete" {
			found = true
		}
	}
	if !found {
		t.Fatal("ingested athlete should appear in the refreshed report")
	}
}

func TestIngestEndpointRejectsBadPayloads(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/athletes", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/athletes", strings.NewReader(`{not json`))
	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/athletes", strings.NewReader(`{"name": "   "}`))
	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for nameless athlete, got %d", rec.Code)
	}
}

func TestRunsEndpoints(t *testing.T) {
	srv := newTestServer(t)

	// No runs archived yet.
	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload struct {
		Runs []store.RunSummary `json:"runs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Runs) != 0 {
		t.Fatalf("expected no runs before refresh, got %d", len(payload.Runs))
	}

	if err := srv.Refresh(req.Context()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Runs) != 1 {
		t.Fatalf("expected one archived run, got %d", len(payload.Runs))
	}

	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+payload.Runs[0].ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown run, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
