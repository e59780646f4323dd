package transporthttp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"sponsorwatch/internal/export"
	"sponsorwatch/internal/metrics"
	"sponsorwatch/internal/monitor"
	"sponsorwatch/internal/store"
)

// Server serves the analysis API. Reports are computed lazily and cached
// for the configured TTL; Refresh recomputes eagerly and archives the run.
type Server struct {
	analyzer *monitor.Analyzer
	registry *monitor.Registry
	ingest   *monitor.IngestSource
	store    *store.Store
	logger   *logrus.Logger
	cacheTTL time.Duration

	mu       sync.Mutex
	cached   *monitor.AlertReport
	cachedAt time.Time
}

// NewServer wires the API server.
func NewServer(analyzer *monitor.Analyzer, registry *monitor.Registry, ingest *monitor.IngestSource, st *store.Store, logger *logrus.Logger, cacheTTL time.Duration) *Server {
	return &Server{
		analyzer: analyzer,
		registry: registry,
		ingest:   ingest,
		store:    st,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.health)
	mux.HandleFunc("/api/report", s.handleReport)
	mux.HandleFunc("/api/alerts", s.handleAlerts)
	mux.HandleFunc("/api/export/csv", s.handleExportCSV)
	mux.HandleFunc("/api/export/json", s.handleExportJSON)
	mux.HandleFunc("/api/athletes", s.handleAthletes)
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/api/runs/", s.handleRun)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/swagger/openapi.yaml", serveSwaggerYAML)
	mux.HandleFunc("/swagger", serveSwaggerUI)
	mux.HandleFunc("/swagger/", serveSwaggerUI)
	return mux
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// report returns the cached report, recomputing it when stale.
func (s *Server) report(ctx context.Context) (monitor.AlertReport, error) {
	s.mu.Lock()
	if s.cached != nil && time.Since(s.cachedAt) < s.cacheTTL {
		cached := *s.cached
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	return s.compute(ctx, false)
}

// Refresh recomputes the report, updates the cache, and archives the run.
// The scheduler calls it on its cron; it can also be called at startup.
func (s *Server) Refresh(ctx context.Context) error {
	_, err := s.compute(ctx, true)
	return err
}

func (s *Server) compute(ctx context.Context, archive bool) (monitor.AlertReport, error) {
	start := time.Now()

	athletes, err := s.registry.FetchAll(ctx)
	if err != nil {
		metrics.AnalysisRuns.WithLabelValues("error").Inc()
		return monitor.AlertReport{}, err
	}

	report := s.analyzer.Analyze(athletes)

	metrics.AnalysisRuns.WithLabelValues("ok").Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	for _, a := range report.Alerts {
		metrics.AlertsGenerated.WithLabelValues(string(a.Type), strconv.Itoa(a.Severity)).Inc()
	}
	for _, d := range report.Diagnostics {
		metrics.DiagnosticsTotal.WithLabelValues(d.Stage).Inc()
	}

	s.mu.Lock()
	s.cached = &report
	s.cachedAt = time.Now()
	s.mu.Unlock()

	if archive && s.store != nil {
		if id, err := s.store.SaveRun(report); err != nil {
			s.logger.WithError(err).Error("Failed to archive analysis run")
		} else {
			s.logger.WithField("run_id", id).Info("Archived analysis run")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"athletes": len(athletes),
		"alerts":   len(report.Alerts),
		"duration": time.Since(start).String(),
	}).Info("Analysis run completed")

	return report, nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	report, err := s.report(ctx)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	report, err := s.report(ctx)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	alerts := filterAlerts(report.Alerts, r.URL.Query().Get("severity"),
		r.URL.Query().Get("category"), r.URL.Query().Get("platform"))

	response := map[string]any{
		"as_of":   report.GeneratedAt,
		"total":   len(alerts),
		"alerts":  alerts,
		"summary": report.Analytics.Summary,
	}
	s.writeJSON(w, http.StatusOK, response)
}

func filterAlerts(alerts []monitor.Alert, severity, category, platform string) []monitor.Alert {
	out := make([]monitor.Alert, 0, len(alerts))
	for _, a := range alerts {
		if severity != "" {
			if parsed, err := strconv.Atoi(severity); err != nil || a.Severity != parsed {
				continue
			}
		}
		if category != "" && !strings.EqualFold(a.CategoryID, category) {
			continue
		}
		if platform != "" && !strings.EqualFold(string(a.Platform), platform) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	report, err := s.report(ctx)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data, err := export.CSV(report)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename("csv", report.GeneratedAt))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	report, err := s.report(ctx)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename("json", report.GeneratedAt))
	s.writeJSON(w, http.StatusOK, export.JSONDocument(report))
}

func (s *Server) handleAthletes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.ingest == nil {
		s.writeError(w, http.StatusServiceUnavailable, "ingest disabled")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	athlete, err := monitor.DecodeAthlete(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	stored, err := s.ingest.Add(athlete)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The next report pass must see the new athlete.
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()

	response := map[string]any{
		"status":    "accepted",
		"name":      stored.Name,
		"platforms": len(stored.Platforms),
	}
	s.writeJSON(w, http.StatusAccepted, response)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "archive disabled")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []store.RunSummary{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "archive disabled")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}

	report, err := s.store.GetRun(id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing we can do; connection likely closed
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
