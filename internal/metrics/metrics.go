// Package metrics exposes Prometheus instrumentation for the analysis
// pipeline and the API server.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var (
	// AnalysisRuns counts completed analysis runs by outcome.
	AnalysisRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sponsorwatch_analysis_runs_total",
			Help: "Completed analysis runs by outcome",
		},
		[]string{"outcome"},
	)

	// AnalysisDuration observes wall-clock duration of full analysis runs.
	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sponsorwatch_analysis_duration_seconds",
			Help:    "Duration of full analysis runs",
			Buckets: prometheus.DefBuckets,
		},
	)

	// AlertsGenerated counts alerts produced, labelled by type and severity.
	AlertsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sponsorwatch_alerts_generated_total",
			Help: "Alerts produced by type and severity",
		},
		[]string{"type", "severity"},
	)

	// DiagnosticsTotal counts skipped or failed per-item units, by stage.
	DiagnosticsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sponsorwatch_diagnostics_total",
			Help: "Per-item units skipped or recovered, by stage",
		},
		[]string{"stage"},
	)
)

var registerOnce sync.Once

// Init registers all collectors on the default registry. Safe to call more
// than once.
func Init(logger *logrus.Logger) {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			AnalysisRuns,
			AnalysisDuration,
			AlertsGenerated,
			DiagnosticsTotal,
		)
		logger.Debug("Prometheus collectors registered")
	})
}
