package metrics

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitIsIdempotent(t *testing.T) {
	logger := logrus.New()
	Init(logger)
	Init(logger) // must not panic with duplicate registration

	AnalysisRuns.WithLabelValues("ok").Inc()
	AlertsGenerated.WithLabelValues("sponsor_detected", "3").Inc()
	DiagnosticsTotal.WithLabelValues("alert_generation").Inc()
	AnalysisDuration.Observe(0.1)
}
