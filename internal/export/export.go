// Package export flattens alert reports into CSV and JSON documents
// suitable for spreadsheets and downstream ingestion.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"sponsorwatch/internal/monitor"
)

// SeverityLabel maps a numeric severity to its presentation label.
func SeverityLabel(severity int) string {
	switch severity {
	case 3:
		return "high"
	case 2:
		return "medium"
	default:
		return "low"
	}
}

var csvHeader = []string{
	"alert_id",
	"type",
	"severity",
	"athlete",
	"nickname",
	"team",
	"game",
	"platform",
	"category",
	"title",
	"risk_score",
	"compliance_score",
	"followers",
	"minor_impact",
	"legal_concern",
	"has_legal_implications",
	"created_at",
}

// CSV renders the report's alerts as a CSV document.
func CSV(report monitor.AlertReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, a := range report.Alerts {
		row := []string{
			strconv.Itoa(a.ID),
			string(a.Type),
			SeverityLabel(a.Severity),
			a.Athlete.Name,
			a.Athlete.Nickname,
			a.Athlete.Team,
			a.Athlete.Game,
			string(a.Platform),
			a.Category,
			a.Title,
			strconv.Itoa(a.Evidence.RiskScore),
			strconv.Itoa(a.Evidence.ComplianceScore),
			strconv.Itoa(a.Athlete.Followers),
			a.RiskAssessment.MinorImpact,
			a.RiskAssessment.LegalConcern,
			strconv.FormatBool(len(a.LegalImplications) > 0),
			a.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Document is the JSON export shape: the full report plus label fields
// resolved for consumers that do not know the numeric severity scale.
type Document struct {
	GeneratedAt time.Time                 `json:"generated_at"`
	Alerts      []LabelledAlert           `json:"alerts"`
	Analytics   monitor.AnalyticsSnapshot `json:"analytics"`
	Trends      monitor.TrendReport       `json:"trends"`
}

// LabelledAlert wraps an alert with its severity label.
type LabelledAlert struct {
	monitor.Alert
	SeverityLabel string `json:"severity_label"`
}

// JSONDocument builds the JSON export document for a report.
func JSONDocument(report monitor.AlertReport) Document {
	labelled := make([]LabelledAlert, 0, len(report.Alerts))
	for _, a := range report.Alerts {
		labelled = append(labelled, LabelledAlert{
			Alert:         a,
			SeverityLabel: SeverityLabel(a.Severity),
		})
	}
	return Document{
		GeneratedAt: report.GeneratedAt,
		Alerts:      labelled,
		Analytics:   report.Analytics,
		Trends:      report.Trends,
	}
}

// Filename suggests a download filename for the given format.
func Filename(format string, at time.Time) string {
	return "sponsorwatch-" + at.Format("20060102-150405") + "." + strings.ToLower(format)
}
