package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sponsorwatch/internal/monitor"
)

func testReport() monitor.AlertReport {
	at := time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)
	return monitor.AlertReport{
		Alerts: []monitor.Alert{
			{
				ID:       1,
				Athlete:  monitor.AthleteRef{Name: "Gabriel Toledo", Nickname: "FalleN", Team: "Imperial", Game: "Counter-Strike", Followers: 2_000_000},
				Platform: monitor.PlatformTwitch,
				Type:     monitor.AlertSponsorDetected,
				Category: "Betting Houses",
				Severity: 3,
				Title:    "FalleN - Betting Houses detected",
				Evidence: monitor.AlertEvidence{Keyword: "bet365"},
				RiskAssessment: monitor.RiskAssessment{
					LegalConcern: "High - Law 14.790/23",
					MinorImpact:  "Critical",
				},
				CreatedAt: at,
			},
			{
				ID:                2,
				Athlete:           monitor.AthleteRef{Name: "Gabriel Toledo", Nickname: "FalleN", Followers: 2_000_000},
				Platform:          monitor.PlatformTwitch,
				Type:              monitor.AlertTransparencyViolation,
				Category:          "Transparency Violation",
				Severity:          2,
				LegalImplications: []string{"Misleading advertising"},
				CreatedAt:         at,
			},
		},
		GeneratedAt: at,
	}
}

func TestSeverityLabel(t *testing.T) {
	assert.Equal(t, "high", SeverityLabel(3))
	assert.Equal(t, "medium", SeverityLabel(2))
	assert.Equal(t, "low", SeverityLabel(1))
	assert.Equal(t, "low", SeverityLabel(0))
}

func TestCSVFlattensAlerts(t *testing.T) {
	data, err := CSV(testReport())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	first := records[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "sponsor_detected", first[1])
	assert.Equal(t, "high", first[2])
	assert.Equal(t, "Gabriel Toledo", first[3])
	assert.Equal(t, "twitch", first[7])
	assert.Equal(t, "High - Law 14.790/23", first[14])
	assert.Equal(t, "false", first[15])
	assert.Equal(t, "2025-08-10T09:00:00Z", first[16])

	second := records[2]
	assert.Equal(t, "medium", second[2])
	assert.Equal(t, "", second[14])
	assert.Equal(t, "true", second[15])
}

func TestCSVEmptyReport(t *testing.T) {
	data, err := CSV(monitor.AlertReport{})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestJSONDocumentLabelsAlerts(t *testing.T) {
	doc := JSONDocument(testReport())

	require.Len(t, doc.Alerts, 2)
	assert.Equal(t, "high", doc.Alerts[0].SeverityLabel)
	assert.Equal(t, "medium", doc.Alerts[1].SeverityLabel)
	assert.Equal(t, 1, doc.Alerts[0].ID)
}

func TestFilename(t *testing.T) {
	at := time.Date(2025, 8, 10, 9, 30, 15, 0, time.UTC)
	assert.Equal(t, "sponsorwatch-20250810-093015.csv", Filename("CSV", at))
}
