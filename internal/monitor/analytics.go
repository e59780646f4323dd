package monitor

import (
	"math"
	"strconv"
)

// platformMinorWeights are the fixed share-of-audience-under-25 estimates
// per platform used for the minor-exposure figure.
var platformMinorWeights = map[Platform]float64{
	PlatformYouTube: 0.65,
	PlatformTwitch:  0.72,
	PlatformTwitter: 0.58,
}

// Aggregate recomputes the full analytics snapshot over an alert collection.
// There is no incremental update: every call starts from scratch. An empty
// alert list yields the documented empty snapshot with perfect compliance.
func Aggregate(alerts []Alert) AnalyticsSnapshot {
	if len(alerts) == 0 {
		return emptyAnalytics()
	}

	total := len(alerts)

	dist := Distributions{
		Severity: make(map[string]int),
		Category: make(map[string]int),
		Platform: make(map[string]int),
		Game:     make(map[string]int),
	}
	athletes := make(map[string]struct{})
	audience := 0
	content := ContentAnalysis{}
	violations := 0
	highSeverity := 0
	withLegal := 0

	for _, alert := range alerts {
		dist.Severity[strconv.Itoa(alert.Severity)]++
		dist.Category[alert.Category]++
		dist.Platform[string(alert.Platform)]++
		game := alert.Athlete.Game
		if game == "" {
			game = "unspecified"
		}
		dist.Game[game]++

		if alert.Athlete.Name != "" {
			athletes[alert.Athlete.Name] = struct{}{}
		}
		// Audience is summed per alert: the same athlete may be counted
		// several times, once per alert snapshot.
		audience += alert.Athlete.Followers

		switch alert.CategoryID {
		case "betting_sites":
			content.GamblingDirect++
		case "skin_gambling":
			content.SkinGambling++
		case "brazilian_games":
			content.BrazilianSpecific++
		}
		if alert.Type == AlertTransparencyViolation {
			content.TransparencyIssues++
			violations++
		}
		if alert.Severity >= 3 {
			highSeverity++
		}
		if len(alert.LegalImplications) > 0 {
			withLegal++
		}
	}

	minorExposure := minorExposureEstimate(alerts)

	return AnalyticsSnapshot{
		Summary: Summary{
			TotalAlerts:           total,
			UniqueAthletes:        len(athletes),
			TotalAudienceImpact:   audience,
			MinorExposureEstimate: minorExposure,
		},
		Distributions:   dist,
		ContentAnalysis: content,
		ComplianceMetrics: ComplianceMetrics{
			TransparencyScore: math.Max(0, 100-float64(violations)/float64(total)*100),
			SafetyScore:       math.Max(0, 100-float64(highSeverity)/float64(total)*100),
			OverallCompliance: math.Max(0, 100-float64(total)/50*100),
		},
		RiskIndicators: RiskIndicators{
			MinorExposureRisk: float64(minorExposure),
			RegulatoryRisk:    float64(highSeverity) / float64(total) * 100,
			ReputationalRisk:  float64(violations) / float64(total) * 100,
			LegalRisk:         float64(withLegal) / float64(total) * 100,
		},
	}
}

// minorExposureEstimate is the demographic-weighted average of the alert
// set's platform mix, expressed as a 0-100 percentage.
func minorExposureEstimate(alerts []Alert) int {
	if len(alerts) == 0 {
		return 0
	}
	counts := make(map[Platform]int)
	for _, alert := range alerts {
		counts[alert.Platform]++
	}
	// Summation follows PlatformOrder so the rounding input is identical
	// across runs.
	weighted := 0.0
	for _, platform := range PlatformOrder {
		weighted += float64(counts[platform]) * platformMinorWeights[platform]
	}
	return int(math.Round(weighted / float64(len(alerts)) * 100))
}

func emptyAnalytics() AnalyticsSnapshot {
	return AnalyticsSnapshot{
		Summary: Summary{},
		Distributions: Distributions{
			Severity: map[string]int{},
			Category: map[string]int{},
			Platform: map[string]int{},
			Game:     map[string]int{},
		},
		ContentAnalysis: ContentAnalysis{},
		ComplianceMetrics: ComplianceMetrics{
			TransparencyScore: 100,
			SafetyScore:       100,
			OverallCompliance: 100,
		},
		RiskIndicators: RiskIndicators{},
	}
}
