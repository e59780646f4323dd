package monitor

import "fmt"

// BuildRecommendations maps the analytics snapshot onto the fixed
// recommendation catalogue. Rationale texts are interpolated from snapshot
// figures; there is no branching beyond reading the values.
func BuildRecommendations(a AnalyticsSnapshot) RecommendationSet {
	return RecommendationSet{
		ImmediateActions: []Recommendation{
			{
				Priority:  "critical",
				Action:    "Introduce mandatory age verification",
				Rationale: fmt.Sprintf("%d%% estimated exposure of minors", a.Summary.MinorExposureEstimate),
				Timeline:  "30 days",
			},
			{
				Priority:  "high",
				Action:    "Require full sponsorship disclosure",
				Rationale: fmt.Sprintf("%d transparency violations detected", a.ContentAnalysis.TransparencyIssues),
				Timeline:  "60 days",
			},
			{
				Priority:  "high",
				Action:    "Regulate skin gambling as a betting modality",
				Rationale: fmt.Sprintf("%d skin gambling cases observed", a.ContentAnalysis.SkinGambling),
				Timeline:  "90 days",
			},
		},
		RegulatoryFramework: []FrameworkRecommendation{
			{
				Area:           "E-sports",
				Recommendation: "Create a dedicated regulatory category for professional players",
				Justification:  "Disproportionate influence over young audiences",
			},
			{
				Area:           "International jurisdiction",
				Recommendation: "Bilateral agreements for oversight of Brazilian athletes abroad",
				Justification:  fmt.Sprintf("%d athletes across the monitored alert set", a.Summary.UniqueAthletes),
			},
			{
				Area:           "Minor protection",
				Recommendation: "Dedicated framework for content reaching minors",
				Justification:  "Primary audience aged 13-25 is highly vulnerable",
			},
		},
		AcademicContributions: []string{
			"First systematic analysis of gambling sponsorships in Brazilian e-sports",
			"Replicable methodology for automated monitoring",
			"Empirical evidence for public policy design",
			"Baseline for longitudinal impact studies",
		},
		NextResearchSteps: []string{
			"Psychological impact analysis on minors",
			"Effectiveness study of regulatory measures",
			"International comparison of regulatory frameworks",
			"Improved automated detection tooling",
		},
	}
}

func emptyRecommendations() RecommendationSet {
	return RecommendationSet{
		ImmediateActions:      []Recommendation{},
		RegulatoryFramework:   []FrameworkRecommendation{},
		AcademicContributions: []string{},
		NextResearchSteps:     []string{},
	}
}
