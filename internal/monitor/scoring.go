package monitor

import "math"

// RiskInput carries the signals the risk score is computed from. Missing
// upstream values simply arrive as empty collections or zero.
type RiskInput struct {
	UniqueSponsors []string
	TotalMentions  int
	Categories     []string
	PromoPatterns  []string
	VideosAnalyzed int
}

// ScoreRisk combines sponsor diversity, mention frequency, risk-category
// spread, and promotional-code count into a bounded 0-100 score. Analyses
// over fewer than three items are dampened for low confidence.
func ScoreRisk(in RiskInput) (int, RiskLevel) {
	score := float64(8 * len(in.UniqueSponsors))

	score += math.Min(float64(3*in.TotalMentions), 30)

	riskCats := 0
	for _, id := range in.Categories {
		if _, ok := riskCategories[id]; ok {
			riskCats++
		}
	}
	score += float64(15 * riskCats)

	score += float64(10 * len(in.PromoPatterns))

	if in.VideosAnalyzed < 3 {
		score *= 0.7
	}

	rounded := int(math.Round(score))
	if rounded > 100 {
		rounded = 100
	}

	switch {
	case rounded >= 70:
		return rounded, RiskHigh
	case rounded >= 40:
		return rounded, RiskMedium
	default:
		return rounded, RiskLow
	}
}

// HasDisclosure reports whether any match in the evidence set belongs to the
// sponsorship-indicators category.
func HasDisclosure(evidence []Evidence) bool {
	for _, ev := range evidence {
		for _, m := range ev.Matches {
			if m.CategoryID == CategorySponsorshipIndicators {
				return true
			}
		}
	}
	return false
}

// ComplianceScore is the percentage of evidence items that carry a
// disclosure indicator. An empty evidence set is fully compliant.
func ComplianceScore(evidence []Evidence) int {
	if len(evidence) == 0 {
		return 100
	}
	disclosed := 0
	for _, ev := range evidence {
		for _, m := range ev.Matches {
			if m.CategoryID == CategorySponsorshipIndicators {
				disclosed++
				break
			}
		}
	}
	return int(math.Round(float64(disclosed) / float64(len(evidence)) * 100))
}

// riskFactors lists the human-readable factors behind a platform's score.
func riskFactors(evidence []Evidence, promos []string, categories []string) []string {
	var factors []string
	if len(evidence) > 0 {
		factors = append(factors, "Betting sponsorships detected")
	}
	if len(promos) > 0 {
		factors = append(factors, "Promotional codes identified")
	}
	for _, id := range categories {
		switch id {
		case "brazilian_games":
			factors = append(factors, "Games popular with young Brazilian audiences")
		case "skin_gambling":
			factors = append(factors, "Skin gambling / loot boxes")
		case "online_casinos":
			factors = append(factors, "Online casinos")
		case "predatory_mechanics":
			factors = append(factors, "Predatory engagement mechanics")
		}
	}
	return factors
}
