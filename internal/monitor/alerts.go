package monitor

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// alertGenerator turns per-athlete platform analyses into alert records.
//
// Generation order is fixed: athletes in input order, platforms in
// PlatformOrder, then sponsor_detected, high_risk_score, and
// transparency_violation per platform. IDs are assigned sequentially in that
// order before the final severity sort and are never renumbered.
type alertGenerator struct {
	taxonomy *Taxonomy
	now      func() time.Time
}

func (g alertGenerator) generate(athletes []Athlete) ([]Alert, []Diagnostic) {
	alerts := make([]Alert, 0)
	var diags []Diagnostic

	for _, athlete := range athletes {
		if strings.TrimSpace(athlete.Name) == "" {
			diags = append(diags, Diagnostic{
				Stage:  "alert_generation",
				Reason: "athlete without name skipped",
			})
			continue
		}
		for _, platform := range PlatformOrder {
			pd, ok := athlete.Platforms[platform]
			if !ok || pd == nil {
				continue
			}
			if pd.Analysis == nil {
				diags = append(diags, Diagnostic{
					Stage:    "alert_generation",
					Athlete:  athlete.Name,
					Platform: platform,
					Reason:   "platform payload without analysis skipped",
				})
				continue
			}
			var generated []Alert
			if diag := capture("alert_generation", athlete.Name, platform, func() {
				generated = g.platformAlerts(athlete, platform, *pd.Analysis)
			}); diag != nil {
				diags = append(diags, *diag)
				continue
			}
			alerts = append(alerts, generated...)
		}
	}

	for i := range alerts {
		alerts[i].ID = i + 1
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity > alerts[j].Severity
	})

	return alerts, diags
}

func (g alertGenerator) platformAlerts(athlete Athlete, platform Platform, an PlatformAnalysis) []Alert {
	var alerts []Alert
	ref := athleteRef(athlete)
	created := g.now().UTC()

	for _, ev := range an.Evidence {
		for _, match := range ev.Matches {
			cat := g.resolveCategory(match)
			alerts = append(alerts, Alert{
				Athlete:     ref,
				Platform:    platform,
				Type:        AlertSponsorDetected,
				CategoryID:  cat.ID,
				Category:    cat.Name,
				Severity:    cat.Severity,
				Title:       fmt.Sprintf("%s - %s detected", displayName(athlete), cat.Name),
				Description: fmt.Sprintf("Sponsor %q found on %s", match.Keyword, platform),
				Evidence: AlertEvidence{
					ContentTitle: ev.Content.Title,
					ContentID:    ev.Content.ID,
					PublishedAt:  ev.Content.PublishedAt,
					Keyword:      match.Keyword,
					Context:      match.Context,
					CategoryID:   match.CategoryID,
				},
				RiskAssessment: RiskAssessment{
					LegalConcern:    cat.LegalConcern,
					MinorImpact:     cat.MinorImpact,
					AudienceSize:    audienceBucket(athlete.TotalFollowers()),
					GeographicReach: geographicReach(athlete),
				},
				ComplianceIssues: complianceIssues(cat, ev),
				CreatedAt:        created,
			})
		}
	}

	if an.RiskScore >= 70 {
		alerts = append(alerts, Alert{
			Athlete:     ref,
			Platform:    platform,
			Type:        AlertHighRiskScore,
			CategoryID:  "high_risk",
			Category:    "High Overall Risk",
			Severity:    3,
			Title:       fmt.Sprintf("%s - high risk on %s", displayName(athlete), platform),
			Description: fmt.Sprintf("Risk score %d/100", an.RiskScore),
			Evidence: AlertEvidence{
				RiskScore:          an.RiskScore,
				RiskFactors:        an.RiskFactors,
				VideosAnalyzed:     an.VideosAnalyzed,
				VideosWithSponsors: an.VideosWithSponsors,
			},
			RiskAssessment: RiskAssessment{
				PatternFrequency: patternFrequency(an),
				SponsorDiversity: len(an.UniqueSponsors),
				ComplianceScore:  an.ComplianceScore,
			},
			CreatedAt: created,
		})
	}

	if !an.HasDisclosure && len(an.UniqueSponsors) > 0 {
		alerts = append(alerts, Alert{
			Athlete:     ref,
			Platform:    platform,
			Type:        AlertTransparencyViolation,
			CategoryID:  "lack_disclosure",
			Category:    "Transparency Violation",
			Severity:    2,
			Title:       fmt.Sprintf("%s - undisclosed sponsorships on %s", displayName(athlete), platform),
			Description: fmt.Sprintf("%d sponsors without proper disclosure", len(an.UniqueSponsors)),
			Evidence: AlertEvidence{
				UndisclosedSponsors: an.UniqueSponsors,
				ComplianceScore:     an.ComplianceScore,
			},
			LegalImplications: []string{
				"Consumer Protection Code violation",
				"Misleading advertising",
				"Insufficient advertising transparency",
			},
			CreatedAt: created,
		})
	}

	return alerts
}

// resolveCategory prefers the category tag carried on the match; payloads
// from external collectors may use unknown tags, in which case the keyword is
// re-categorized against the local taxonomy.
func (g alertGenerator) resolveCategory(match SponsorMatch) Category {
	if cat, ok := g.taxonomy.Category(match.CategoryID); ok {
		return cat
	}
	return g.taxonomy.Categorize(match.Keyword)
}

func athleteRef(athlete Athlete) AthleteRef {
	return AthleteRef{
		Name:      athlete.Name,
		Nickname:  athlete.Nickname,
		Game:      athlete.Game,
		Team:      athlete.Team,
		Followers: athlete.TotalFollowers(),
	}
}

func displayName(athlete Athlete) string {
	if athlete.Nickname != "" {
		return athlete.Nickname
	}
	return athlete.Name
}

func audienceBucket(followers int) string {
	switch {
	case followers > 1_000_000:
		return "very high"
	case followers > 500_000:
		return "high"
	case followers > 100_000:
		return "medium"
	default:
		return "low"
	}
}

func geographicReach(athlete Athlete) string {
	if athlete.PlayingCountry != "BR" {
		return "international"
	}
	return "national"
}

func patternFrequency(an PlatformAnalysis) float64 {
	analyzed := an.VideosAnalyzed
	if analyzed < 1 {
		analyzed = 1
	}
	return float64(an.VideosWithSponsors) / float64(analyzed)
}

func complianceIssues(cat Category, ev Evidence) []string {
	title := strings.ToLower(ev.Content.Title)
	var issues []string
	if !strings.Contains(title, "#publi") && !strings.Contains(title, "#ad") {
		issues = append(issues, "Missing advertising identification")
	}
	if cat.IsRisk() {
		issues = append(issues, "Content inappropriate for minors")
	}
	if !strings.Contains(title, "patrocínio") {
		issues = append(issues, "Missing commercial relationship transparency")
	}
	return issues
}
