package monitor

import "time"

// Platform identifies a social network a content item was collected from.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformTwitch  Platform = "twitch"
	PlatformTwitter Platform = "twitter"
)

// PlatformOrder fixes the traversal order used during alert generation so
// repeated runs over identical input produce identical output.
var PlatformOrder = []Platform{PlatformYouTube, PlatformTwitch, PlatformTwitter}

// ContentItem represents one piece of collected content metadata (a video,
// VOD, or tweet) handed over by the collector layer.
type ContentItem struct {
	Platform    Platform  `json:"platform"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"published_at"`
}

// SponsorMatch is a single keyword hit inside one content item.
type SponsorMatch struct {
	Keyword    string `json:"keyword"`
	CategoryID string `json:"category"`
	Context    string `json:"context"`
}

// Evidence pairs a content item with every keyword match found within it.
type Evidence struct {
	Content ContentItem    `json:"video"`
	Matches []SponsorMatch `json:"sponsors_found"`
}

// RiskLevel is the coarse tier derived from a risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// PlatformAnalysis is the per-athlete, per-platform analysis result. It is
// computed once and never mutated afterwards.
type PlatformAnalysis struct {
	VideosAnalyzed     int        `json:"videos_analyzed"`
	VideosWithSponsors int        `json:"videos_with_sponsors"`
	UniqueSponsors     []string   `json:"unique_sponsors"`
	TotalMentions      int        `json:"total_sponsor_mentions"`
	Evidence           []Evidence `json:"sponsorship_evidence"`
	PromoPatterns      []string   `json:"promo_patterns"`
	RiskScore          int        `json:"risk_score"`
	RiskLevel          RiskLevel  `json:"risk_level"`
	RiskFactors        []string   `json:"risk_factors"`
	HasDisclosure      bool       `json:"has_disclosure"`
	ComplianceScore    int        `json:"compliance_score"`
}

// PlatformData bundles everything known about one athlete on one platform:
// the audience size, the collected content, and (once computed) the analysis.
type PlatformData struct {
	Followers int               `json:"followers"`
	Items     []ContentItem     `json:"content,omitempty"`
	Analysis  *PlatformAnalysis `json:"analysis,omitempty"`
}

// Athlete is the unit of analysis. The pipeline only reads it.
type Athlete struct {
	Name           string                     `json:"name"`
	Nickname       string                     `json:"nickname"`
	Game           string                     `json:"game"`
	Team           string                     `json:"team"`
	PlayingCountry string                     `json:"playing_country"`
	Platforms      map[Platform]*PlatformData `json:"platforms"`
}

// TotalFollowers sums the follower counts across all platforms.
func (a Athlete) TotalFollowers() int {
	var total int
	for _, pd := range a.Platforms {
		if pd != nil {
			total += pd.Followers
		}
	}
	return total
}

// AlertType discriminates the three kinds of alert records.
type AlertType string

const (
	AlertSponsorDetected       AlertType = "sponsor_detected"
	AlertHighRiskScore         AlertType = "high_risk_score"
	AlertTransparencyViolation AlertType = "transparency_violation"
)

// AthleteRef is the athlete snapshot carried on each alert.
type AthleteRef struct {
	Name      string `json:"name"`
	Nickname  string `json:"nickname"`
	Game      string `json:"game"`
	Team      string `json:"team"`
	Followers int    `json:"followers"`
}

// AlertEvidence captures the facts an alert is based on. Which fields are
// populated depends on the alert type.
type AlertEvidence struct {
	ContentTitle        string    `json:"content_title,omitempty"`
	ContentID           string    `json:"content_id,omitempty"`
	PublishedAt         time.Time `json:"published_at,omitempty"`
	Keyword             string    `json:"keyword_found,omitempty"`
	Context             string    `json:"context,omitempty"`
	CategoryID          string    `json:"category_type,omitempty"`
	RiskScore           int       `json:"risk_score,omitempty"`
	RiskFactors         []string  `json:"risk_factors,omitempty"`
	VideosAnalyzed      int       `json:"videos_analyzed,omitempty"`
	VideosWithSponsors  int       `json:"videos_with_sponsors,omitempty"`
	UndisclosedSponsors []string  `json:"sponsors_undisclosed,omitempty"`
	ComplianceScore     int       `json:"compliance_score,omitempty"`
}

// RiskAssessment qualifies the reach and regulatory weight of an alert.
type RiskAssessment struct {
	LegalConcern     string  `json:"legal_concern,omitempty"`
	MinorImpact      string  `json:"minor_impact,omitempty"`
	AudienceSize     string  `json:"audience_size,omitempty"`
	GeographicReach  string  `json:"geographic_reach,omitempty"`
	PatternFrequency float64 `json:"pattern_frequency,omitempty"`
	SponsorDiversity int     `json:"diversity_sponsors,omitempty"`
	ComplianceScore  int     `json:"compliance_score,omitempty"`
}

// Alert is one detected issue. IDs are assigned sequentially in generation
// order before the final severity sort, so an ID is an opaque marker of when
// the alert was produced, not of its position in the report.
type Alert struct {
	ID                int            `json:"id"`
	Athlete           AthleteRef     `json:"athlete"`
	Platform          Platform       `json:"platform"`
	Type              AlertType      `json:"type"`
	CategoryID        string         `json:"category_id"`
	Category          string         `json:"category"`
	Severity          int            `json:"severity"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Evidence          AlertEvidence  `json:"evidence"`
	RiskAssessment    RiskAssessment `json:"risk_assessment"`
	ComplianceIssues  []string       `json:"compliance_issues,omitempty"`
	LegalImplications []string       `json:"legal_implications,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

// Summary holds the headline counters of an analytics snapshot.
type Summary struct {
	TotalAlerts           int `json:"total_alerts"`
	UniqueAthletes        int `json:"unique_athletes"`
	TotalAudienceImpact   int `json:"total_audience_impact"`
	MinorExposureEstimate int `json:"minor_exposure_estimate"`
}

// Distributions are group counts over the alert set. Map keys are field
// values; severities are rendered as decimal strings for stable JSON.
type Distributions struct {
	Severity map[string]int `json:"severity"`
	Category map[string]int `json:"category"`
	Platform map[string]int `json:"platform"`
	Game     map[string]int `json:"game"`
}

// ContentAnalysis counts alerts in the categories of highest research
// interest.
type ContentAnalysis struct {
	GamblingDirect     int `json:"gambling_direct"`
	SkinGambling       int `json:"skin_gambling"`
	BrazilianSpecific  int `json:"brazilian_specific"`
	TransparencyIssues int `json:"transparency_issues"`
}

// ComplianceMetrics are saturating 0-100 rollups over the alert set.
type ComplianceMetrics struct {
	TransparencyScore float64 `json:"transparency_score"`
	SafetyScore       float64 `json:"safety_score"`
	OverallCompliance float64 `json:"overall_compliance"`
}

// RiskIndicators are percentage ratios of alert subsets over the full set.
type RiskIndicators struct {
	MinorExposureRisk float64 `json:"minor_exposure_risk"`
	RegulatoryRisk    float64 `json:"regulatory_risk"`
	ReputationalRisk  float64 `json:"reputational_risk"`
	LegalRisk         float64 `json:"legal_risk"`
}

// AnalyticsSnapshot is the aggregate read-only view over an alert collection.
type AnalyticsSnapshot struct {
	Summary           Summary           `json:"summary"`
	Distributions     Distributions     `json:"distributions"`
	ContentAnalysis   ContentAnalysis   `json:"content_analysis"`
	ComplianceMetrics ComplianceMetrics `json:"compliance_metrics"`
	RiskIndicators    RiskIndicators    `json:"risk_indicators"`
}

// TrendPattern describes one observed pattern with its supporting count.
type TrendPattern struct {
	Pattern      string `json:"pattern"`
	Description  string `json:"description"`
	Evidence     int    `json:"evidence"`
	Trend        string `json:"trend"`
	ConcernLevel string `json:"concern_level"`
}

// DemographicInsights summarise audience characteristics.
type DemographicInsights struct {
	YouthExposure      string `json:"youth_exposure"`
	GeographicSpread   string `json:"geographic_spread"`
	PlatformPreference string `json:"platform_preference"`
}

// TrendReport groups emerging patterns, demographic insight, and the
// regulatory gaps the alert set exposes.
type TrendReport struct {
	EmergingPatterns    []TrendPattern      `json:"emerging_patterns"`
	DemographicInsights DemographicInsights `json:"demographic_insights"`
	RegulatoryGaps      []string            `json:"regulatory_gaps"`
}

// Recommendation is one actionable item derived from the snapshot.
type Recommendation struct {
	Priority  string `json:"priority"`
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
	Timeline  string `json:"timeline"`
}

// FrameworkRecommendation targets a regulatory area rather than an action.
type FrameworkRecommendation struct {
	Area           string `json:"area"`
	Recommendation string `json:"recommendation"`
	Justification  string `json:"justification"`
}

// RecommendationSet bundles every recommendation track of the report.
type RecommendationSet struct {
	ImmediateActions      []Recommendation          `json:"immediate_actions"`
	RegulatoryFramework   []FrameworkRecommendation `json:"regulatory_framework"`
	AcademicContributions []string                  `json:"academic_contributions"`
	NextResearchSteps     []string                  `json:"next_research_steps"`
}

// AlertReport is the full output of one analysis run.
type AlertReport struct {
	Alerts          []Alert           `json:"alerts"`
	Analytics       AnalyticsSnapshot `json:"analytics"`
	Trends          TrendReport       `json:"trends"`
	Recommendations RecommendationSet `json:"recommendations"`
	Diagnostics     []Diagnostic      `json:"diagnostics,omitempty"`
	GeneratedAt     time.Time         `json:"generated_at"`
}
