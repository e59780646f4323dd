package monitor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// The raw* types mirror the collector layer's snapshot JSON. Collectors are
// external programs, so unknown fields are tolerated and missing or null
// fields default to empty collections or zero.

type rawSnapshot struct {
	Athletes []rawAthlete `json:"athletes"`
}

type rawAthlete struct {
	Name           string                        `json:"name"`
	Nickname       string                        `json:"nickname"`
	Game           string                        `json:"game"`
	Team           string                        `json:"team"`
	PlayingCountry string                        `json:"playing_country"`
	Platforms      map[string]rawPlatformPayload `json:"platforms"`
}

type rawPlatformPayload struct {
	Followers           int              `json:"followers"`
	Content             []rawContentItem `json:"content"`
	VideosAnalyzed      int              `json:"videos_analyzed"`
	VideosWithSponsors  int              `json:"videos_with_sponsors"`
	UniqueSponsors      []string         `json:"unique_sponsors"`
	TotalMentions       int              `json:"total_sponsor_mentions"`
	SponsorshipEvidence []rawEvidence    `json:"sponsorship_evidence"`
	PromoPatterns       []string         `json:"promo_patterns"`
	RiskScore           int              `json:"risk_score"`
	RiskLevel           string           `json:"risk_level"`
	RiskFactors         []string         `json:"risk_factors"`
	HasDisclosure       bool             `json:"has_disclosure"`
	ComplianceScore     int              `json:"compliance_score"`
}

type rawContentItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Published   string `json:"published"`
}

type rawEvidence struct {
	Video         rawContentItem `json:"video"`
	SponsorsFound []rawSponsor   `json:"sponsors_found"`
}

type rawSponsor struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
	Context  string `json:"context"`
}

// DecodeAthletes parses a collector snapshot. Both the wrapped form
// {"athletes": [...]} and a bare athlete array are accepted.
func DecodeAthletes(data []byte) ([]Athlete, error) {
	trimmed := bytes.TrimSpace(data)
	var raws []rawAthlete
	if bytes.HasPrefix(trimmed, []byte("[")) {
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("decode athletes JSON: %w", err)
		}
	} else {
		var snapshot rawSnapshot
		if err := json.Unmarshal(trimmed, &snapshot); err != nil {
			return nil, fmt.Errorf("decode athletes JSON: %w", err)
		}
		raws = snapshot.Athletes
	}

	athletes := make([]Athlete, 0, len(raws))
	for _, r := range raws {
		athletes = append(athletes, r.toAthlete())
	}
	return athletes, nil
}

// DecodeAthlete parses a single athlete object.
func DecodeAthlete(data []byte) (Athlete, error) {
	var raw rawAthlete
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		return Athlete{}, fmt.Errorf("decode athlete JSON: %w", err)
	}
	return raw.toAthlete(), nil
}

func (r rawAthlete) toAthlete() Athlete {
	athlete := Athlete{
		Name:           strings.TrimSpace(r.Name),
		Nickname:       strings.TrimSpace(r.Nickname),
		Game:           r.Game,
		Team:           r.Team,
		PlayingCountry: r.PlayingCountry,
		Platforms:      make(map[Platform]*PlatformData, len(r.Platforms)),
	}
	for name, payload := range r.Platforms {
		platform := Platform(strings.ToLower(strings.TrimSpace(name)))
		switch platform {
		case PlatformYouTube, PlatformTwitch, PlatformTwitter:
		default:
			continue
		}
		athlete.Platforms[platform] = payload.toPlatformData(platform)
	}
	return athlete
}

func (p rawPlatformPayload) toPlatformData(platform Platform) *PlatformData {
	pd := &PlatformData{Followers: p.Followers}
	for _, item := range p.Content {
		pd.Items = append(pd.Items, item.toContentItem(platform))
	}
	if analysis := p.toAnalysis(platform); analysis != nil {
		pd.Analysis = analysis
	}
	return pd
}

// toAnalysis rebuilds a PlatformAnalysis from a payload that was already
// analysed upstream. A payload carrying only raw content yields nil and is
// analysed locally instead.
func (p rawPlatformPayload) toAnalysis(platform Platform) *PlatformAnalysis {
	if p.VideosAnalyzed == 0 && len(p.SponsorshipEvidence) == 0 &&
		len(p.UniqueSponsors) == 0 && p.RiskScore == 0 {
		return nil
	}

	evidence := make([]Evidence, 0, len(p.SponsorshipEvidence))
	for _, ev := range p.SponsorshipEvidence {
		matches := make([]SponsorMatch, 0, len(ev.SponsorsFound))
		for _, s := range ev.SponsorsFound {
			matches = append(matches, SponsorMatch{
				Keyword:    s.Keyword,
				CategoryID: s.Category,
				Context:    s.Context,
			})
		}
		evidence = append(evidence, Evidence{
			Content: ev.Video.toContentItem(platform),
			Matches: matches,
		})
	}

	level := RiskLevel(p.RiskLevel)
	switch level {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		switch {
		case p.RiskScore >= 70:
			level = RiskHigh
		case p.RiskScore >= 40:
			level = RiskMedium
		default:
			level = RiskLow
		}
	}

	return &PlatformAnalysis{
		VideosAnalyzed:     p.VideosAnalyzed,
		VideosWithSponsors: p.VideosWithSponsors,
		UniqueSponsors:     emptyIfNil(p.UniqueSponsors),
		TotalMentions:      p.TotalMentions,
		Evidence:           evidence,
		PromoPatterns:      emptyIfNil(p.PromoPatterns),
		RiskScore:          p.RiskScore,
		RiskLevel:          level,
		RiskFactors:        emptyIfNil(p.RiskFactors),
		HasDisclosure:      p.HasDisclosure,
		ComplianceScore:    p.ComplianceScore,
	}
}

func (r rawContentItem) toContentItem(platform Platform) ContentItem {
	item := ContentItem{
		Platform:    platform,
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Published != "" {
		if ts, err := time.Parse(time.RFC3339, r.Published); err == nil {
			item.PublishedAt = ts
		}
	}
	return item
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
