package monitor

import "testing"

func TestScoreRiskFormula(t *testing.T) {
	cases := []struct {
		name      string
		in        RiskInput
		wantScore int
		wantLevel RiskLevel
	}{
		{
			name:      "empty input",
			in:        RiskInput{VideosAnalyzed: 5},
			wantScore: 0,
			wantLevel: RiskLow,
		},
		{
			// 8*3 + 9 + 15 + 10 = 58
			name: "mixed signals",
			in: RiskInput{
				UniqueSponsors: []string{"case opening", "abrindo caixas", "use o código"},
				TotalMentions:  3,
				Categories:     []string{"skin_gambling", "promo_indicators"},
				PromoPatterns:  []string{"código FALLEN10"},
				VideosAnalyzed: 3,
			},
			wantScore: 58,
			wantLevel: RiskMedium,
		},
		{
			// 58 * 0.7 = 40.6 -> 41
			name: "low confidence dampening",
			in: RiskInput{
				UniqueSponsors: []string{"case opening", "abrindo caixas", "use o código"},
				TotalMentions:  3,
				Categories:     []string{"skin_gambling", "promo_indicators"},
				PromoPatterns:  []string{"código FALLEN10"},
				VideosAnalyzed: 2,
			},
			wantScore: 41,
			wantLevel: RiskMedium,
		},
		{
			name: "mention contribution saturates at 30",
			in: RiskInput{
				TotalMentions:  50,
				VideosAnalyzed: 3,
			},
			wantScore: 30,
			wantLevel: RiskLow,
		},
		{
			name: "score caps at 100",
			in: RiskInput{
				UniqueSponsors: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
				TotalMentions:  20,
				Categories:     []string{"betting_sites", "online_casinos", "skin_gambling"},
				PromoPatterns:  []string{"x", "y", "z"},
				VideosAnalyzed: 5,
			},
			wantScore: 100,
			wantLevel: RiskHigh,
		},
	}

	for _, tc := range cases {
		score, level := ScoreRisk(tc.in)
		if score != tc.wantScore || level != tc.wantLevel {
			t.Errorf("%s: ScoreRisk = (%d, %s), want (%d, %s)",
				tc.name, score, level, tc.wantScore, tc.wantLevel)
		}
	}
}

func TestScoreRiskIgnoresNonRiskCategories(t *testing.T) {
	base, _ := ScoreRisk(RiskInput{
		Categories:     []string{"betting_terms", "promo_indicators", "risk_terms"},
		VideosAnalyzed: 3,
	})
	if base != 0 {
		t.Fatalf("non-risk categories should not contribute, got %d", base)
	}
}

func TestScoreRiskLevelThresholds(t *testing.T) {
	// 5 unique sponsors = 40 exactly.
	score, level := ScoreRisk(RiskInput{
		UniqueSponsors: []string{"a", "b", "c", "d", "e"},
		VideosAnalyzed: 3,
	})
	if score != 40 || level != RiskMedium {
		t.Fatalf("score 40 should be medium, got (%d, %s)", score, level)
	}

	// 5 unique + 2 risk categories = 70 exactly.
	score, level = ScoreRisk(RiskInput{
		UniqueSponsors: []string{"a", "b", "c", "d", "e"},
		Categories:     []string{"betting_sites", "online_casinos"},
		VideosAnalyzed: 3,
	})
	if score != 70 || level != RiskHigh {
		t.Fatalf("score 70 should be high, got (%d, %s)", score, level)
	}
}

func TestComplianceScore(t *testing.T) {
	if got := ComplianceScore(nil); got != 100 {
		t.Fatalf("empty evidence should score 100, got %d", got)
	}

	disclosed := Evidence{Matches: []SponsorMatch{
		{Keyword: "#publi", CategoryID: CategorySponsorshipIndicators},
		{Keyword: "kto", CategoryID: "online_casinos"},
	}}
	undisclosed := Evidence{Matches: []SponsorMatch{
		{Keyword: "bet365", CategoryID: "betting_sites"},
	}}

	if got := ComplianceScore([]Evidence{disclosed, undisclosed}); got != 50 {
		t.Fatalf("1 of 2 items disclosed should score 50, got %d", got)
	}
	if got := ComplianceScore([]Evidence{undisclosed}); got != 0 {
		t.Fatalf("no disclosure should score 0, got %d", got)
	}
	if got := ComplianceScore([]Evidence{disclosed}); got != 100 {
		t.Fatalf("full disclosure should score 100, got %d", got)
	}
}

func TestHasDisclosure(t *testing.T) {
	ev := []Evidence{{Matches: []SponsorMatch{{Keyword: "bet365", CategoryID: "betting_sites"}}}}
	if HasDisclosure(ev) {
		t.Fatal("no disclosure expected")
	}
	ev = append(ev, Evidence{Matches: []SponsorMatch{{Keyword: "parceria", CategoryID: CategorySponsorshipIndicators}}})
	if !HasDisclosure(ev) {
		t.Fatal("disclosure expected")
	}
}
