package monitor

import (
	"errors"
	"sync"
	"time"
)

// Analyzer runs the full detection pipeline: per-platform content analysis,
// alert generation, aggregation, and recommendation synthesis. It holds no
// state between runs apart from the read-only taxonomy.
type Analyzer struct {
	taxonomy *Taxonomy
	workers  int
	now      func() time.Time
}

// AnalyzerOption customises an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithWorkers bounds the number of athletes analysed concurrently.
func WithWorkers(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAnalyzer constructs an Analyzer over the given taxonomy.
func NewAnalyzer(tax *Taxonomy, opts ...AnalyzerOption) (*Analyzer, error) {
	if tax == nil {
		return nil, errors.New("analyzer requires a taxonomy")
	}
	a := &Analyzer{taxonomy: tax, workers: 4, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Taxonomy exposes the analyzer's category table.
func (a *Analyzer) Taxonomy() *Taxonomy { return a.taxonomy }

// AnalyzePlatformContent scans the given content items and produces the full
// per-platform analysis: evidence, promo patterns, risk score, and
// compliance figures. It is a pure function of its inputs.
func (a *Analyzer) AnalyzePlatformContent(items []ContentItem) PlatformAnalysis {
	evidence := Scan(items, a.taxonomy)
	promos := DetectPromoPatterns(items)

	var unique []string
	seen := make(map[string]struct{})
	mentions := 0
	var categories []string
	catSeen := make(map[string]struct{})
	for _, ev := range evidence {
		for _, m := range ev.Matches {
			mentions++
			if _, ok := seen[m.Keyword]; !ok {
				seen[m.Keyword] = struct{}{}
				unique = append(unique, m.Keyword)
			}
			if _, ok := catSeen[m.CategoryID]; !ok {
				catSeen[m.CategoryID] = struct{}{}
				categories = append(categories, m.CategoryID)
			}
		}
	}

	score, level := ScoreRisk(RiskInput{
		UniqueSponsors: unique,
		TotalMentions:  mentions,
		Categories:     categories,
		PromoPatterns:  promos,
		VideosAnalyzed: len(items),
	})

	return PlatformAnalysis{
		VideosAnalyzed:     len(items),
		VideosWithSponsors: len(evidence),
		UniqueSponsors:     unique,
		TotalMentions:      mentions,
		Evidence:           evidence,
		PromoPatterns:      promos,
		RiskScore:          score,
		RiskLevel:          level,
		RiskFactors:        riskFactors(evidence, promos, categories),
		HasDisclosure:      HasDisclosure(evidence),
		ComplianceScore:    ComplianceScore(evidence),
	}
}

// Analyze runs the whole pipeline over the athlete set and returns the alert
// report. It never panics: any uncaught condition degrades to the empty
// report shape. Per-athlete analyses run in parallel; alert generation is a
// single deterministic pass after all workers finish, so IDs and ordering do
// not depend on scheduling.
func (a *Analyzer) Analyze(athletes []Athlete) (report AlertReport) {
	defer func() {
		if r := recover(); r != nil {
			report = a.emptyReport()
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				Stage:  "analyze",
				Reason: "recovered from internal error",
			})
		}
	}()

	if len(athletes) == 0 {
		return a.emptyReport()
	}

	prepared, diags := a.prepare(athletes)

	gen := alertGenerator{taxonomy: a.taxonomy, now: a.now}
	alerts, genDiags := gen.generate(prepared)
	diags = append(diags, genDiags...)

	analytics := Aggregate(alerts)
	trends := IdentifyTrends(alerts)
	recommendations := BuildRecommendations(analytics)

	return AlertReport{
		Alerts:          alerts,
		Analytics:       analytics,
		Trends:          trends,
		Recommendations: recommendations,
		Diagnostics:     diags,
		GeneratedAt:     a.now().UTC(),
	}
}

// prepare clones the athlete set and fills in any missing platform analyses
// from raw content, using a bounded worker pool. The caller's slice is never
// mutated. Each worker writes only its own index, so the result is
// deterministic regardless of completion order.
func (a *Analyzer) prepare(athletes []Athlete) ([]Athlete, []Diagnostic) {
	prepared := make([]Athlete, len(athletes))
	diagsPer := make([][]Diagnostic, len(athletes))

	sem := make(chan struct{}, a.workers)
	var wg sync.WaitGroup
	for i := range athletes {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			athlete := athletes[idx]
			clone := athlete
			clone.Platforms = make(map[Platform]*PlatformData, len(athlete.Platforms))
			for platform, pd := range athlete.Platforms {
				if pd == nil {
					continue
				}
				cp := *pd
				if cp.Analysis == nil && len(cp.Items) > 0 {
					if diag := capture("platform_analysis", athlete.Name, platform, func() {
						analysis := a.AnalyzePlatformContent(cp.Items)
						cp.Analysis = &analysis
					}); diag != nil {
						diagsPer[idx] = append(diagsPer[idx], *diag)
						continue
					}
				}
				clone.Platforms[platform] = &cp
			}
			prepared[idx] = clone
		}(i)
	}
	wg.Wait()

	var diags []Diagnostic
	for _, d := range diagsPer {
		diags = append(diags, d...)
	}
	return prepared, diags
}

func (a *Analyzer) emptyReport() AlertReport {
	return AlertReport{
		Alerts:          []Alert{},
		Analytics:       emptyAnalytics(),
		Trends:          emptyTrends(),
		Recommendations: emptyRecommendations(),
		GeneratedAt:     a.now().UTC(),
	}
}
