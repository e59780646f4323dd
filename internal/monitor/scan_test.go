package monitor

import (
	"reflect"
	"strings"
	"testing"
)

func TestScanRecordsAllMatches(t *testing.T) {
	tax := DefaultTaxonomy()
	items := []ContentItem{
		{
			Platform:    PlatformYouTube,
			ID:          "v1",
			Title:       "Abrindo caixas ao vivo",
			Description: "Case opening patrocinado pela bet365",
		},
		{
			Platform:    PlatformYouTube,
			ID:          "v2",
			Title:       "Treino do dia",
			Description: "Sem nada de especial",
		},
	}

	evidence := Scan(items, tax)
	if len(evidence) != 1 {
		t.Fatalf("expected 1 evidence entry, got %d", len(evidence))
	}
	if evidence[0].Content.ID != "v1" {
		t.Fatalf("expected evidence for v1, got %s", evidence[0].Content.ID)
	}

	keywords := make(map[string]string)
	for _, m := range evidence[0].Matches {
		keywords[m.Keyword] = m.CategoryID
	}
	if keywords["bet365"] != "betting_sites" {
		t.Errorf("bet365 should match betting_sites, got %q", keywords["bet365"])
	}
	if keywords["case opening"] != "skin_gambling" {
		t.Errorf("case opening should match skin_gambling, got %q", keywords["case opening"])
	}
	if keywords["abrindo caixas"] != "skin_gambling" {
		t.Errorf("abrindo caixas should match skin_gambling, got %q", keywords["abrindo caixas"])
	}
}

func TestScanIsDeterministic(t *testing.T) {
	tax := DefaultTaxonomy()
	items := SampleAthletes()[0].Platforms[PlatformYouTube].Items

	first := Scan(items, tax)
	second := Scan(items, tax)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated scans over identical input should be identical")
	}
}

func TestExtractContextClampsToBounds(t *testing.T) {
	text := "bet365 apresenta o treino"
	ctx := extractContext(text, "bet365")
	if !strings.HasPrefix(ctx, "bet365") {
		t.Fatalf("context should start at text beginning, got %q", ctx)
	}

	long := strings.Repeat("a", 100) + " bet365 " + strings.Repeat("b", 100)
	ctx = extractContext(long, "bet365")
	want := 30 + len("bet365") + 30
	if len(ctx) != want {
		t.Fatalf("expected context of %d chars, got %d", want, len(ctx))
	}

	if got := extractContext("nothing here", "bet365"); got != "" {
		t.Fatalf("expected empty context for absent keyword, got %q", got)
	}
}

func TestDetectPromoPatterns(t *testing.T) {
	items := []ContentItem{
		{Title: "Live especial", Description: "use o código FALLEN10 agora"},
		{Title: "Sorteio", Description: "cupom: ABC123 e comando !promo10"},
		{Title: "Nada aqui", Description: "conteúdo comum"},
	}

	found := DetectPromoPatterns(items)
	if len(found) != 3 {
		t.Fatalf("expected 3 promo matches, got %d: %v", len(found), found)
	}

	joined := strings.Join(found, "|")
	for _, frag := range []string{"código FALLEN10", "cupom: ABC123", "!promo10"} {
		if !strings.Contains(joined, frag) {
			t.Errorf("expected match containing %q in %v", frag, found)
		}
	}
}

func TestDetectPromoPatternsPreservesDuplicates(t *testing.T) {
	items := []ContentItem{
		{Title: "cupom: AAA111", Description: "cupom: AAA111 de novo"},
	}

	found := DetectPromoPatterns(items)
	if len(found) != 2 {
		t.Fatalf("duplicate promo matches should be preserved, got %d", len(found))
	}
}
