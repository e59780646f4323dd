package monitor

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCategoryID is the fallback bucket for keywords no category claims.
const DefaultCategoryID = "uncategorized"

// CategorySponsorshipIndicators marks explicit advertising-disclosure terms.
// A match in this category counts as a disclosure for compliance purposes.
const CategorySponsorshipIndicators = "sponsorship_indicators"

// riskCategories are the category identifiers that feed the risk score.
var riskCategories = map[string]struct{}{
	"betting_sites":       {},
	"brazilian_games":     {},
	"skin_gambling":       {},
	"online_casinos":      {},
	"predatory_mechanics": {},
}

// Category groups related sponsor keywords under one severity tier with the
// legal-concern and minor-impact texts carried onto alerts.
type Category struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Severity     int      `yaml:"severity"`
	Keywords     []string `yaml:"keywords"`
	LegalConcern string   `yaml:"legal_concern"`
	MinorImpact  string   `yaml:"minor_impact"`
}

// IsRisk reports whether the category contributes to the risk score.
func (c Category) IsRisk() bool {
	_, ok := riskCategories[c.ID]
	return ok
}

// Taxonomy is the immutable keyword table. It is built once at startup and
// safe for unlimited concurrent readers.
type Taxonomy struct {
	categories []Category
	byID       map[string]int
}

// NewTaxonomy validates and normalizes the category list. Keyword lists are
// lowercased at load time; a default category is appended when missing.
func NewTaxonomy(categories []Category) (*Taxonomy, error) {
	if len(categories) == 0 {
		return nil, errors.New("taxonomy requires at least one category")
	}

	t := &Taxonomy{byID: make(map[string]int, len(categories)+1)}
	for _, cat := range categories {
		if cat.ID == "" {
			return nil, errors.New("taxonomy category without id")
		}
		if _, dup := t.byID[cat.ID]; dup {
			return nil, fmt.Errorf("duplicate taxonomy category %q", cat.ID)
		}
		if cat.Severity < 1 || cat.Severity > 3 {
			return nil, fmt.Errorf("category %q: severity %d out of range", cat.ID, cat.Severity)
		}
		normalized := make([]string, 0, len(cat.Keywords))
		for _, kw := range cat.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			normalized = append(normalized, kw)
		}
		cat.Keywords = normalized
		t.byID[cat.ID] = len(t.categories)
		t.categories = append(t.categories, cat)
	}

	if _, ok := t.byID[DefaultCategoryID]; !ok {
		t.byID[DefaultCategoryID] = len(t.categories)
		t.categories = append(t.categories, defaultCategory())
	}

	return t, nil
}

func defaultCategory() Category {
	return Category{
		ID:           DefaultCategoryID,
		Name:         "General Sponsorship",
		Severity:     1,
		LegalConcern: "Low",
		MinorImpact:  "Low",
	}
}

// Categories returns the category table in declaration order.
func (t *Taxonomy) Categories() []Category {
	return t.categories
}

// Category looks up a category by identifier.
func (t *Taxonomy) Category(id string) (Category, bool) {
	idx, ok := t.byID[id]
	if !ok {
		return Category{}, false
	}
	return t.categories[idx], true
}

// Default returns the fallback category.
func (t *Taxonomy) Default() Category {
	cat, _ := t.Category(DefaultCategoryID)
	return cat
}

// Categorize returns the first category, in declaration order, one of whose
// keywords is contained in the given keyword. Matching is case-insensitive
// substring containment; ties go to declaration order. The default category
// is returned when nothing matches.
func (t *Taxonomy) Categorize(keyword string) Category {
	keyword = strings.ToLower(keyword)
	if keyword == "" {
		return t.Default()
	}
	for _, cat := range t.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(keyword, kw) {
				return cat
			}
		}
	}
	return t.Default()
}

// taxonomyFile is the YAML shape accepted by LoadTaxonomy.
type taxonomyFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadTaxonomy reads a category table from a YAML file.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}
	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode taxonomy %s: %w", path, err)
	}
	tax, err := NewTaxonomy(file.Categories)
	if err != nil {
		return nil, fmt.Errorf("taxonomy %s: %w", path, err)
	}
	return tax, nil
}

// DefaultTaxonomy returns the built-in category table. Site-name categories
// are declared before generic-term categories so brand keywords never fall
// into a broader bucket.
func DefaultTaxonomy() *Taxonomy {
	tax, err := NewTaxonomy([]Category{
		{
			ID:       "betting_sites",
			Name:     "Betting Houses",
			Severity: 3,
			Keywords: []string{
				"bet365", "betway", "rivalry", "betano", "sportingbet", "1xbet",
				"pinnacle", "betfair", "unibet", "bet nacional", "pixbet",
				"stake", "bc.game", "roobet", "betsson", "betwinner", "melbet",
				"22bet", "parimatch", "betmotion", "bodog",
			},
			LegalConcern: "High - Law 14.790/23",
			MinorImpact:  "Critical",
		},
		{
			ID:       "online_casinos",
			Name:     "Online Casinos",
			Severity: 3,
			Keywords: []string{
				"blaze", "f12bet", "estrela bet", "kto", "galera bet",
				"novibet", "apostaganha", "vaidebet", "casino", "cassino",
				"slots", "caça níquel",
			},
			LegalConcern: "High - Law 14.790/23",
			MinorImpact:  "Critical",
		},
		{
			ID:       "brazilian_games",
			Name:     "Brazilian Gambling Games",
			Severity: 3,
			Keywords: []string{
				"jogo do tigrinho", "tigrinho", "fortune tiger", "spaceman",
				"aviator", "mines", "plinko", "roleta", "blackjack",
				"baccarat", "dragon tiger", "crazy time", "fortune ox",
				"fortune rabbit", "fortune mouse",
			},
			LegalConcern: "High - Specific appeal to minors",
			MinorImpact:  "Extreme",
		},
		{
			ID:       "skin_gambling",
			Name:     "Skin Gambling",
			Severity: 3,
			Keywords: []string{
				"csgolive", "skinclub", "hellcase", "gamdom", "csgoroll",
				"csgo500", "daddyskins", "skinbaron", "rollbit", "duelbits",
				"skin betting", "trade skins", "sell skins", "buy skins",
				"loot box", "lootbox", "mystery box", "caixa misteriosa",
				"caixa surpresa", "case opening", "open cases", "case battle",
				"abrir caixas", "abrindo caixas", "abertura de caixas",
				"gacha", "random drop", "raspadinha", "sorteio de skin",
				"rifa de skin",
			},
			LegalConcern: "High - Legal gray area",
			MinorImpact:  "Critical",
		},
		{
			ID:       "crypto_betting",
			Name:     "Crypto Betting",
			Severity: 2,
			Keywords: []string{
				"bitcoin bet", "crypto bet", "btc bet", "eth bet",
				"cripto aposta", "aposta crypto", "blockchain bet",
			},
			LegalConcern: "Medium - Unregulated assets",
			MinorImpact:  "Medium",
		},
		{
			ID:       "predatory_mechanics",
			Name:     "Predatory Mechanics",
			Severity: 3,
			Keywords: []string{
				"limited time", "tempo limitado", "oferta limitada",
				"última chance", "last chance", "apenas hoje", "only today",
				"act now", "não perca", "exclusive offer", "oferta exclusiva",
				"you deserve", "você merece", "one more try",
				"mais uma tentativa", "quase ganhou", "almost won",
			},
			LegalConcern: "High - Abusive commercial practices",
			MinorImpact:  "High",
		},
		{
			ID:       "betting_terms",
			Name:     "Betting Terms",
			Severity: 2,
			Keywords: []string{
				"aposta", "casa de aposta", "site de aposta", "odds",
				"palpite", "prognóstico", "cash out", "bankroll", "freebet",
			},
			LegalConcern: "Medium - Context dependent",
			MinorImpact:  "Medium",
		},
		{
			ID:       "promo_indicators",
			Name:     "Promotional Codes",
			Severity: 2,
			Keywords: []string{
				"código promocional", "use o código", "digite o código",
				"cupom", "bônus", "cashback", "rodadas grátis",
				"giros grátis", "!code", "!cupom", "!promo",
			},
			LegalConcern: "Medium - Lacks transparency",
			MinorImpact:  "Medium",
		},
		{
			ID:       CategorySponsorshipIndicators,
			Name:     "Sponsorship Disclosure",
			Severity: 1,
			Keywords: []string{
				"#publi", "#publicidade", "#ad", "#sponsored", "#partnership",
				"parceria", "patrocínio", "colaboração", "apoiado por",
				"patrocinador",
			},
			LegalConcern: "Low",
			MinorImpact:  "Low",
		},
		{
			ID:       "risk_terms",
			Name:     "Responsible Gaming Terms",
			Severity: 1,
			Keywords: []string{
				"maior de idade", "+18", "jogue com responsabilidade",
				"pode causar dependência",
			},
			LegalConcern: "Low",
			MinorImpact:  "Low",
		},
	})
	if err != nil {
		// The built-in table is validated by tests; reaching this is a bug.
		panic(err)
	}
	return tax
}
