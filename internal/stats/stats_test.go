package stats

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/dvidal/manaforge/internal/deck"
	"github.com/dvidal/manaforge/internal/storage"
	"github.com/dvidal/manaforge/internal/storage/models"
)

func TestCountCostColors(t *testing.T) {
	tests := []struct {
		cost string
		want map[string]float64
	}{
		{"{2}{U}", map[string]float64{"U": 1}},
		{"{U}{U}", map[string]float64{"U": 2}},
		{"{1}{B}{B}{B}", map[string]float64{"B": 3}},
		{"{U/R}", map[string]float64{"U": 0.5, "R": 0.5}},
		{"{G/P}{G}", map[string]float64{"G": 2}},
		{"{X}{C}{2}", map[string]float64{}},
		{"", map[string]float64{}},
	}
	for _, tt := range tests {
		got := CountCostColors(tt.cost)
		if len(got) != len(tt.want) {
			t.Errorf("CountCostColors(%q) = %v, want %v", tt.cost, got, tt.want)
			continue
		}
		for c, n := range tt.want {
			if math.Abs(got[c]-n) > 1e-9 {
				t.Errorf("CountCostColors(%q)[%s] = %v, want %v", tt.cost, c, got[c], n)
			}
		}
	}
}

func TestColorsProduced(t *testing.T) {
	tests := []struct {
		name string
		card models.Card
		ci   string
		want []string
	}{
		{
			name: "produced mana column wins",
			card: models.Card{ProducedMana: "U, R"},
			ci:   "WUR",
			want: []string{"U", "R"},
		},
		{
			name: "produced mana restricted to identity",
			card: models.Card{ProducedMana: "W, U, B, R, G"},
			ci:   "UG",
			want: []string{"U", "G"},
		},
		{
			name: "any color rock takes identity",
			card: models.Card{OracleText: "{T}: Add one mana of any color."},
			ci:   "BR",
			want: []string{"B", "R"},
		},
		{
			name: "any color with no identity means all five",
			card: models.Card{OracleText: "{T}: Add one mana of any color."},
			ci:   "",
			want: []string{"W", "U", "B", "R", "G"},
		},
		{
			name: "explicit add symbols",
			card: models.Card{OracleText: "{T}: Add {G} or {W}."},
			ci:   "WUBRG",
			want: []string{"G", "W"},
		},
		{
			name: "identity land",
			card: models.Card{OracleText: "{T}: Add one mana of any color in your commander's color identity."},
			ci:   "UG",
			want: []string{"U", "G"},
		},
		{
			name: "fetch land names basics",
			card: models.Card{OracleText: "Search your library for an Island or Mountain card and put it onto the battlefield."},
			ci:   "UR",
			want: []string{"U", "R"},
		},
		{
			name: "off identity fetch targets dropped",
			card: models.Card{OracleText: "Search your library for a Plains or Swamp card, put it onto the battlefield tapped. Land"},
			ci:   "UG",
			want: []string{},
		},
		{
			name: "colorless source produces nothing",
			card: models.Card{OracleText: "{T}: Add {C}{C}.", ProducedMana: "C"},
			ci:   "UG",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorsProduced(&tt.card, tt.ci)
			if len(got) != len(tt.want) {
				t.Fatalf("ColorsProduced = %v, want %v", got, tt.want)
			}
			for _, c := range tt.want {
				if !got[c] {
					t.Errorf("ColorsProduced missing %s: %v", c, got)
				}
			}
		})
	}
}

func TestRulesetCategorize(t *testing.T) {
	rs := DefaultRuleset()
	if rs.Version != "v1" {
		t.Errorf("Version = %q, want v1", rs.Version)
	}

	tests := []struct {
		name   string
		oracle string
		want   []string
	}{
		{"ramp rock", "{T}: Add {G}.", []string{RoleRamp}},
		{"draw", "Whenever an opponent casts a spell, you may draw a card unless that player pays {1}.", []string{RoleCardDraw}},
		{"spot removal", "Destroy target creature.", []string{RoleRemoval}},
		{"wipe suppresses removal", "Destroy all creatures.", []string{RoleBoardWipe}},
		{"tutor", "Search your library for a card, put it into your hand, then shuffle.", []string{RoleTutor}},
		{"protection", "Creatures you control gain hexproof and indestructible until end of turn.", []string{RoleProtection}},
		{"vanilla", "Flying", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rs.Categorize(tt.oracle)
			if len(got) != len(tt.want) {
				t.Fatalf("Categorize = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Categorize = %v, want %v", got, tt.want)
				}
			}
		})
	}

	t.Run("custom ruleset version", func(t *testing.T) {
		custom := NewRuleset("v2-test", []Rule{
			{Role: "Landfall", Patterns: compileAll(`whenever a land you control enters`)},
		})
		got := custom.Categorize("Whenever a land you control enters, draw a card.")
		if len(got) != 1 || got[0] != "Landfall" {
			t.Errorf("custom Categorize = %v", got)
		}
	})
}

func TestPrimaryType(t *testing.T) {
	tests := []struct {
		typeLine string
		want     string
	}{
		{"Legendary Creature — Merfolk", "Creatures"},
		{"Artifact Creature — Golem", "Creatures"},
		{"Land — Island", "Lands"},
		{"Artifact Land", "Lands"},
		{"Instant", "Instants"},
		{"Sorcery", "Sorceries"},
		{"Legendary Enchantment", "Enchantments"},
		{"Artifact — Equipment", "Artifacts"},
		{"Legendary Planeswalker — Jace", "Planeswalkers"},
		{"Battle — Siege", "Battles"},
		{"", "Unknown"},
		{"Conspiracy", "Other"},
	}
	for _, tt := range tests {
		if got := PrimaryType(tt.typeLine); got != tt.want {
			t.Errorf("PrimaryType(%q) = %q, want %q", tt.typeLine, got, tt.want)
		}
	}
}

func seedStatsCards(t *testing.T, repo *storage.CardRepository) {
	t.Helper()
	ctx := context.Background()
	cards := []models.Card{
		{ID: "s1", Name: "Hakbal of the Surging Soul", ManaCost: "{2}{G}{U}", CMC: 4,
			TypeLine: "Legendary Creature — Merfolk Scout", ColorIdentity: "G, U",
			OracleText:     "At the beginning of combat on your turn, each Merfolk you control explores.",
			LegalCommander: "legal"},
		{ID: "s2", Name: "Sol Ring", ManaCost: "{1}", CMC: 1, TypeLine: "Artifact",
			OracleText: "{T}: Add {C}{C}.", ProducedMana: "C", LegalCommander: "legal"},
		{ID: "s3", Name: "Arcane Signet", ManaCost: "{2}", CMC: 2, TypeLine: "Artifact",
			OracleText:     "{T}: Add one mana of any color in your commander's color identity.",
			LegalCommander: "legal"},
		{ID: "s4", Name: "Island", TypeLine: "Basic Land — Island", ColorIdentity: "U",
			OracleText: "({T}: Add {U}.)", ProducedMana: "U", LegalCommander: "legal"},
		{ID: "s5", Name: "Forest", TypeLine: "Basic Land — Forest", ColorIdentity: "G",
			OracleText: "({T}: Add {G}.)", ProducedMana: "G", LegalCommander: "legal"},
		{ID: "s6", Name: "Counterspell", ManaCost: "{U}{U}", CMC: 2, TypeLine: "Instant",
			ColorIdentity: "U", OracleText: "Counter target spell.", LegalCommander: "legal"},
		{ID: "s7", Name: "Cultivate", ManaCost: "{2}{G}", CMC: 3, TypeLine: "Sorcery",
			ColorIdentity: "G",
			OracleText:    "Search your library for up to two basic land cards, reveal those cards, put one onto the battlefield tapped and the other into your hand, then shuffle.",
			LegalCommander: "legal"},
		{ID: "s8", Name: "Grave Pact", ManaCost: "{1}{B}{B}{B}", CMC: 4, TypeLine: "Enchantment",
			ColorIdentity: "B",
			OracleText:    "Whenever a creature you control dies, each other player sacrifices a creature.",
			LegalCommander: "legal"},
		{ID: "s9", Name: "Koma, Cosmos Serpent", ManaCost: "{3}{G}{G}{U}{U}", CMC: 7,
			TypeLine: "Legendary Creature — Serpent", ColorIdentity: "G, U",
			OracleText:     "This spell can't be countered.",
			LegalCommander: "legal"},
		{ID: "s10", Name: "Shahrazad", ManaCost: "{W}{W}", CMC: 2, TypeLine: "Sorcery",
			ColorIdentity: "W", OracleText: "Players play a Magic subgame.",
			LegalCommander: "banned"},
	}
	for i := range cards {
		if err := repo.Upsert(ctx, &cards[i]); err != nil {
			t.Fatal(err)
		}
	}
}

const statsDeck = `# Hakbal Test

| | |
|---|---|
| **Commander** | Hakbal of the Surging Soul |
| **Color Identity** | GU |
| **Date** | 2026-02-01 |

## Decklist

` + "```" + `
1 Hakbal of the Surging Soul
1 Sol Ring
1 Arcane Signet
1 Counterspell
1 Cultivate
1 Koma, Cosmos Serpent
1 Grave Pact
1 Shahrazad
2 Mystery Card
10 Island
8 Forest
` + "```" + `
`

func TestAnalyze(t *testing.T) {
	db := storage.NewTestDB(t)
	repo := storage.NewCardRepository(db)
	seedStatsCards(t, repo)

	d := deck.ParseMarkdown(statsDeck)
	report, err := NewAnalyzer(repo, nil).Analyze(context.Background(), d)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if report.DeckName != "Hakbal Test" {
		t.Errorf("DeckName = %q", report.DeckName)
	}
	if report.ColorIdentity != "UG" {
		t.Errorf("ColorIdentity = %q, want UG", report.ColorIdentity)
	}
	if report.Lands != 18 {
		t.Errorf("Lands = %d, want 18", report.Lands)
	}
	if report.Nonlands != 8 {
		t.Errorf("Nonlands = %d, want 8", report.Nonlands)
	}

	// Curve: Sol Ring 1, Signet+Counterspell+Shahrazad 2x3, Cultivate 3,
	// Hakbal+Grave Pact 4x2, Koma 7.
	wantCurve := map[int]int{1: 1, 2: 3, 3: 1, 4: 2, 7: 1}
	for mv, n := range wantCurve {
		if report.Curve[mv] != n {
			t.Errorf("Curve[%d] = %d, want %d", mv, report.Curve[mv], n)
		}
	}
	wantAvg := (1.0 + 2*3 + 3 + 4*2 + 7) / 8.0
	if math.Abs(report.AverageMV-wantAvg) > 1e-9 {
		t.Errorf("AverageMV = %v, want %v", report.AverageMV, wantAvg)
	}

	// Sources: 10 Island U, 8 Forest G, Arcane Signet U+G, Cultivate
	// fetches basics (land search, but names only generic "land cards")
	// so it contributes nothing; Sol Ring is colorless.
	if report.Sources["U"] != 11 {
		t.Errorf("Sources[U] = %d, want 11", report.Sources["U"])
	}
	if report.Sources["G"] != 9 {
		t.Errorf("Sources[G] = %d, want 9", report.Sources["G"])
	}
	if report.Sources["B"] != 0 {
		t.Errorf("Sources[B] = %d, want 0", report.Sources["B"])
	}

	// Cost symbols: Hakbal G+U, Counterspell UU, Cultivate G, Grave
	// Pact BBB, Koma GGUU, Shahrazad WW. W and B shown even though
	// off-identity; the report keeps raw counts.
	if report.CostSymbols["U"] != 1+2+2 {
		t.Errorf("CostSymbols[U] = %v, want 5", report.CostSymbols["U"])
	}
	if report.CostSymbols["G"] != 1+1+2 {
		t.Errorf("CostSymbols[G] = %v, want 4", report.CostSymbols["G"])
	}
	if report.CostSymbols["B"] != 3 {
		t.Errorf("CostSymbols[B] = %v, want 3", report.CostSymbols["B"])
	}

	if report.Types["Creatures"] != 2 || report.Types["Lands"] != 18 || report.Types["Unknown"] != 2 {
		t.Errorf("Types = %v", report.Types)
	}

	if report.Roles[RoleRamp] == 0 {
		t.Error("Roles missing Ramp for Sol Ring/Signet/Cultivate")
	}
	if report.Roles[RoleProtection] == 0 {
		t.Error("Roles missing Protection for Counterspell")
	}
	if report.RuleVersion != "v1" {
		t.Errorf("RuleVersion = %q", report.RuleVersion)
	}

	v := report.Validation
	if v.SizeOK {
		t.Error("SizeOK = true for a 28 card deck")
	}
	if v.TotalCards != 28 {
		t.Errorf("TotalCards = %d, want 28", v.TotalCards)
	}
	if len(v.Duplicates) != 1 || v.Duplicates[0].Name != "Mystery Card" {
		t.Errorf("Duplicates = %v, want Mystery Card only (basics exempt)", v.Duplicates)
	}
	if !v.CommanderResolved {
		t.Error("CommanderResolved = false")
	}
	if v.CommanderIdentity != "UG" {
		t.Errorf("CommanderIdentity = %q, want UG", v.CommanderIdentity)
	}
	// Grave Pact (B) and Shahrazad (W) are outside UG.
	if len(v.IdentityViolations) != 2 {
		t.Errorf("IdentityViolations = %v, want 2", v.IdentityViolations)
	}
	if len(v.Illegal) != 1 || v.Illegal[0].Name != "Shahrazad" {
		t.Errorf("Illegal = %v, want Shahrazad", v.Illegal)
	}
	if len(v.Unresolved) != 1 || v.Unresolved[0] != "Mystery Card" {
		t.Errorf("Unresolved = %v, want [Mystery Card]", v.Unresolved)
	}
	if v.OK() {
		t.Error("Validation.OK = true, want false")
	}

	out := report.Format()
	for _, want := range []string{"Deck Stats: Hakbal Test", "Mana Curve", "Singleton Check", "Shahrazad"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format output missing %q", want)
		}
	}
}

func TestAnalyzeUnresolvedCommanderSkipsIdentityCheck(t *testing.T) {
	db := storage.NewTestDB(t)
	repo := storage.NewCardRepository(db)
	seedStatsCards(t, repo)

	content := "# No Commander\n\n| | |\n|---|---|\n| **Commander** | Unknown Legend |\n\n## Decklist\n\n```\n1 Grave Pact\n1 Counterspell\n```\n"
	d := deck.ParseMarkdown(content)

	report, err := NewAnalyzer(repo, nil).Analyze(context.Background(), d)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	v := report.Validation
	if v.CommanderResolved {
		t.Error("CommanderResolved = true for unknown commander")
	}
	if len(v.IdentityViolations) != 0 {
		t.Errorf("IdentityViolations = %v, want none when commander unresolved", v.IdentityViolations)
	}
}
