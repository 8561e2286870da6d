package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/dvidal/manaforge/internal/storage"
	"github.com/dvidal/manaforge/internal/storage/models"
)

// seedDB creates a card database file with a few rows and returns its
// path.
func seedDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.db")
	cfg := storage.DefaultConfig(path)
	cfg.AutoMigrate = true
	db, err := storage.Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	repo := storage.NewCardRepository(db)
	rank := int64(30)
	cards := []models.Card{
		{
			ID: "c1", Name: "Rhystic Study", ManaCost: "{2}{U}", CMC: 3,
			TypeLine: "Enchantment", ColorIdentity: "U",
			OracleText:     "Whenever an opponent casts a spell, you may draw a card unless that player pays {1}.",
			LegalCommander: "legal", EDHRECRank: &rank,
		},
		{
			ID: "c2", Name: "Sol Ring", ManaCost: "{1}", CMC: 1,
			TypeLine: "Artifact", OracleText: "{T}: Add {C}{C}.",
			LegalCommander: "legal",
		},
	}
	for i := range cards {
		if err := repo.Upsert(context.Background(), &cards[i]); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

// newTestRoot builds the root command wired like main does, pointing
// config at a nonexistent file so defaults apply.
func newTestRoot(t *testing.T, dbPath string) *cobra.Command {
	t.Helper()
	root, app := NewRootCommand(VersionInfo{Version: "test", Commit: "none"})
	root.AddCommand(NewSearchCommand(app))
	root.AddCommand(NewLookupCommand(app))
	root.AddCommand(NewIdentityCommand(app))
	root.SetArgs(nil)
	root.PersistentFlags().Set("config", filepath.Join(t.TempDir(), "absent.toml"))
	if dbPath != "" {
		root.PersistentFlags().Set("db", dbPath)
	}
	return root
}

func TestSearchCommand(t *testing.T) {
	db := seedDB(t)

	root := newTestRoot(t, db)
	root.SetArgs([]string{"search", "--name", "rhystic"})
	if err := root.Execute(); err != nil {
		t.Errorf("search with a hit returned error: %v", err)
	}
}

func TestSearchCommandNoResults(t *testing.T) {
	db := seedDB(t)

	root := newTestRoot(t, db)
	root.SetArgs([]string{"search", "--name", "zzzz-no-such-card"})
	err := root.Execute()
	if !IsNoResults(err) {
		t.Errorf("empty search returned %v, want no-results sentinel", err)
	}
}

func TestSearchCommandConflictingFlags(t *testing.T) {
	db := seedDB(t)

	root := newTestRoot(t, db)
	root.SetArgs([]string{"search", "--game-changer", "--no-game-changer"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("err = %v", err)
	}
}

func TestLookupCommand(t *testing.T) {
	db := seedDB(t)

	root := newTestRoot(t, db)
	root.SetArgs([]string{"lookup", "sol", "ring"})
	if err := root.Execute(); err != nil {
		t.Errorf("lookup returned error: %v", err)
	}

	root = newTestRoot(t, db)
	root.SetArgs([]string{"lookup", "nothing-here"})
	if err := root.Execute(); !IsNoResults(err) {
		t.Errorf("miss returned %v, want no-results sentinel", err)
	}
}

func TestIdentityCommand(t *testing.T) {
	db := seedDB(t)

	// Colorless identity still finds Sol Ring.
	root := newTestRoot(t, db)
	root.SetArgs([]string{"identity", "C"})
	if err := root.Execute(); err != nil {
		t.Errorf("identity C returned error: %v", err)
	}
}

func TestOpenDBMissingFile(t *testing.T) {
	root := newTestRoot(t, filepath.Join(t.TempDir(), "missing.db"))
	root.SetArgs([]string{"lookup", "anything"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, want missing database message", err)
	}
}

func TestFormatCard(t *testing.T) {
	rank := int64(12)
	card := &models.Card{
		Name: "Atraxa, Praetors' Voice", ManaCost: "{G}{W}{U}{B}",
		TypeLine: "Legendary Creature - Phyrexian Angel Horror",
		Power:    "4", Toughness: "4",
		OracleText: "Flying, vigilance, deathtouch, lifelink",
		EDHRECRank: &rank, GameChanger: true,
	}

	line := formatCard(card, false)
	for _, want := range []string{"Atraxa", "{G}{W}{U}{B}", "[4/4]", "(EDHREC #12)", "[game changer]"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	if strings.Contains(line, "Flying") {
		t.Error("non-verbose output should omit oracle text")
	}

	if v := formatCard(card, true); !strings.Contains(v, "    Flying") {
		t.Errorf("verbose output missing indented oracle text: %q", v)
	}
}

func TestFormatFullCard(t *testing.T) {
	price := 3.5
	card := &models.Card{
		Name: "Bruna, the Fading Light // Brisela, Voice of Nightmares",
		ManaCost: "{5}{W}{W}", CMC: 7,
		TypeLine:        "Legendary Creature - Angel Horror",
		Colors:          "W", ColorIdentity: "W",
		FaceNames:       "Bruna, the Fading Light,Brisela, Voice of Nightmares",
		FaceManaCosts:   "{5}{W}{W},",
		FaceTypeLines:   "Legendary Creature - Angel Horror,Legendary Creature - Eldrazi Angel",
		FaceOracleTexts: "When you cast this spell, return target Angel.;;Flying, first strike",
		SetName:         "Eldritch Moon", Rarity: "rare",
		LegalCommander:  "legal", LegalModern: "not_legal",
		PriceUSD:        &price,
	}

	out := formatFullCard(card)
	for _, want := range []string{
		"-- Card Faces --",
		"Face 1: Bruna, the Fading Light",
		"Face 2: Brisela, Voice of Nightmares",
		"Flying, first strike",
		"Set:            Eldritch Moon (rare)",
		"Price:          $3.50",
		"Commander    Legal",
		"Modern       Not Legal",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}
