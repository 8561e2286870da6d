package storage

import (
	"testing"

	"github.com/dvidal/manaforge/internal/storage/models"
)

// setupTestDB creates a migrated database in a temporary directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	return NewTestDB(t)
}

// insertTestCard inserts a card row, mapping nil pointer fields to NULL.
func insertTestCard(t *testing.T, db *DB, c models.Card) {
	t.Helper()

	var price, rank any
	if c.PriceUSD != nil {
		price = *c.PriceUSD
	}
	if c.EDHRECRank != nil {
		rank = *c.EDHRECRank
	}
	gameChanger := 0
	if c.GameChanger {
		gameChanger = 1
	}

	_, err := db.conn.Exec(`INSERT INTO cards (
		"id", "name", "mana_cost", "cmc", "type_line", "oracle_text",
		"face_names", "face_mana_costs", "face_type_lines", "face_oracle_texts",
		"power", "toughness", "loyalty", "defense",
		"colors", "color_identity", "produced_mana", "keywords", "mechanic_tags",
		"rarity", "set", "set_name", "released_at",
		"price_usd", "edhrec_rank", "game_changer",
		"legal_commander", "legal_vintage", "legal_legacy", "legal_modern", "legal_pauper",
		"image_normal", "scryfall_uri"
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		c.ID, c.Name, c.ManaCost, c.CMC, c.TypeLine, c.OracleText,
		c.FaceNames, c.FaceManaCosts, c.FaceTypeLines, c.FaceOracleTexts,
		c.Power, c.Toughness, c.Loyalty, c.Defense,
		c.Colors, c.ColorIdentity, c.ProducedMana, c.Keywords, c.MechanicTags,
		c.Rarity, c.SetCode, c.SetName, c.ReleasedAt,
		price, rank, gameChanger,
		c.LegalCommander, c.LegalVintage, c.LegalLegacy, c.LegalModern, c.LegalPauper,
		c.ImageNormal, c.ScryfallURI,
	)
	if err != nil {
		t.Fatalf("Failed to insert test card %q: %v", c.Name, err)
	}
}

func intPtr(v int64) *int64        { return &v }
func floatPtr(v float64) *float64  { return &v }
func strPtr(v string) *string      { return &v }
func boolPtr(v bool) *bool         { return &v }
