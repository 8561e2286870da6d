package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dvidal/manaforge/internal/storage/models"
)

// importColumns are the CSV headers the importer understands, in
// insert order. Unknown CSV columns are ignored.
var importColumns = []string{
	"id", "name", "mana_cost", "cmc", "type_line", "oracle_text",
	"face_names", "face_mana_costs", "face_type_lines", "face_oracle_texts",
	"power", "toughness", "loyalty", "defense",
	"colors", "color_identity", "produced_mana", "keywords", "mechanic_tags",
	"rarity", "set", "set_name", "released_at",
	"price_usd", "edhrec_rank", "game_changer",
	"legal_commander", "legal_vintage", "legal_legacy", "legal_modern", "legal_pauper",
	"image_normal", "scryfall_uri",
}

var realColumns = map[string]bool{"cmc": true, "price_usd": true}
var intColumns = map[string]bool{"edhrec_rank": true, "game_changer": true}

// Upsert inserts or replaces a card row. Intended for the importer and
// for seeding test databases.
func (r *CardRepository) Upsert(ctx context.Context, c *models.Card) error {
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
	_, err := r.db.conn.ExecContext(ctx, `INSERT OR REPLACE INTO cards (
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
		return fmt.Errorf("failed to upsert card %q: %w", c.Name, err)
	}
	return nil
}

// ImportCSV loads a Scryfall export into the cards table, replacing
// rows with matching IDs. Unknown CSV columns are ignored and missing
// ones insert as NULL. Returns the number of rows imported.
func ImportCSV(ctx context.Context, db *DB, reader io.Reader) (int, error) {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	if _, ok := index["id"]; !ok {
		return 0, fmt.Errorf("CSV has no id column")
	}
	if _, ok := index["name"]; !ok {
		return 0, fmt.Errorf("CSV has no name column")
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	var placeholders, quoted []string
	for _, col := range importColumns {
		placeholders = append(placeholders, "?")
		quoted = append(quoted, `"`+col+`"`)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT OR REPLACE INTO cards (%s) VALUES (%s)",
		strings.Join(quoted, ", "), strings.Join(placeholders, ", ")))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare import statement: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read CSV row %d: %w", count+1, err)
		}
		values := make([]any, len(importColumns))
		for i, col := range importColumns {
			pos, ok := index[col]
			if !ok || pos >= len(record) || record[pos] == "" {
				continue
			}
			raw := record[pos]
			switch {
			case realColumns[col]:
				if f, err := strconv.ParseFloat(raw, 64); err == nil {
					values[i] = f
				}
			case intColumns[col]:
				if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
					values[i] = n
				} else if raw == "True" || raw == "true" {
					values[i] = int64(1)
				} else if raw == "False" || raw == "false" {
					values[i] = int64(0)
				}
			default:
				values[i] = raw
			}
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return count, fmt.Errorf("failed to import row %d: %w", count+1, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return count, fmt.Errorf("failed to commit import: %w", err)
	}
	return count, nil
}
