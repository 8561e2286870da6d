// Package export renders a full decklist with card text for pasting
// into an LLM context window.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dvidal/manaforge/internal/deck"
	"github.com/dvidal/manaforge/internal/storage"
	"github.com/dvidal/manaforge/internal/storage/models"
)

// longLineThreshold splits the oracle text onto its own line so the
// output stays readable in a chat window.
const longLineThreshold = 200

// Exporter renders decks against the card database.
type Exporter struct {
	repo *storage.CardRepository
}

func New(repo *storage.CardRepository) *Exporter {
	return &Exporter{repo: repo}
}

// entry is one unique card with its aggregated count.
type entry struct {
	name  string
	count int
}

// aggregate merges duplicate lines, preserving first-appearance order.
func aggregate(d *deck.Deck) []entry {
	index := make(map[string]int)
	var out []entry
	for _, c := range d.Cards {
		if i, ok := index[c.Name]; ok {
			out[i].count += c.Quantity
			continue
		}
		index[c.Name] = len(out)
		out = append(out, entry{name: c.Name, count: c.Quantity})
	}
	return out
}

// FullDeck renders every card in the deck as one line each:
//
//	Nx Card Name (mana_cost) [Keywords: flying, reach]: oracle text
//
// Cards missing from the database are kept with a "(not in database)"
// note so the reader sees the whole list.
func (e *Exporter) FullDeck(ctx context.Context, d *deck.Deck) (string, error) {
	entries := aggregate(d)
	if len(entries) == 0 {
		return "", errors.New("no card lines found in decklist")
	}

	var b strings.Builder
	b.WriteString("FULL DECK (cost + keywords + oracle text for LLM context)\n---\n")
	for _, en := range entries {
		card, err := e.repo.GetByName(ctx, en.name)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("failed to look up %q: %w", en.name, err)
		}
		b.WriteString(formatEntry(en, card))
	}
	return b.String(), nil
}

func formatEntry(en entry, card *models.Card) string {
	cost := "-"
	keywords := ""
	oracle := "(not in database)"
	if card != nil {
		if c := strings.TrimSpace(card.ManaCost); c != "" {
			cost = c
		}
		keywords = strings.TrimSpace(card.Keywords)
		oracle = oracleText(card)
	}

	kwPart := ""
	if keywords != "" {
		kwPart = fmt.Sprintf(" [Keywords: %s]", keywords)
	}
	head := fmt.Sprintf("%dx %s (%s)%s:", en.count, en.name, cost, kwPart)
	line := head + " " + oracle
	if len(line) > longLineThreshold {
		return head + "\n  " + oracle + "\n"
	}
	return line + "\n"
}

// oracleText joins the main oracle text with any face texts.
func oracleText(card *models.Card) string {
	main := strings.TrimSpace(card.OracleText)
	face := strings.TrimSpace(card.FaceOracleTexts)
	if face != "" {
		face = strings.ReplaceAll(face, ";;", " // ")
		var parts []string
		for _, p := range strings.Split(face, " // ") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 0 {
			joined := strings.Join(parts, " // ")
			if main != "" {
				return main + " // " + joined
			}
			return joined
		}
	}
	if main == "" {
		return "(no oracle text)"
	}
	return main
}
