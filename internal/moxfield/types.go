package moxfield

import "strings"

// DeckSummary is one entry of a user's deck listing.
type DeckSummary struct {
	ID       string `json:"id"`
	PublicID string `json:"publicId"`
	Name     string `json:"name"`
	Format   string `json:"format"`
}

// deckListResponse wraps the paginated deck listing.
type deckListResponse struct {
	Data []DeckSummary `json:"data"`
}

// CardRef identifies a printing inside a board entry.
type CardRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BoardEntry is one card with quantity in a board.
type BoardEntry struct {
	Quantity int     `json:"quantity"`
	Card     CardRef `json:"card"`
}

// Board holds the cards of a single zone, keyed by an opaque entry id.
type Board struct {
	Cards map[string]BoardEntry `json:"cards"`
}

// Deck is the full deck object.
type Deck struct {
	ID            string           `json:"id"`
	PublicID      string           `json:"publicId"`
	Name          string           `json:"name"`
	Format        string           `json:"format"`
	Version       int              `json:"version"`
	ColorIdentity []string         `json:"colorIdentity"`
	Boards        map[string]Board `json:"boards"`
}

// BoardLines returns the "N Card Name" lines for a named board.
func (d *Deck) BoardLines(board string) []string {
	b, ok := d.Boards[board]
	if !ok {
		return nil
	}
	var lines []string
	for _, entry := range b.Cards {
		lines = append(lines, formatLine(entry.Quantity, entry.Card.Name))
	}
	return lines
}

// Counts returns quantities keyed by lowercased card name across the
// given boards.
func (d *Deck) Counts(boards ...string) map[string]int {
	counts := make(map[string]int)
	for _, name := range boards {
		b, ok := d.Boards[name]
		if !ok {
			continue
		}
		for _, entry := range b.Cards {
			counts[strings.ToLower(entry.Card.Name)] += entry.Quantity
		}
	}
	return counts
}
