// Package deck parses and writes local Commander decklists. A deck is
// a markdown file with a title heading, a metadata table, and the card
// list in a fenced code block, or a plain text file of "N Card Name"
// lines.
package deck

import (
	"strings"
)

// Entry is one line of a decklist.
type Entry struct {
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

// Deck is a parsed local decklist.
type Deck struct {
	// Path is the file the deck was read from, when applicable.
	Path string `json:"path,omitempty"`

	// Title is the first markdown heading, or empty for plain text.
	Title string `json:"title,omitempty"`

	// Metadata holds the markdown table rows keyed by lowercased key.
	Metadata map[string]string `json:"metadata,omitempty"`

	Cards []Entry `json:"cards"`
}

// TotalCards returns the summed quantity across all entries.
func (d *Deck) TotalCards() int {
	total := 0
	for _, e := range d.Cards {
		total += e.Quantity
	}
	return total
}

// Commander returns the commander named in the metadata table.
func (d *Deck) Commander() string {
	return d.Metadata["commander"]
}

// ColorIdentity returns the color identity named in the metadata table.
func (d *Deck) ColorIdentity() string {
	return d.Metadata["color identity"]
}

// Name returns the deck title, falling back to the given default.
func (d *Deck) Name(fallback string) string {
	if d.Title != "" {
		return d.Title
	}
	return fallback
}

// Counts returns quantities keyed by lowercased card name, merging
// duplicate entries.
func (d *Deck) Counts() map[string]int {
	counts := make(map[string]int, len(d.Cards))
	for _, e := range d.Cards {
		counts[strings.ToLower(e.Name)] += e.Quantity
	}
	return counts
}
