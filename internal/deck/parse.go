package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	titleRe    = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	metaRowRe  = regexp.MustCompile(`\|\s*\*\*(.+?)\*\*\s*\|\s*(.+?)\s*\|`)
	fenceRe    = regexp.MustCompile("(?s)```[^\n]*\n(.*?)```")
	cardLineRe = regexp.MustCompile(`^(\d+)\s+(.+)$`)
)

// ParseFile reads and parses a decklist. Files ending in .md are parsed
// as markdown; anything else as plain text.
func ParseFile(path string) (*Deck, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read decklist: %w", err)
	}
	var d *Deck
	if strings.EqualFold(filepath.Ext(path), ".md") {
		d = ParseMarkdown(string(content))
	} else {
		d = ParseText(string(content))
	}
	d.Path = path
	return d, nil
}

// ParseMarkdown parses a markdown deck file: the H1 title, the
// `| **Key** | Value |` metadata rows, and card lines from the first
// fenced code block that contains any.
func ParseMarkdown(content string) *Deck {
	d := &Deck{Metadata: make(map[string]string)}

	if m := titleRe.FindStringSubmatch(content); m != nil {
		d.Title = strings.TrimSpace(m[1])
		d.Metadata["deck"] = d.Title
	}

	for _, m := range metaRowRe.FindAllStringSubmatch(content, -1) {
		key := strings.ToLower(strings.TrimSpace(m[1]))
		d.Metadata[key] = strings.TrimSpace(m[2])
	}

	for _, fence := range fenceRe.FindAllStringSubmatch(content, -1) {
		var cards []Entry
		for _, line := range strings.Split(strings.TrimSpace(fence[1]), "\n") {
			if e, ok := parseCardLine(line); ok {
				cards = append(cards, e)
			}
		}
		if len(cards) > 0 {
			d.Cards = cards
			break
		}
	}
	return d
}

// ParseText parses a plain text decklist. Blank lines and lines
// starting with // or # are skipped.
func ParseText(content string) *Deck {
	d := &Deck{Metadata: make(map[string]string)}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}
		if e, ok := parseCardLine(line); ok {
			d.Cards = append(d.Cards, e)
		}
	}
	return d
}

func parseCardLine(line string) (Entry, bool) {
	m := cardLineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Entry{}, false
	}
	qty, err := strconv.Atoi(m[1])
	if err != nil {
		return Entry{}, false
	}
	return Entry{Quantity: qty, Name: strings.TrimSpace(m[2])}, true
}
