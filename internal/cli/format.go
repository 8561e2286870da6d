package cli

import (
	"fmt"
	"strings"

	"github.com/dvidal/manaforge/internal/storage/models"
)

// formatCard renders a one-line card summary, optionally followed by
// indented oracle text.
func formatCard(c *models.Card, verbose bool) string {
	var b strings.Builder
	b.WriteString(c.Name)
	if c.ManaCost != "" {
		b.WriteString("  " + c.ManaCost)
	}
	b.WriteString("  - " + c.TypeLine)
	if c.Power != "" && c.Toughness != "" {
		fmt.Fprintf(&b, " [%s/%s]", c.Power, c.Toughness)
	}
	if c.Loyalty != "" {
		fmt.Fprintf(&b, " [Loyalty: %s]", c.Loyalty)
	}
	if c.EDHRECRank != nil {
		fmt.Fprintf(&b, "  (EDHREC #%d)", *c.EDHRECRank)
	}
	if c.GameChanger {
		b.WriteString("  [game changer]")
	}

	if verbose {
		oracle := c.OracleText
		if oracle == "" {
			oracle = c.FaceOracleTexts
		}
		if oracle != "" {
			b.WriteString("\n" + indent(oracle, "    "))
		}
	}
	return b.String()
}

// formatFullCard renders the lookup detail view.
func formatFullCard(c *models.Card) string {
	sep := strings.Repeat("=", max(60, len(c.Name)+len(c.ManaCost)+5))
	var lines []string
	lines = append(lines, sep, fmt.Sprintf("  %s  %s", c.Name, c.ManaCost), sep, "")
	lines = append(lines, fmt.Sprintf("  Type:           %s", c.TypeLine))
	if c.Power != "" && c.Toughness != "" {
		lines = append(lines, fmt.Sprintf("  Power/Tough:    %s/%s", c.Power, c.Toughness))
	}
	if c.Loyalty != "" {
		lines = append(lines, fmt.Sprintf("  Loyalty:        %s", c.Loyalty))
	}
	if c.Defense != "" {
		lines = append(lines, fmt.Sprintf("  Defense:        %s", c.Defense))
	}
	lines = append(lines, fmt.Sprintf("  Mana Value:     %g", c.CMC))
	lines = append(lines, fmt.Sprintf("  Colors:         %s", orColorless(c.Colors)))
	lines = append(lines, fmt.Sprintf("  Color Identity: %s", orColorless(c.ColorIdentity)), "")

	if c.OracleText != "" {
		lines = append(lines, "  Oracle Text:", indent(c.OracleText, "    "), "")
	}

	// Multi-face cards carry parallel comma-joined face columns.
	if strings.Contains(c.FaceNames, ",") {
		lines = append(lines, "  -- Card Faces --")
		names := strings.Split(c.FaceNames, ",")
		costs := strings.Split(c.FaceManaCosts, ",")
		types := strings.Split(c.FaceTypeLines, ",")
		texts := strings.Split(c.FaceOracleTexts, ";;")
		for i, fn := range names {
			lines = append(lines, fmt.Sprintf("  Face %d: %s  %s", i+1, strings.TrimSpace(fn), nth(costs, i)))
			lines = append(lines, fmt.Sprintf("    Type: %s", nth(types, i)))
			if t := nth(texts, i); t != "" {
				lines = append(lines, indent(t, "      "))
			}
			lines = append(lines, "")
		}
	}

	if c.Keywords != "" {
		lines = append(lines, fmt.Sprintf("  Keywords:       %s", c.Keywords))
	}
	if c.MechanicTags != "" {
		lines = append(lines, fmt.Sprintf("  Mechanic Tags:  %s", c.MechanicTags))
	}
	if c.GameChanger {
		lines = append(lines, "  Game Changer:   Yes")
	}
	lines = append(lines, fmt.Sprintf("  Set:            %s (%s)", c.SetName, c.Rarity))
	if c.EDHRECRank != nil {
		lines = append(lines, fmt.Sprintf("  EDHREC Rank:    #%d", *c.EDHRECRank))
	}
	if c.PriceUSD != nil {
		lines = append(lines, fmt.Sprintf("  Price:          $%.2f", *c.PriceUSD))
	}

	lines = append(lines, "", "  Format Legality:")
	for _, f := range []struct{ name, value string }{
		{"Commander", c.LegalCommander},
		{"Vintage", c.LegalVintage},
		{"Legacy", c.LegalLegacy},
		{"Modern", c.LegalModern},
	} {
		lines = append(lines, fmt.Sprintf("    %-12s %s", f.name, legalityLabel(f.value)))
	}

	if c.ScryfallURI != "" {
		lines = append(lines, "", fmt.Sprintf("  Scryfall:       %s", c.ScryfallURI))
	}
	lines = append(lines, sep)
	return strings.Join(lines, "\n")
}

func legalityLabel(value string) string {
	if value == "legal" {
		return "Legal"
	}
	if value == "" {
		return "Unknown"
	}
	words := strings.Fields(strings.ReplaceAll(value, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func orColorless(s string) string {
	if s == "" {
		return "Colorless"
	}
	return s
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

func nth(parts []string, i int) string {
	if i < len(parts) {
		return strings.TrimSpace(parts[i])
	}
	return ""
}
