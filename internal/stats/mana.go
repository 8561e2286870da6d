package stats

import (
	"regexp"
	"strings"

	"github.com/dvidal/manaforge/internal/storage/models"
)

// costSymbolRe matches colored cost symbols, including hybrid and
// Phyrexian forms like {U/R} and {G/P}.
var costSymbolRe = regexp.MustCompile(`\{([WUBRG])(?:/([WUBRG2P]))?\}`)

// CountCostColors counts colored symbols in a casting cost. Hybrid
// symbols with two colors count half toward each.
func CountCostColors(manaCost string) map[string]float64 {
	counts := make(map[string]float64)
	for _, m := range costSymbolRe.FindAllStringSubmatch(manaCost, -1) {
		c1, c2 := m[1], m[2]
		if c2 != "" && strings.Contains("WUBRG", c2) {
			counts[c1] += 0.5
			counts[c2] += 0.5
		} else {
			counts[c1]++
		}
	}
	return counts
}

var basicBySymbol = map[string]string{
	"ISLAND": "U", "MOUNTAIN": "R", "PLAINS": "W", "SWAMP": "B", "FOREST": "G",
}

// ColorsProduced returns the WUBRG colors a card provides as a mana
// source, restricted to the commander's color identity where the card
// is flexible (any-color rocks, fetches, identity lands). The empty
// string commanderCI means no identity restriction is known.
func ColorsProduced(card *models.Card, commanderCI string) map[string]bool {
	out := make(map[string]bool)
	ciHas := func(c string) bool { return strings.Contains(commanderCI, c) }

	// produced_mana covers lands and most rocks directly.
	produced := strings.ToUpper(card.ProducedMana)
	for _, c := range []string{"W", "U", "B", "R", "G"} {
		if strings.Contains(produced, c) {
			out[c] = true
		}
	}
	if len(out) > 0 {
		if commanderCI != "" {
			for c := range out {
				if !ciHas(c) {
					delete(out, c)
				}
			}
		}
		return out
	}

	oracle := card.OracleText + " " + card.FaceOracleTexts
	upper := strings.ToUpper(oracle)

	if strings.Contains(upper, "ADD ONE MANA OF ANY COLOR") {
		if commanderCI == "" {
			commanderCI = "WUBRG"
		}
		for _, c := range []string{"W", "U", "B", "R", "G"} {
			if strings.Contains(commanderCI, c) {
				out[c] = true
			}
		}
		return out
	}

	for _, c := range []string{"W", "U", "B", "R", "G"} {
		if strings.Contains(upper, "ADD {"+c+"}") {
			out[c] = true
		}
	}
	if len(out) > 0 {
		return out
	}

	// Command Tower and friends key off the commander's identity.
	if strings.Contains(upper, "COLOR IDENTITY") {
		for _, c := range []string{"W", "U", "B", "R", "G"} {
			if ciHas(c) {
				out[c] = true
			}
		}
		return out
	}

	// Fetch lands name the basic types they find.
	if strings.Contains(upper, "SEARCH YOUR LIBRARY") && strings.Contains(strings.ToLower(oracle), "land") {
		for token, color := range basicBySymbol {
			if strings.Contains(upper, token) {
				out[color] = true
			}
		}
	}

	// Off-identity fetch targets are dead colors in this deck.
	if commanderCI != "" {
		for c := range out {
			if !ciHas(c) {
				delete(out, c)
			}
		}
	}
	return out
}
