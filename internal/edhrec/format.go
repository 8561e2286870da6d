package edhrec

import (
	"fmt"
	"strings"
)

// FormatCardView renders one cardview as a numbered line:
//
//	  1. Sol Ring  (48211 decks, 84%)  [synergy: +12%]
func FormatCardView(cv CardView, idx int) string {
	parts := []string{fmt.Sprintf("%3d. %s", idx, cv.Name)}
	if cv.PotentialDecks > 0 {
		parts = append(parts, fmt.Sprintf("(%d decks, %.0f%%)", cv.NumDecks, cv.InclusionPercent()))
	} else if cv.NumDecks > 0 {
		parts = append(parts, fmt.Sprintf("(%d decks)", cv.NumDecks))
	}
	if cv.Synergy != nil {
		pct := *cv.Synergy
		if pct >= -1 && pct <= 1 {
			pct *= 100
		}
		parts = append(parts, fmt.Sprintf("[synergy: %+.0f%%]", pct))
	}
	if cv.Salt != nil {
		parts = append(parts, fmt.Sprintf("[salt: %.1f]", *cv.Salt))
	}
	return strings.Join(parts, "  ")
}

// FormatCardLists renders cardlist sections, capped per section.
func FormatCardLists(lists []CardList, maxPerSection int) string {
	var b strings.Builder
	for _, list := range lists {
		if len(list.CardViews) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n  -- %s --\n", list.Header)
		shown := list.CardViews
		if maxPerSection > 0 && len(shown) > maxPerSection {
			shown = shown[:maxPerSection]
		}
		for i, cv := range shown {
			fmt.Fprintf(&b, "  %s\n", FormatCardView(cv, i+1))
		}
		if rest := len(list.CardViews) - len(shown); rest > 0 {
			fmt.Fprintf(&b, "  ... and %d more\n", rest)
		}
	}
	return b.String()
}
