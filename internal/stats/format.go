package stats

import (
	"fmt"
	"strings"
)

var colorDisplay = map[string]string{
	"W": "White", "U": "Blue", "B": "Black", "R": "Red", "G": "Green",
}

const wubrg = "WUBRG"

// Format renders a report as the text summary shown by the stats
// command.
func (r *Report) Format() string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "%s\n  Deck Stats: %s\n%s\n", rule, r.DeckName, rule)
	fmt.Fprintf(&b, "  Commander:      %s\n", r.Commander)
	fmt.Fprintf(&b, "  Color Identity: %s\n", orUnknown(r.ColorIdentity))
	if r.Bracket != "" {
		fmt.Fprintf(&b, "  Bracket:        %s\n", r.Bracket)
	}
	b.WriteString("\n")

	check := "ok"
	if !r.Validation.SizeOK {
		check = fmt.Sprintf("expected %d", DeckSize)
	}
	fmt.Fprintf(&b, "  Card Count: %d (%s)\n", r.Validation.TotalCards, check)
	fmt.Fprintf(&b, "  Lands: %d | Nonlands: %d\n\n", r.Lands, r.Nonlands)

	b.WriteString("  Mana Curve (nonland):\n")
	maxBar := 1
	for _, n := range r.Curve {
		if n > maxBar {
			maxBar = n
		}
	}
	for mv := 0; mv <= CurveTopBucket; mv++ {
		n := r.Curve[mv]
		bar := strings.Repeat("#", n*20/maxBar)
		label := fmt.Sprintf("%d", mv)
		if mv == CurveTopBucket {
			label = "7+"
		}
		fmt.Fprintf(&b, "    %2s: %-20s %d\n", label, bar, n)
	}
	fmt.Fprintf(&b, "  Average MV: %.2f\n\n", r.AverageMV)

	if len(r.Sources) > 0 {
		total := 0
		for _, n := range r.Sources {
			total += n
		}
		b.WriteString("  Mana sources (lands + rocks):\n")
		for _, c := range strings.Split(wubrg, "") {
			if n := r.Sources[c]; n > 0 {
				fmt.Fprintf(&b, "    %-8s: %d sources  (%.1f%%)\n", colorDisplay[c], n, float64(n)/float64(total)*100)
			}
		}
		b.WriteString("\n")
	}

	if len(r.CostSymbols) > 0 {
		var total float64
		for _, n := range r.CostSymbols {
			total += n
		}
		b.WriteString("  Mana costs (colored symbols in nonland costs):\n")
		for _, c := range strings.Split(wubrg, "") {
			if n := r.CostSymbols[c]; n > 0 {
				fmt.Fprintf(&b, "    %-8s: %.1f symbols  (%.1f%%)\n", colorDisplay[c], n, n/total*100)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("  Card Types:\n")
	for _, t := range TypeOrder {
		if n := r.Types[t]; n > 0 {
			fmt.Fprintf(&b, "    %-16s %d\n", t, n)
		}
	}
	if n := r.Types["Unknown"]; n > 0 {
		fmt.Fprintf(&b, "    %-16s %d\n", "Unknown", n)
	}
	b.WriteString("\n")

	if len(r.Roles) > 0 {
		fmt.Fprintf(&b, "  Role Estimates (heuristic %s):\n", r.RuleVersion)
		for _, role := range []string{RoleRamp, RoleCardDraw, RoleRemoval, RoleBoardWipe, RoleTutor, RoleProtection} {
			if n := r.Roles[role]; n > 0 {
				fmt.Fprintf(&b, "    %-16s ~%d\n", role, n)
			}
		}
		b.WriteString("\n")
	}

	v := &r.Validation
	if len(v.Duplicates) > 0 {
		b.WriteString("  Singleton Check: FAIL\n")
		for _, d := range v.Duplicates {
			fmt.Fprintf(&b, "    %s (x%d)\n", d.Name, d.Quantity)
		}
	} else {
		b.WriteString("  Singleton Check: ok (excluding basics)\n")
	}

	switch {
	case !v.CommanderResolved:
		b.WriteString("  Color Identity Check: skipped (commander not in database)\n")
	case len(v.IdentityViolations) > 0:
		fmt.Fprintf(&b, "  Color Identity Check: FAIL, %d violation(s) (commander CI: %s):\n",
			len(v.IdentityViolations), orUnknown(v.CommanderIdentity))
		for i, viol := range v.IdentityViolations {
			if i == 10 {
				fmt.Fprintf(&b, "    ... and %d more\n", len(v.IdentityViolations)-10)
				break
			}
			fmt.Fprintf(&b, "    %s (CI: %s)\n", viol.Name, orUnknown(viol.ColorIdentity))
		}
	default:
		fmt.Fprintf(&b, "  Color Identity Check: ok, all cards within %s\n", orUnknown(v.CommanderIdentity))
	}

	if len(v.Illegal) > 0 {
		fmt.Fprintf(&b, "  Commander Legality: FAIL, %d illegal card(s):\n", len(v.Illegal))
		for _, ill := range v.Illegal {
			fmt.Fprintf(&b, "    %s (%s)\n", ill.Name, ill.Legality)
		}
	} else {
		b.WriteString("  Commander Legality: ok\n")
	}

	if len(v.Unresolved) > 0 {
		fmt.Fprintf(&b, "\n  %d card(s) not found in database:\n", len(v.Unresolved))
		for i, name := range v.Unresolved {
			if i == 10 {
				fmt.Fprintf(&b, "    ... and %d more\n", len(v.Unresolved)-10)
				break
			}
			fmt.Fprintf(&b, "    %s\n", name)
		}
	}

	fmt.Fprintf(&b, "%s\n", rule)
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "C"
	}
	return s
}
