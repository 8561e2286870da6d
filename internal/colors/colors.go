// Package colors implements WUBRG color identity parsing and the SQL
// subset predicate used throughout card search.
package colors

import "strings"

// Order is the canonical WUBRG color ordering.
const Order = "WUBRG"

// Name maps canonical identity strings to their common names.
var Name = map[string]string{
	"":      "Colorless",
	"W":     "White (Mono-White)",
	"U":     "Blue (Mono-Blue)",
	"B":     "Black (Mono-Black)",
	"R":     "Red (Mono-Red)",
	"G":     "Green (Mono-Green)",
	"WU":    "Azorius (White-Blue)",
	"WB":    "Orzhov (White-Black)",
	"WR":    "Boros (White-Red)",
	"WG":    "Selesnya (White-Green)",
	"UB":    "Dimir (Blue-Black)",
	"UR":    "Izzet (Blue-Red)",
	"UG":    "Simic (Blue-Green)",
	"BR":    "Rakdos (Black-Red)",
	"BG":    "Golgari (Black-Green)",
	"RG":    "Gruul (Red-Green)",
	"WUB":   "Esper",
	"WUR":   "Jeskai",
	"WUG":   "Bant",
	"WBR":   "Mardu",
	"WBG":   "Abzan",
	"WRG":   "Naya",
	"UBR":   "Grixis",
	"UBG":   "Sultai",
	"URG":   "Temur",
	"BRG":   "Jund",
	"WUBR":  "Yore-Tiller (Sans Green)",
	"WUBG":  "Witch-Maw (Sans Red)",
	"WURG":  "Ink-Treader (Sans Black)",
	"WBRG":  "Dune-Brood (Sans Blue)",
	"UBRG":  "Glint-Eye (Sans White)",
	"WUBRG": "Five-Color",
}

// Parse normalizes a color identity spec into canonical WUBRG order.
// It accepts forms like "WUB", "w,u,b", "W U B", and "C" or "colorless"
// for the empty identity. Unknown letters are ignored.
func Parse(spec string) string {
	s := strings.ToUpper(strings.TrimSpace(spec))
	if s == "" || s == "C" || s == "COLORLESS" {
		return ""
	}
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	var b strings.Builder
	for _, c := range Order {
		if strings.ContainsRune(s, c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// FullName returns the common name for a color identity, falling back
// to the identity string itself when it has no named combination.
func FullName(identity string) string {
	id := Parse(identity)
	if name, ok := Name[id]; ok {
		return name
	}
	if id == "" {
		return "Colorless"
	}
	return id
}

// SubsetClause builds a SQL predicate matching cards whose color
// identity is a subset of allowed. Colorless cards match any identity.
// An empty allowed identity matches only colorless cards, and the full
// five-color identity matches everything. The clause excludes each
// disallowed color rather than enumerating allowed combinations, so it
// is insensitive to how the column separates its letters.
func SubsetClause(allowed string) (string, []any) {
	allowed = Parse(allowed)
	if allowed == "" {
		return "(color_identity IS NULL OR color_identity = '')", nil
	}
	var parts []string
	var params []any
	for _, c := range Order {
		if !strings.ContainsRune(allowed, c) {
			parts = append(parts, "color_identity NOT LIKE ?")
			params = append(params, "%"+string(c)+"%")
		}
	}
	if len(parts) == 0 {
		return "1=1", nil
	}
	return "(color_identity IS NULL OR color_identity = '' OR (" + strings.Join(parts, " AND ") + "))", params
}

// Contains reports whether the identity sub is a subset of super.
func Contains(super, sub string) bool {
	super = Parse(super)
	for _, c := range Parse(sub) {
		if !strings.ContainsRune(super, c) {
			return false
		}
	}
	return true
}
