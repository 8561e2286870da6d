// Package stats analyzes Commander decklists: mana curve, color
// sources and costs, type breakdown, heuristic role estimates, and the
// format's deckbuilding validations.
package stats

import (
	"context"
	"strings"

	"github.com/dvidal/manaforge/internal/colors"
	"github.com/dvidal/manaforge/internal/deck"
	"github.com/dvidal/manaforge/internal/storage"
	"github.com/dvidal/manaforge/internal/storage/models"
)

// DeckSize is the required Commander deck size, commander included.
const DeckSize = 100

// CurveTopBucket merges all mana values of seven and above.
const CurveTopBucket = 7

// BasicLands are exempt from the singleton rule.
var BasicLands = map[string]bool{
	"Plains": true, "Island": true, "Swamp": true, "Mountain": true,
	"Forest": true, "Wastes": true,
	"Snow-Covered Plains": true, "Snow-Covered Island": true,
	"Snow-Covered Swamp": true, "Snow-Covered Mountain": true,
	"Snow-Covered Forest": true,
}

// TypeOrder is the display order for the type breakdown.
var TypeOrder = []string{
	"Creatures", "Instants", "Sorceries", "Enchantments",
	"Artifacts", "Planeswalkers", "Battles", "Lands", "Other",
}

// PrimaryType buckets a type line into a single display type. Lands
// win over everything so modal land faces count as lands, then
// creatures over their secondary types.
func PrimaryType(typeLine string) string {
	if typeLine == "" {
		return "Unknown"
	}
	tl := strings.ToLower(typeLine)
	switch {
	case strings.Contains(tl, "land"):
		return "Lands"
	case strings.Contains(tl, "creature"):
		return "Creatures"
	case strings.Contains(tl, "instant"):
		return "Instants"
	case strings.Contains(tl, "sorcery"):
		return "Sorceries"
	case strings.Contains(tl, "enchantment"):
		return "Enchantments"
	case strings.Contains(tl, "artifact"):
		return "Artifacts"
	case strings.Contains(tl, "planeswalker"):
		return "Planeswalkers"
	case strings.Contains(tl, "battle"):
		return "Battles"
	}
	return "Other"
}

// Duplicate is a nonbasic card appearing more than once.
type Duplicate struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Violation is a card outside the commander's color identity.
type Violation struct {
	Name          string `json:"name"`
	ColorIdentity string `json:"color_identity"`
}

// IllegalCard is a card not legal in Commander.
type IllegalCard struct {
	Name     string `json:"name"`
	Legality string `json:"legality"`
}

// Validation holds the deckbuilding rule checks.
type Validation struct {
	TotalCards int  `json:"total_cards"`
	SizeOK     bool `json:"size_ok"`

	Duplicates []Duplicate `json:"duplicates,omitempty"`

	// CommanderResolved is false when the commander named in the
	// metadata was not found in the database; the color identity
	// check is skipped in that case rather than treating the deck as
	// colorless.
	CommanderResolved  bool        `json:"commander_resolved"`
	CommanderIdentity  string      `json:"commander_identity,omitempty"`
	IdentityViolations []Violation `json:"identity_violations,omitempty"`

	Illegal []IllegalCard `json:"illegal,omitempty"`

	// Unresolved lists decklist names with no database match.
	Unresolved []string `json:"unresolved,omitempty"`
}

// OK reports whether every validation passed.
func (v *Validation) OK() bool {
	return v.SizeOK && len(v.Duplicates) == 0 && len(v.IdentityViolations) == 0 &&
		len(v.Illegal) == 0 && len(v.Unresolved) == 0
}

// Report is a full deck analysis.
type Report struct {
	DeckName      string `json:"deck_name"`
	Commander     string `json:"commander,omitempty"`
	ColorIdentity string `json:"color_identity,omitempty"`
	Bracket       string `json:"bracket,omitempty"`

	Lands    int `json:"lands"`
	Nonlands int `json:"nonlands"`

	// Curve buckets nonland cards by mana value, 0 through 7 with
	// everything above merged into 7.
	Curve     map[int]int `json:"curve"`
	AverageMV float64     `json:"average_mv"`

	// Sources counts mana sources per color; a dual land counts once
	// per color it produces.
	Sources map[string]int `json:"sources"`

	// CostSymbols counts colored symbols in nonland casting costs;
	// hybrids count half per color.
	CostSymbols map[string]float64 `json:"cost_symbols"`

	Types map[string]int `json:"types"`

	// Roles holds heuristic role estimates for nonland cards, tagged
	// by the analyzer's ruleset.
	Roles       map[string]int `json:"roles"`
	RuleVersion string         `json:"rule_version"`

	Validation Validation `json:"validation"`
}

// Analyzer computes deck reports against the card database.
type Analyzer struct {
	repo    *storage.CardRepository
	ruleset *Ruleset
}

// NewAnalyzer creates an analyzer with the given role ruleset. A nil
// ruleset selects the default.
func NewAnalyzer(repo *storage.CardRepository, ruleset *Ruleset) *Analyzer {
	if ruleset == nil {
		ruleset = DefaultRuleset()
	}
	return &Analyzer{repo: repo, ruleset: ruleset}
}

// Analyze resolves the decklist against the database and computes the
// full report. Unresolved cards still count toward totals but are
// excluded from curve, source, and role figures.
func (a *Analyzer) Analyze(ctx context.Context, d *deck.Deck) (*Report, error) {
	names := make([]string, 0, len(d.Cards))
	for _, e := range d.Cards {
		names = append(names, e.Name)
	}
	resolved, missing, err := a.repo.Resolve(ctx, names)
	if err != nil {
		return nil, err
	}

	r := &Report{
		DeckName:      d.Name("deck"),
		Commander:     d.Commander(),
		ColorIdentity: colors.Parse(d.ColorIdentity()),
		Bracket:       d.Metadata["bracket"],
		Curve:         make(map[int]int),
		Sources:       make(map[string]int),
		CostSymbols:   make(map[string]float64),
		Types:         make(map[string]int),
		Roles:         make(map[string]int),
		RuleVersion:   a.ruleset.Version,
	}

	commanderCI := r.ColorIdentity

	var totalMV float64
	var curveCount int
	for _, e := range d.Cards {
		card := resolved[e.Name]
		if card == nil {
			r.Types["Unknown"] += e.Quantity
			continue
		}
		ptype := PrimaryType(card.TypeLine)
		r.Types[ptype] += e.Quantity
		if ptype == "Lands" {
			r.Lands += e.Quantity
		} else {
			r.Nonlands += e.Quantity

			bucket := int(card.CMC)
			if bucket > CurveTopBucket {
				bucket = CurveTopBucket
			}
			r.Curve[bucket] += e.Quantity
			totalMV += card.CMC * float64(e.Quantity)
			curveCount += e.Quantity

			for c, n := range CountCostColors(card.ManaCost) {
				r.CostSymbols[c] += n * float64(e.Quantity)
			}

			for _, role := range a.ruleset.Categorize(card.OracleText + " " + card.FaceOracleTexts) {
				r.Roles[role] += e.Quantity
			}
		}

		for c := range ColorsProduced(card, commanderCI) {
			r.Sources[c] += e.Quantity
		}
	}
	if curveCount > 0 {
		r.AverageMV = totalMV / float64(curveCount)
	}

	r.Validation = a.validate(d, resolved, missing)
	return r, nil
}

func (a *Analyzer) validate(d *deck.Deck, resolved map[string]*models.Card, missing []string) Validation {
	v := Validation{
		TotalCards: d.TotalCards(),
		Unresolved: missing,
	}
	v.SizeOK = v.TotalCards == DeckSize

	counts := make(map[string]int)
	display := make(map[string]string)
	for _, e := range d.Cards {
		key := strings.ToLower(e.Name)
		counts[key] += e.Quantity
		display[key] = e.Name
	}
	for _, key := range sortedKeys(counts) {
		name := display[key]
		if counts[key] > 1 && !BasicLands[name] {
			v.Duplicates = append(v.Duplicates, Duplicate{Name: name, Quantity: counts[key]})
		}
	}

	commander := d.Commander()
	commanderCard := resolved[commander]
	if commanderCard == nil && commander != "" {
		// The commander may not appear in the decklist body; resolve
		// by matching resolved names case-insensitively.
		for _, card := range resolved {
			if strings.EqualFold(card.Name, commander) {
				commanderCard = card
				break
			}
		}
	}
	v.CommanderResolved = commanderCard != nil
	if commanderCard != nil {
		commanderCI := colors.Parse(strings.Join(commanderCard.ColorIdentityList(), ""))
		v.CommanderIdentity = commanderCI
		for _, e := range d.Cards {
			card := resolved[e.Name]
			if card == nil {
				continue
			}
			cardCI := colors.Parse(strings.Join(card.ColorIdentityList(), ""))
			if !colors.Contains(commanderCI, cardCI) {
				v.IdentityViolations = append(v.IdentityViolations, Violation{Name: card.Name, ColorIdentity: cardCI})
			}
		}
	}

	for _, e := range d.Cards {
		card := resolved[e.Name]
		if card == nil {
			continue
		}
		if card.LegalCommander != "" && card.LegalCommander != "legal" {
			v.Illegal = append(v.Illegal, IllegalCard{Name: card.Name, Legality: card.LegalCommander})
		}
	}
	return v
}
