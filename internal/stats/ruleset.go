package stats

import (
	"regexp"
	"sort"
)

// Role names produced by the default ruleset.
const (
	RoleRamp       = "Ramp"
	RoleCardDraw   = "Card Draw"
	RoleRemoval    = "Removal"
	RoleBoardWipe  = "Board Wipe"
	RoleTutor      = "Tutor"
	RoleProtection = "Protection"
)

// Rule tags a deckbuilding role when any of its patterns match a
// card's oracle text. Suppresses names a role that this rule knocks
// out when both match, so a board wipe is not double-counted as spot
// removal.
type Rule struct {
	Role       string
	Patterns   []*regexp.Regexp
	Suppresses string
}

// Ruleset is a versioned collection of role-tagging rules. Rulesets
// are immutable once built; swap the whole set to change behavior.
type Ruleset struct {
	Version string
	rules   []Rule
}

// NewRuleset builds a ruleset from rules, preserving order.
func NewRuleset(version string, rules []Rule) *Ruleset {
	return &Ruleset{Version: version, rules: rules}
}

// Roles returns the role names this ruleset can produce, in rule order.
func (rs *Ruleset) Roles() []string {
	out := make([]string, 0, len(rs.rules))
	for _, r := range rs.rules {
		out = append(out, r.Role)
	}
	return out
}

// Categorize tags a card's oracle text with zero or more roles.
// Matching is case-insensitive; the input need not be lowercased.
func (rs *Ruleset) Categorize(oracleText string) []string {
	if oracleText == "" {
		return nil
	}
	matched := make(map[string]bool)
	for _, rule := range rs.rules {
		for _, p := range rule.Patterns {
			if p.MatchString(oracleText) {
				matched[rule.Role] = true
				break
			}
		}
	}
	for _, rule := range rs.rules {
		if matched[rule.Role] && rule.Suppresses != "" {
			delete(matched, rule.Suppresses)
		}
	}
	var out []string
	for _, rule := range rs.rules {
		if matched[rule.Role] {
			out = append(out, rule.Role)
		}
	}
	return out
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile("(?i)"+p))
	}
	return out
}

// DefaultRuleset returns the built-in v1 role heuristics.
func DefaultRuleset() *Ruleset {
	return NewRuleset("v1", []Rule{
		{
			Role: RoleRamp,
			Patterns: compileAll(
				`search your library for .{0,20}(?:land|forest|plains|island|swamp|mountain)`,
				`put .{0,30}land .{0,20}onto the battlefield`,
				`add \{`,
				`add one mana`,
				`add .{0,10} mana`,
				`costs? \{?\d*\}? less to cast`,
			),
		},
		{
			Role: RoleCardDraw,
			Patterns: compileAll(
				`draws? (?:a |two |three |\d+ )?card`,
				`look at the top .{0,20} put .{0,20} into your hand`,
				`reveal .{0,30} put .{0,20} into your hand`,
			),
		},
		{
			Role: RoleBoardWipe,
			Patterns: compileAll(
				`destroy all`,
				`exile all`,
				`(?:each|all) .{0,20}(?:creature|permanent|nonland).{0,20}(?:gets? -|destroy|exile|sacrifice|deals? \d+ damage)`,
				`deals? \d+ damage to each`,
			),
			Suppresses: RoleRemoval,
		},
		{
			Role: RoleRemoval,
			Patterns: compileAll(
				`destroy target`,
				`exile target`,
				`(?:target|chosen) .{0,30} gets? -\d+/-\d+`,
				`deals? \d+ damage to (?:target|any target|any one target)`,
				`return target .{0,20} to .{0,10} owner`,
			),
		},
		{
			Role: RoleTutor,
			Patterns: compileAll(
				`search your library for a card`,
				`search your library for .{0,30} card`,
			),
		},
		{
			Role: RoleProtection,
			Patterns: compileAll(
				`(?:hexproof|shroud|indestructible|ward)`,
				`counter target .{0,20}spell`,
				`can't be (?:countered|blocked|the target)`,
			),
		},
	})
}

// sortedKeys is a test and formatting helper for deterministic output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
