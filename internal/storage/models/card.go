// Package models defines the data structures persisted in the card database.
package models

import "strings"

// Card represents a single printing-merged card record from the local
// Scryfall mirror. List-valued columns (colors, keywords, mechanic tags,
// produced mana) are stored as comma-separated text; use the accessor
// methods to get them as slices.
type Card struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ManaCost        string `json:"mana_cost,omitempty"`
	CMC             float64 `json:"cmc"`
	TypeLine        string `json:"type_line"`
	OracleText      string `json:"oracle_text,omitempty"`
	FaceNames       string `json:"face_names,omitempty"`
	FaceManaCosts   string `json:"face_mana_costs,omitempty"`
	FaceTypeLines   string `json:"face_type_lines,omitempty"`
	FaceOracleTexts string `json:"face_oracle_texts,omitempty"`
	Power           string `json:"power,omitempty"`
	Toughness       string `json:"toughness,omitempty"`
	Loyalty         string `json:"loyalty,omitempty"`
	Defense         string `json:"defense,omitempty"`
	Colors          string `json:"colors,omitempty"`
	ColorIdentity   string `json:"color_identity,omitempty"`
	ProducedMana    string `json:"produced_mana,omitempty"`
	Keywords        string `json:"keywords,omitempty"`
	MechanicTags    string `json:"mechanic_tags,omitempty"`
	Rarity          string `json:"rarity,omitempty"`
	SetCode         string `json:"set,omitempty"`
	SetName         string `json:"set_name,omitempty"`
	ReleasedAt      string `json:"released_at,omitempty"`

	// Nullable in the database: unpriced and unranked cards exist.
	PriceUSD   *float64 `json:"price_usd,omitempty"`
	EDHRECRank *int64   `json:"edhrec_rank,omitempty"`

	GameChanger bool `json:"game_changer,omitempty"`

	LegalCommander string `json:"legal_commander,omitempty"`
	LegalVintage   string `json:"legal_vintage,omitempty"`
	LegalLegacy    string `json:"legal_legacy,omitempty"`
	LegalModern    string `json:"legal_modern,omitempty"`
	LegalPauper    string `json:"legal_pauper,omitempty"`

	ImageNormal string `json:"image_normal,omitempty"`
	ScryfallURI string `json:"scryfall_uri,omitempty"`
}

// KeywordList returns the card's keywords as a slice.
func (c *Card) KeywordList() []string {
	return splitList(c.Keywords)
}

// MechanicTagList returns the card's mechanic tags as a slice.
func (c *Card) MechanicTagList() []string {
	return splitList(c.MechanicTags)
}

// ColorIdentityList returns the card's color identity letters as a slice.
func (c *Card) ColorIdentityList() []string {
	return splitList(c.ColorIdentity)
}

// ProducedManaList returns the mana colors this card can produce as a slice.
func (c *Card) ProducedManaList() []string {
	return splitList(c.ProducedMana)
}

// IsLegalCommander reports whether the card is legal in Commander.
func (c *Card) IsLegalCommander() bool {
	return c.LegalCommander == "legal"
}

// FrontName returns the front-face name for double-faced cards, or the
// full name otherwise.
func (c *Card) FrontName() string {
	if i := strings.Index(c.Name, " // "); i >= 0 {
		return c.Name[:i]
	}
	return c.Name
}

// FrontTypeLine returns the front-face type line for double-faced cards.
func (c *Card) FrontTypeLine() string {
	if i := strings.Index(c.TypeLine, " // "); i >= 0 {
		return c.TypeLine[:i]
	}
	return c.TypeLine
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
