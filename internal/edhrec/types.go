package edhrec

// CardView is one recommended card on an EDHREC commander page.
type CardView struct {
	Name           string   `json:"name"`
	NumDecks       int      `json:"num_decks"`
	PotentialDecks int      `json:"potential_decks"`
	Synergy        *float64 `json:"synergy,omitempty"`
	Salt           *float64 `json:"salt,omitempty"`
}

// InclusionPercent returns how often the card appears in eligible decks.
func (cv CardView) InclusionPercent() float64 {
	if cv.PotentialDecks <= 0 {
		return 0
	}
	return float64(cv.NumDecks) / float64(cv.PotentialDecks) * 100
}

// CardList is a themed section of cardviews ("High Synergy Cards",
// "Top Creatures", ...).
type CardList struct {
	Header    string     `json:"header"`
	Tag       string     `json:"tag"`
	CardViews []CardView `json:"cardviews"`
}

// Page is an EDHREC JSON page. Only the fields the toolkit reads are
// mapped; the pages carry a lot more.
type Page struct {
	Container struct {
		JSONDict struct {
			Card struct {
				Name     string `json:"name"`
				NumDecks int    `json:"num_decks"`
			} `json:"card"`
			NumDecks  int        `json:"num_decks"`
			CardLists []CardList `json:"cardlists"`
		} `json:"json_dict"`
	} `json:"container"`
}

// NumDecks returns the page's deck count, wherever the page put it.
func (p *Page) NumDecks() int {
	if n := p.Container.JSONDict.Card.NumDecks; n > 0 {
		return n
	}
	return p.Container.JSONDict.NumDecks
}

// Section returns the cardlist with the given tag, or nil.
func (p *Page) Section(tag string) *CardList {
	for i := range p.Container.JSONDict.CardLists {
		if p.Container.JSONDict.CardLists[i].Tag == tag {
			return &p.Container.JSONDict.CardLists[i]
		}
	}
	return nil
}

// Sections returns all cardlists on the page.
func (p *Page) Sections() []CardList {
	return p.Container.JSONDict.CardLists
}

// Overview is the header block of a commander page.
type Overview struct {
	Name     string `json:"name"`
	NumDecks int    `json:"num_decks"`
	URL      string `json:"url"`
}

// Section tags as EDHREC uses them, keyed by the names the CLI and
// agent tools accept.
var SectionTags = map[string]string{
	"top":            "topcards",
	"high-synergy":   "highsynergycards",
	"new":            "newcards",
	"creatures":      "creatures",
	"instants":       "instants",
	"sorceries":      "sorceries",
	"enchantments":   "enchantments",
	"artifacts":      "utilityartifacts",
	"mana-artifacts": "manaartifacts",
	"planeswalkers":  "planeswalkers",
	"lands":          "lands",
	"utility-lands":  "utilitylands",
	"battles":        "battles",
}

// averageDeckPage is the shape of pages/average-decks/{slug}.json.
type averageDeckPage struct {
	Deck []string `json:"deck"`
	Container struct {
		JSONDict struct {
			Deck []string `json:"deck"`
		} `json:"json_dict"`
	} `json:"container"`
}

func (p *averageDeckPage) decklist() []string {
	if len(p.Deck) > 0 {
		return p.Deck
	}
	return p.Container.JSONDict.Deck
}
