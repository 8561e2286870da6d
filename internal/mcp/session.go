package mcp

import (
	"sort"
	"strings"
	"sync"
)

// DeckLimit caps the working deck at Commander deck size.
const DeckLimit = 100

// DeckCard is one card in the working deck.
type DeckCard struct {
	Name          string  `json:"name"`
	ManaCost      string  `json:"mana_cost,omitempty"`
	TypeLine      string  `json:"type_line,omitempty"`
	OracleText    string  `json:"oracle_text,omitempty"`
	Colors        string  `json:"colors,omitempty"`
	ColorIdentity string  `json:"color_identity,omitempty"`
	CMC           float64 `json:"cmc"`
}

// Session holds the deck an LLM client is building. Each server
// instance owns one session.
type Session struct {
	mu    sync.Mutex
	cards []DeckCard
}

func NewSession() *Session {
	return &Session{}
}

// Add inserts a card, or updates the existing entry when the names
// overlap (either name containing the other, case-insensitive, so a
// partial name from a search result still hits the full entry).
// Returns false when the deck is already full.
func (s *Session) Add(card DeckCard) (updated, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.matchLocked(card.Name); i >= 0 {
		s.cards[i] = card
		s.sortLocked()
		return true, true
	}
	if len(s.cards) >= DeckLimit {
		return false, false
	}
	s.cards = append(s.cards, card)
	s.sortLocked()
	return false, true
}

// Remove deletes the entry whose name overlaps the given name.
func (s *Session) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.matchLocked(name)
	if i < 0 {
		return false
	}
	s.cards = append(s.cards[:i], s.cards[i+1:]...)
	return true
}

// Cards returns a copy of the deck, sorted by name.
func (s *Session) Cards() []DeckCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DeckCard(nil), s.cards...)
}

// Count returns the number of cards in the deck.
func (s *Session) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

func (s *Session) matchLocked(name string) int {
	needle := strings.ToLower(name)
	for i, card := range s.cards {
		have := strings.ToLower(card.Name)
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			return i
		}
	}
	return -1
}

func (s *Session) sortLocked() {
	sort.Slice(s.cards, func(i, j int) bool {
		return strings.ToLower(s.cards[i].Name) < strings.ToLower(s.cards[j].Name)
	})
}
