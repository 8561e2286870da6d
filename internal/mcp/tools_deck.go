// tools_deck.go implements the working-deck tools. The deck lives in
// the server's session, capped at Commander deck size.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
)

// deckState is the response shape shared by all deck tools.
type deckState struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Deck      []DeckCard `json:"deck"`
	DeckCount int        `json:"deck_count"`
}

func (h *handlers) deckResponse(success bool, message string) (*mcp.CallToolResult, error) {
	return jsonResult(deckState{
		Success:   success,
		Message:   message,
		Deck:      h.session.Cards(),
		DeckCount: h.session.Count(),
	})
}

// deckAdd handles deck_add tool calls.
func (h *handlers) deckAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("card_name")
	if err != nil {
		return mcp.NewToolResultError("card_name is required"), nil
	}

	card := DeckCard{
		Name:          name,
		ManaCost:      getString(req, "mana_cost", ""),
		TypeLine:      getString(req, "type_line", ""),
		OracleText:    getString(req, "oracle_text", ""),
		Colors:        getString(req, "colors", ""),
		ColorIdentity: getString(req, "color_identity", ""),
	}
	if cmc := getFloat(req, "cmc"); cmc != nil {
		card.CMC = *cmc
	}

	updated, ok := h.session.Add(card)
	slog.Info("mcp deck_add", "card", name, "updated", updated, "count", h.session.Count())
	if !ok {
		return h.deckResponse(false, "Deck is full. Present the deck to the user and ask them to remove a card before adding a new one.")
	}
	if updated {
		return h.deckResponse(true, fmt.Sprintf("Updated card %q in deck", name))
	}
	return h.deckResponse(true, fmt.Sprintf("Added %q to deck", name))
}

// deckRemove handles deck_remove tool calls.
func (h *handlers) deckRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("card_name")
	if err != nil {
		return mcp.NewToolResultError("card_name is required"), nil
	}

	removed := h.session.Remove(name)
	slog.Info("mcp deck_remove", "card", name, "removed", removed)
	if !removed {
		return h.deckResponse(false, fmt.Sprintf("Card %q is not in the deck", name))
	}
	return h.deckResponse(true, fmt.Sprintf("Removed %q from deck", name))
}

// deckList handles deck_list tool calls.
func (h *handlers) deckList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.deckResponse(true, fmt.Sprintf("Deck contains %d cards", h.session.Count()))
}
