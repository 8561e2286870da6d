package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerTools exposes the card search and deckbuilding operations
// as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("search_cards",
			mcp.WithDescription("Search Magic: The Gathering cards in the local database. Results are Commander-legal and sorted by EDHREC rank (most popular first)."),
			mcp.WithString("commander_ci", mcp.Required(), mcp.Description(`Commander color identity restriction, e.g. "UG" or "U,G" (W/U/B/R/G). Only cards playable in that identity are returned. Use "" to search all colors.`)),
			mcp.WithString("text_query", mcp.Description(`Full-text search across name, type line and oracle text. Best for abilities, e.g. "draw a card".`)),
			mcp.WithString("name_contains", mcp.Description("Case-insensitive substring match on the card name.")),
			mcp.WithArray("type_contains_any", mcp.Description(`Type line substrings; matches ANY, e.g. ["Creature", "Artifact"].`), mcp.WithStringItems()),
			mcp.WithArray("oracle_contains", mcp.Description(`Oracle text phrases; matches ANY, e.g. ["draw a card", "enters the battlefield"].`), mcp.WithStringItems()),
			mcp.WithNumber("cmc_min", mcp.Description("Minimum mana value, inclusive.")),
			mcp.WithNumber("cmc_max", mcp.Description("Maximum mana value, inclusive.")),
			mcp.WithString("colors_any", mcp.Description(`Printed card colors to match, e.g. "UG".`)),
			mcp.WithArray("keywords_any", mcp.Description(`Keywords; matches ANY, e.g. ["Flying", "Flash"].`), mcp.WithStringItems()),
			mcp.WithArray("mechanic_tags_any", mcp.Description(`Mechanic tags; matches ANY, e.g. ["ramp", "card_draw"].`), mcp.WithStringItems()),
			mcp.WithNumber("price_usd_max", mcp.Description("Maximum price in USD.")),
			mcp.WithNumber("limit", mcp.Description("Maximum results to return (default 5).")),
		),
		h.searchCards,
	)

	s.AddTool(
		mcp.NewTool("lookup_card",
			mcp.WithDescription("Look up a single card by name and return its full details. Falls back to prefix, substring and full-text matching when the exact name misses."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Card name, exact or partial.")),
		),
		h.lookupCard,
	)

	s.AddTool(
		mcp.NewTool("similar_cards",
			mcp.WithDescription("Find cards that play like a given card, scored on shared mechanic tags, keywords and types."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Seed card name.")),
			mcp.WithString("commander_ci", mcp.Description(`Restrict results to a commander color identity, e.g. "WBG". Empty means no restriction.`)),
			mcp.WithBoolean("commander_legal_only", mcp.Description("Only return Commander-legal cards (default true).")),
			mcp.WithNumber("limit", mcp.Description("Maximum results to return (default 10).")),
		),
		h.similarCards,
	)

	s.AddTool(
		mcp.NewTool("deck_add",
			mcp.WithDescription("Add a card to the deck being built, or update it if already present. The deck holds at most 100 cards."),
			mcp.WithString("card_name", mcp.Required(), mcp.Description("Card name to add.")),
			mcp.WithString("mana_cost", mcp.Description(`Mana cost, e.g. "{1}{U}".`)),
			mcp.WithString("type_line", mcp.Description("Type line.")),
			mcp.WithString("oracle_text", mcp.Description("Oracle text.")),
			mcp.WithString("colors", mcp.Description("Card colors, comma-separated.")),
			mcp.WithString("color_identity", mcp.Description("Color identity, comma-separated.")),
			mcp.WithNumber("cmc", mcp.Description("Mana value.")),
		),
		h.deckAdd,
	)

	s.AddTool(
		mcp.NewTool("deck_remove",
			mcp.WithDescription("Remove a card from the deck being built."),
			mcp.WithString("card_name", mcp.Required(), mcp.Description("Card name to remove.")),
		),
		h.deckRemove,
	)

	s.AddTool(
		mcp.NewTool("deck_list",
			mcp.WithDescription("List the deck being built, sorted by card name."),
		),
		h.deckList,
	)
}
