// tools_cards.go implements the card search and lookup tools.
//
// Results come back as JSON arrays for easy LLM parsing. Searches are
// always restricted to Commander-legal cards and sorted by EDHREC
// rank, matching how the deckbuilding agent is expected to use them.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dvidal/manaforge/internal/colors"
	"github.com/dvidal/manaforge/internal/storage"
)

const searchDefaultLimit = 5

// searchCards handles search_cards tool calls.
func (h *handlers) searchCards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ci, err := req.RequireString("commander_ci")
	if err != nil {
		return mcp.NewToolResultError(`commander_ci is required (use "" to search all colors)`), nil
	}

	filters := storage.Filters{
		TextQuery:         getString(req, "text_query", ""),
		NameContains:      getString(req, "name_contains", ""),
		TypeContainsAny:   getStrings(req, "type_contains_any"),
		OracleContainsAny: getStrings(req, "oracle_contains"),
		CMCMin:            getFloat(req, "cmc_min"),
		CMCMax:            getFloat(req, "cmc_max"),
		ColorsAny:         getString(req, "colors_any", ""),
		KeywordsAny:       getStrings(req, "keywords_any"),
		MechanicTagsAny:   getStrings(req, "mechanic_tags_any"),
		PriceUSDMax:       getFloat(req, "price_usd_max"),
		LegalFormat:       "commander",
		Limit:             getInt(req, "limit", searchDefaultLimit),
		OrderBy:           "edhrec_rank",
	}

	// At the tool boundary an empty identity means "all colors"; the
	// colorless-only search is not something an agent asks for.
	if strings.TrimSpace(ci) != "" {
		parsed := colors.Parse(ci)
		filters.CommanderCI = &parsed
	}

	cards, err := h.repo.Search(ctx, filters)
	slog.Info("mcp search_cards", "ci", ci, "count", len(cards), "error", err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(cards)
}

// lookupCard handles lookup_card tool calls.
func (h *handlers) lookupCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	card, err := h.repo.GetByName(ctx, name)
	slog.Info("mcp lookup_card", "name", name, "error", err)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("no card found matching " + name), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(card)
}

// similarCards handles similar_cards tool calls.
func (h *handlers) similarCards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	opts := storage.SimilarOptions{
		CommanderLegalOnly: getBool(req, "commander_legal_only", true),
		Limit:              getInt(req, "limit", 10),
	}
	if ci := getString(req, "commander_ci", ""); strings.TrimSpace(ci) != "" {
		parsed := colors.Parse(ci)
		opts.CommanderCI = &parsed
	}

	results, err := h.repo.FindSimilar(ctx, name, opts)
	slog.Info("mcp similar_cards", "seed", name, "count", len(results), "error", err)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("no card found matching " + name), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}
