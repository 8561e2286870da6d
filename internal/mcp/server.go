// Package mcp implements the Model Context Protocol server, exposing
// card search and deckbuilding operations to LLMs over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dvidal/manaforge/internal/storage"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio. stdout carries the JSON-RPC
// stream, so all logging goes to stderr.
func Serve(db *storage.DB) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{
		repo:    storage.NewCardRepository(db),
		session: NewSession(),
	}

	s := server.NewMCPServer(
		"manaforge",
		Version,
		server.WithToolCapabilities(true),
	)
	registerTools(s, h)

	slog.Info("manaforge MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers. The session holds the deck
// being built and lives exactly as long as the server process, so two
// clients never share deck state.
type handlers struct {
	repo    *storage.CardRepository
	session *Session
}
