package cli

import (
	"github.com/spf13/cobra"

	"github.com/dvidal/manaforge/internal/mcp"
)

// NewServeCommand builds the MCP server command.
func NewServeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long:  "Exposes card search and deckbuilding tools to LLM clients over the Model Context Protocol.",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			return mcp.Serve(db)
		},
	}
}
