package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvidal/manaforge/internal/deck"
	"github.com/dvidal/manaforge/internal/export"
	"github.com/dvidal/manaforge/internal/storage"
)

// NewExportCommand builds the full-deck text export command.
func NewExportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <decklist.md>",
		Short: "Export a deck with full card text for LLM context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deck.ParseFile(args[0])
			if err != nil {
				return err
			}

			db, err := app.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			out, err := export.New(storage.NewCardRepository(db)).FullDeck(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}
