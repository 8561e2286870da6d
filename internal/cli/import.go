package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dvidal/manaforge/internal/storage"
)

// NewImportCommand builds the card CSV import command.
func NewImportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <cards.csv>",
		Short: "Import a card CSV into the local database",
		Long:  "Loads card rows from a CSV export into the SQLite database, replacing existing rows by id. The full-text index updates through triggers.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			cfg := storage.DefaultConfig(app.DBPath)
			cfg.AutoMigrate = true
			db, err := storage.Open(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := storage.ImportCSV(cmd.Context(), db, f)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d cards into %s\n", n, app.DBPath)
			return nil
		},
	}
}
