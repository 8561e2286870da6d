package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dvidal/manaforge/internal/storage"
)

// NewLookupCommand builds the single-card lookup command.
func NewLookupCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <card name>",
		Short: "Show full details for one card",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			db, err := app.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			card, err := storage.NewCardRepository(db).GetByName(cmd.Context(), name)
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Printf("No card found matching %q.\n", name)
				return errNoResults
			}
			if err != nil {
				return err
			}

			fmt.Println(formatFullCard(card))
			return nil
		},
	}
}
