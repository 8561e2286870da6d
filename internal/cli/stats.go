package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvidal/manaforge/internal/deck"
	"github.com/dvidal/manaforge/internal/stats"
	"github.com/dvidal/manaforge/internal/storage"
)

// NewStatsCommand builds the deck statistics command.
func NewStatsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <decklist.md>",
		Short: "Analyze a decklist: curve, sources, roles, validation",
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

			analyzer := stats.NewAnalyzer(storage.NewCardRepository(db), stats.DefaultRuleset())
			report, err := analyzer.Analyze(cmd.Context(), d)
			if err != nil {
				return err
			}

			fmt.Println(report.Format())
			if !report.Validation.OK() {
				return fmt.Errorf("deck has validation problems")
			}
			return nil
		},
	}
	return cmd
}
