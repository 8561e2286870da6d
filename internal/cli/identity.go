package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvidal/manaforge/internal/colors"
	"github.com/dvidal/manaforge/internal/storage"
)

// NewIdentityCommand builds the color-identity search command.
func NewIdentityCommand(app *App) *cobra.Command {
	var (
		commandersOnly bool
		commanderLegal bool
		text           string
		typeContains   string
		keyword        string
		cmcMax         float64
		maxResults     int
		sortBy         string
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   "identity <colors>",
		Short: "List cards playable within a commander color identity",
		Long:  `Lists cards whose color identity fits inside the given identity, e.g. "UG", "wubrg" or "C" for colorless.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := colors.Parse(args[0])

			db, err := app.openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			repo := storage.NewCardRepository(db)

			filters := storage.Filters{
				CommanderCI: &identity,
				IsCommander: commandersOnly,
				Limit:       maxResults,
				OrderBy:     sortBy,
			}
			if text != "" {
				filters.OracleContainsAny = []string{text}
			}
			if typeContains != "" {
				filters.TypeContainsAny = []string{typeContains}
			}
			if keyword != "" {
				filters.KeywordsAny = []string{keyword}
			}
			if cmd.Flags().Changed("cmc-max") {
				filters.CMCMax = &cmcMax
			}
			if commanderLegal || commandersOnly {
				filters.LegalFormat = "commander"
			}

			cards, err := repo.Search(cmd.Context(), filters)
			if err != nil {
				return err
			}

			mode := "Cards"
			if commandersOnly {
				mode = "Commanders"
			}
			fmt.Printf("\n%s within %s identity (%d results):\n\n", mode, colors.FullName(identity), len(cards))
			if len(cards) == 0 {
				fmt.Println("  No cards found.")
				return errNoResults
			}
			for i := range cards {
				fmt.Printf("  %3d. %s\n", i+1, formatCard(cards[i], verbose))
				if verbose {
					fmt.Println()
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&commandersOnly, "commanders-only", false, "only cards that can be your commander")
	cmd.Flags().BoolVar(&commanderLegal, "commander-legal", false, "only Commander-legal cards")
	cmd.Flags().StringVar(&text, "text", "", "oracle text contains (case-insensitive)")
	cmd.Flags().StringVar(&typeContains, "type", "", "type line contains")
	cmd.Flags().StringVar(&keyword, "keyword", "", "has keyword")
	cmd.Flags().Float64Var(&cmcMax, "cmc-max", 0, "maximum mana value")
	cmd.Flags().IntVar(&maxResults, "max", 30, "max results")
	cmd.Flags().StringVar(&sortBy, "sort", "edhrec_rank", "sort column")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show oracle text")

	return cmd
}
