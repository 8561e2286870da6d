package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvidal/manaforge/internal/colors"
	"github.com/dvidal/manaforge/internal/storage"
)

// NewSearchCommand builds the card search command.
func NewSearchCommand(app *App) *cobra.Command {
	var (
		name          string
		colorIdentity string
		cardColors    string
		typeContains  []string
		textContains  []string
		ftsQuery      string
		cmcMin        float64
		cmcMax        float64
		powerMin      float64
		powerMax      float64
		toughnessMin  float64
		toughnessMax  float64
		keywords      []string
		tags          []string
		rarity        string
		commanderOnly bool
		gameChanger   bool
		noGameChanger bool
		isCommander   bool
		like          string
		maxResults    int
		sortBy        string
		sortDir       string
		verbose       bool
		rawWhere      string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search cards in the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameChanger && noGameChanger {
				return errors.New("--game-changer and --no-game-changer are mutually exclusive")
			}

			db, err := app.openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			repo := storage.NewCardRepository(db)
			ctx := cmd.Context()

			if like != "" {
				opts := storage.SimilarOptions{
					CommanderLegalOnly: commanderOnly,
					Limit:              maxResults,
				}
				if cmd.Flags().Changed("color-identity") {
					ci := colors.Parse(colorIdentity)
					opts.CommanderCI = &ci
				}
				results, err := repo.FindSimilar(ctx, like, opts)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Printf("No similar cards found for %q.\n", like)
					return errNoResults
				}
				fmt.Printf("Cards similar to %q (%d results):\n\n", like, len(results))
				for i, r := range results {
					fmt.Printf("  %3d. %s  [score: %d]\n", i+1, formatCard(&r.Card, verbose), r.Score)
					if verbose {
						fmt.Println()
					}
				}
				return nil
			}

			filters := storage.Filters{
				NameContains:      name,
				ColorsAny:         cardColors,
				TypeContainsAny:   typeContains,
				OracleContainsAny: textContains,
				TextQuery:         ftsQuery,
				KeywordsAny:       keywords,
				MechanicTagsAny:   tags,
				Rarity:            rarity,
				IsCommander:       isCommander,
				RawWhere:          rawWhere,
				Limit:             maxResults,
				OrderBy:           sortBy,
				OrderDir:          sortDir,
			}
			if cmd.Flags().Changed("color-identity") {
				ci := colors.Parse(colorIdentity)
				filters.CommanderCI = &ci
			}
			if cmd.Flags().Changed("cmc-min") {
				filters.CMCMin = &cmcMin
			}
			if cmd.Flags().Changed("cmc-max") {
				filters.CMCMax = &cmcMax
			}
			if cmd.Flags().Changed("power-min") {
				filters.PowerMin = &powerMin
			}
			if cmd.Flags().Changed("power-max") {
				filters.PowerMax = &powerMax
			}
			if cmd.Flags().Changed("toughness-min") {
				filters.ToughnessMin = &toughnessMin
			}
			if cmd.Flags().Changed("toughness-max") {
				filters.ToughnessMax = &toughnessMax
			}
			if commanderOnly {
				filters.LegalFormat = "commander"
			}
			if gameChanger {
				v := true
				filters.GameChanger = &v
			}
			if noGameChanger {
				v := false
				filters.GameChanger = &v
			}

			cards, err := repo.Search(ctx, filters)
			if err != nil {
				return fmt.Errorf("query error: %w", err)
			}
			if len(cards) == 0 {
				fmt.Println("No cards found matching your criteria.")
				return errNoResults
			}

			fmt.Printf("Found %d card(s):\n\n", len(cards))
			for i := range cards {
				fmt.Printf("  %3d. %s\n", i+1, formatCard(cards[i], verbose))
				if verbose {
					fmt.Println()
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "card name contains (case-insensitive)")
	cmd.Flags().StringVar(&colorIdentity, "color-identity", "", `commander color identity, e.g. "UG" ("" for colorless only)`)
	cmd.Flags().StringVar(&cardColors, "colors", "", `card has these colors, e.g. "UB"`)
	cmd.Flags().StringSliceVar(&typeContains, "type", nil, "type line contains (repeatable, matches any)")
	cmd.Flags().StringSliceVar(&textContains, "text", nil, "oracle text contains (repeatable, matches any)")
	cmd.Flags().StringVar(&ftsQuery, "fts", "", "full-text search query (FTS5 syntax)")
	cmd.Flags().Float64Var(&cmcMin, "cmc-min", 0, "minimum mana value")
	cmd.Flags().Float64Var(&cmcMax, "cmc-max", 0, "maximum mana value")
	cmd.Flags().Float64Var(&powerMin, "power-min", 0, "minimum power")
	cmd.Flags().Float64Var(&powerMax, "power-max", 0, "maximum power")
	cmd.Flags().Float64Var(&toughnessMin, "toughness-min", 0, "minimum toughness")
	cmd.Flags().Float64Var(&toughnessMax, "toughness-max", 0, "maximum toughness")
	cmd.Flags().StringSliceVar(&keywords, "keyword", nil, "has keyword (repeatable, matches any)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "has mechanic tag (repeatable, matches any)")
	cmd.Flags().StringVar(&rarity, "rarity", "", "rarity (common, uncommon, rare, mythic)")
	cmd.Flags().BoolVar(&commanderOnly, "commander-legal", false, "only Commander-legal cards")
	cmd.Flags().BoolVar(&gameChanger, "game-changer", false, "only game changers")
	cmd.Flags().BoolVar(&noGameChanger, "no-game-changer", false, "exclude game changers")
	cmd.Flags().BoolVar(&isCommander, "is-commander", false, "only cards that can be your commander")
	cmd.Flags().StringVar(&like, "like", "", "find cards similar to this card")
	cmd.Flags().IntVar(&maxResults, "max", 20, "max results")
	cmd.Flags().StringVar(&sortBy, "sort", "edhrec_rank", "sort column (edhrec_rank, cmc, price_usd, name, released_at, power)")
	cmd.Flags().StringVar(&sortDir, "sort-dir", "ASC", "sort direction (ASC, DESC)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show oracle text")
	cmd.Flags().StringVar(&rawWhere, "sql", "", "extra raw WHERE clause (trusted input only)")

	return cmd
}
