package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dvidal/manaforge/internal/edhrec"
)

// NewEDHRECCommand builds the EDHREC data command.
func NewEDHRECCommand(app *App) *cobra.Command {
	var (
		section    string
		maxPerList int
	)

	cmd := &cobra.Command{
		Use:   "edhrec <commander name>",
		Short: "Show EDHREC data for a commander",
		Long: `Shows EDHREC recommendations for a commander.

Sections: overview (default), top, high-synergy, new, creatures,
instants, sorceries, enchantments, artifacts, mana-artifacts,
planeswalkers, lands, utility-lands, battles, combos, average-deck.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			cfg := edhrec.DefaultConfig()
			if ttl, err := app.cfg.GetEDHRECCacheTTL(); err == nil {
				cfg.CacheTTL = ttl
			}
			client := edhrec.NewClient(cfg)
			ctx := cmd.Context()

			switch section {
			case "overview":
				overview, err := client.CommanderOverview(ctx, name)
				if err != nil {
					return err
				}
				fmt.Printf("  Commander: %s\n", overview.Name)
				fmt.Printf("  Decks on EDHREC: %d\n", overview.NumDecks)
				fmt.Printf("  EDHREC Page: %s\n", overview.URL)

				page, err := client.CommanderPage(ctx, name)
				if err != nil {
					return err
				}
				var show []edhrec.CardList
				for _, tag := range []string{"highsynergycards", "topcards"} {
					if list := page.Section(tag); list != nil {
						show = append(show, *list)
					}
				}
				fmt.Print(edhrec.FormatCardLists(show, 10))
				return nil

			case "combos":
				lists, err := client.Combos(ctx, name)
				if err != nil {
					return err
				}
				if len(lists) == 0 {
					fmt.Println("No combos found.")
					return errNoResults
				}
				for _, list := range lists {
					fmt.Printf("  -- %s --\n", list.Header)
					for _, cv := range list.CardViews {
						fmt.Printf("    * %s\n", cv.Name)
					}
					fmt.Println()
				}
				return nil

			case "average-deck":
				cards, err := client.AverageDeck(ctx, name)
				if err != nil {
					return err
				}
				if len(cards) == 0 {
					fmt.Println("No average deck found.")
					return errNoResults
				}
				fmt.Printf("  Average decklist for %s (%d cards):\n\n", name, len(cards))
				for _, card := range cards {
					fmt.Printf("  1 %s\n", card)
				}
				return nil

			default:
				tag, ok := edhrec.SectionTags[section]
				if !ok {
					return fmt.Errorf("unknown section %q", section)
				}
				page, err := client.CommanderPage(ctx, name)
				if err != nil {
					return err
				}
				list := page.Section(tag)
				if list == nil || len(list.CardViews) == 0 {
					fmt.Printf("No %s found.\n", section)
					return errNoResults
				}
				fmt.Print(edhrec.FormatCardLists([]edhrec.CardList{*list}, maxPerList))
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "overview", "data section to show")
	cmd.Flags().IntVar(&maxPerList, "max", 20, "max cards per section")

	return cmd
}
