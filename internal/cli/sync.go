package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dvidal/manaforge/internal/moxfield"
)

// NewSyncCommand builds the Moxfield push command.
func NewSyncCommand(app *App) *cobra.Command {
	var (
		all        bool
		dryRun     bool
		listRemote bool
	)

	cmd := &cobra.Command{
		Use:   "sync [decklist.md ...]",
		Short: "Push local decklists to Moxfield",
		Long:  "Pushes decklists to Moxfield, creating or replacing the remote deck. The local file is authoritative.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.moxfieldClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if listRemote {
				decks, err := client.ListUserDecks(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Remote decks for %s (%d):\n", client.Username(), len(decks))
				for _, d := range decks {
					fmt.Printf("  %-40s %s  https://www.moxfield.com/decks/%s\n", d.Name, d.Format, d.PublicID)
				}
				return nil
			}

			paths := args
			if all {
				paths, err = filepath.Glob(filepath.Join(app.DecksDir, "*.md"))
				if err != nil {
					return err
				}
				sort.Strings(paths)
			}
			if len(paths) == 0 {
				return errors.New("nothing to sync: pass decklist files or --all")
			}

			remote, err := client.ListUserDecks(ctx)
			if err != nil {
				return err
			}

			syncer := moxfield.NewSyncer(client, slog.Default())
			failed := 0
			for _, path := range paths {
				result, err := syncer.SyncFile(ctx, path, remote, dryRun)
				if err != nil {
					failed++
					fmt.Printf("  %-40s ERROR: %v\n", filepath.Base(path), err)
					continue
				}
				line := fmt.Sprintf("  %-40s %s", result.DeckName, result.Action)
				if result.Reason != "" {
					line += " (" + result.Reason + ")"
				}
				if url := result.URL(); url != "" {
					line += "  " + url
				}
				fmt.Println(line)
			}
			if failed > 0 {
				return fmt.Errorf("%d deck(s) failed to sync", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "sync every .md file in the deck directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and resolve without writing to Moxfield")
	cmd.Flags().BoolVar(&listRemote, "list-remote", false, "list remote decks and exit")

	return cmd
}

// NewPullCommand builds the Moxfield pull command.
func NewPullCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull [name filter ...]",
		Short: "Download Moxfield decks into the deck directory",
		Long:  "Downloads remote decks as markdown files. Decks already linked to a local file are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.moxfieldClient()
			if err != nil {
				return err
			}

			syncer := moxfield.NewSyncer(client, slog.Default())
			results, err := syncer.Pull(cmd.Context(), app.DecksDir, args)
			if err != nil {
				return err
			}

			pulled := 0
			for _, r := range results {
				if r.Skipped {
					fmt.Printf("  %-40s already linked, skipped\n", r.Name)
					continue
				}
				pulled++
				fmt.Printf("  %-40s %d cards -> %s\n", r.Name, r.Cards, r.Path)
			}
			fmt.Printf("Pulled %d deck(s).\n", pulled)
			return nil
		},
	}
	return cmd
}
