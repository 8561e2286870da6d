// Package cli implements the manaforge command line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dvidal/manaforge/internal/config"
	"github.com/dvidal/manaforge/internal/moxfield"
	"github.com/dvidal/manaforge/internal/storage"
)

// VersionInfo identifies the build.
type VersionInfo struct {
	Version string
	Commit  string
}

// errNoResults signals an empty result set; main turns it into exit
// code 1 so scripts can branch on it.
var errNoResults = errors.New("no results")

// App carries the loaded configuration and shared flag values into
// the subcommands.
type App struct {
	ConfigPath string
	DBPath     string
	DecksDir   string
	Debug      bool

	cfg *config.Config
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// NewRootCommand builds the root command and the shared App the
// subcommands hang off.
func NewRootCommand(info VersionInfo) (*cobra.Command, *App) {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "manaforge",
		Short:         "Commander deckbuilding toolkit",
		Long:          "Card database search, deck statistics, Moxfield sync and EDHREC data for building Commander decks.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.ConfigPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			app.cfg = cfg
			if app.DBPath == "" {
				app.DBPath = cfg.Database.Path
			}
			if app.DecksDir == "" {
				app.DecksDir = cfg.Decks.Dir
			}

			level := slog.LevelInfo
			if app.Debug || cfg.App.DebugMode {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "config file (default is ~/.manaforge/config.toml)")
	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "card database path (default from config)")
	cmd.PersistentFlags().StringVar(&app.DecksDir, "decks", "", "deck directory (default from config)")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "enable debug logging")

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd, app
}

// openDB opens the card database, applying any pending migrations.
func (a *App) openDB() (*storage.DB, error) {
	if _, err := os.Stat(a.DBPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("card database not found at %s (run 'manaforge import' first)", a.DBPath)
	}
	cfg := storage.DefaultConfig(a.DBPath)
	cfg.AutoMigrate = true
	return storage.Open(cfg)
}

// moxfieldClient builds the Moxfield API client from config plus
// environment credentials.
func (a *App) moxfieldClient() (*moxfield.Client, error) {
	creds := config.LoadCredentials()
	if creds.MoxfieldBearerToken == "" {
		return nil, errors.New("MOXFIELD_BEARER_TOKEN not set (put it in .env or the environment)")
	}
	if creds.MoxfieldUsername == "" {
		return nil, errors.New("MOXFIELD_USERNAME not set (put it in .env or the environment)")
	}

	mc := moxfield.DefaultConfig(creds.MoxfieldBearerToken, creds.MoxfieldUsername)
	if timeout, err := a.cfg.GetMoxfieldTimeout(); err == nil && timeout > 0 {
		mc.RequestTimeout = timeout
	}
	if rps := a.cfg.Moxfield.RequestsPerSecond; rps > 0 {
		mc.RequestsPerSecond = rps
	}
	return moxfield.NewClient(mc), nil
}

// IsNoResults reports whether err is the empty-result sentinel.
func IsNoResults(err error) bool {
	return errors.Is(err, errNoResults)
}
