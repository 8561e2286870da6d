package main

import (
	"fmt"
	"os"

	"github.com/dvidal/manaforge/internal/cli"
)

var (
	version = "0.1.0-dev"
	commit  = "main"
)

func main() {
	root, app := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewSearchCommand(app))
	root.AddCommand(cli.NewLookupCommand(app))
	root.AddCommand(cli.NewIdentityCommand(app))
	root.AddCommand(cli.NewStatsCommand(app))
	root.AddCommand(cli.NewSyncCommand(app))
	root.AddCommand(cli.NewPullCommand(app))
	root.AddCommand(cli.NewExportCommand(app))
	root.AddCommand(cli.NewEDHRECCommand(app))
	root.AddCommand(cli.NewServeCommand(app))
	root.AddCommand(cli.NewImportCommand(app))
	root.AddCommand(cli.NewVersionCommand(cli.VersionInfo{Version: version, Commit: commit}))

	if err := root.Execute(); err != nil {
		if !cli.IsNoResults(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
