/*
Copyright © 2026 Geonym Project

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/geonym/srsdb/internal/iosync"
	"github.com/geonym/srsdb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getSyncCmd returns the sync command.
func getSyncCmd() *cobra.Command {
	var (
		host     string
		port     int
		user     string
		password string
		database string
	)

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh user systems from a PostGIS source",
		Long: `Refresh the proj4 definitions of authority-tagged user systems
from the spatial_ref_sys table of a PostGIS database.

Only user systems that carry an authority code are considered.
Connection settings come from the config file and can be overridden
with flags.

Examples:
  srsdb sync
  srsdb sync --host gis.example.org --database gis`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if cmd.Flags().Changed("host") {
				opts = append(opts, config.OptSyncHost(host))
			}
			if cmd.Flags().Changed("port") {
				opts = append(opts, config.OptSyncPort(port))
			}
			if cmd.Flags().Changed("user") {
				opts = append(opts, config.OptSyncUser(user))
			}
			if cmd.Flags().Changed("password") {
				opts = append(opts, config.OptSyncPassword(password))
			}
			if cmd.Flags().Changed("database") {
				opts = append(opts, config.OptSyncDatabase(database))
			}
			cfg.Update(opts)
			return runSync()
		},
	}

	syncCmd.Flags().StringVar(&host, "host", "", "PostGIS host")
	syncCmd.Flags().IntVar(&port, "port", 0, "PostGIS port")
	syncCmd.Flags().StringVar(&user, "user", "", "PostGIS user")
	syncCmd.Flags().StringVar(&password, "password", "", "PostGIS password")
	syncCmd.Flags().StringVar(&database, "database", "", "PostGIS database")

	return syncCmd
}

func runSync() error {
	ctx := context.Background()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	source, err := iosync.NewPostgisSource(ctx, &cfg.Sync)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer source.Close()

	gn.Info("Connected to definition source: %s@%s:%d/%s",
		cfg.Sync.User, cfg.Sync.Host, cfg.Sync.Port, cfg.Sync.Database)

	updated, err := iosync.Sync(ctx, store, source, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if updated < 0 {
		gn.Warn("Sync finished with %d failed rows", -updated)
		return fmt.Errorf("sync: %d rows failed", -updated)
	}

	gn.Info("Sync complete, %d user systems updated", updated)
	return nil
}
