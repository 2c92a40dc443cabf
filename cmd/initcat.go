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
	"os"

	"github.com/dustin/go-humanize"
	"github.com/geonym/srsdb/internal/iocatalog"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getInitCmd returns the init command.
func getInitCmd() *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the baseline catalog",
		Long: `Create the read-only baseline catalog from the built-in set of
well-known reference systems, and bootstrap an empty user catalog
next to it.

An existing baseline is left untouched unless --force is given.

Examples:
  srsdb init
  srsdb init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(force)
		},
	}

	initCmd.Flags().BoolVarP(&force, "force", "f",
		false, "rebuild the baseline catalog if it exists")

	return initCmd
}

func runInit(force bool) error {
	ctx := context.Background()
	path := cfg.BaselinePath()

	if _, err := os.Stat(path); err == nil {
		if !force {
			gn.Info("Baseline catalog already exists at <em>%s</em>", path)
			gn.Info("Use --force to rebuild it")
			return nil
		}
		if err = os.Remove(path); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	recs, err := iocatalog.BaselineSeed()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iocatalog.CreateBaseline(ctx, path, recs); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Created baseline catalog with %s systems at <em>%s</em>",
		humanize.Comma(int64(len(recs))), path)

	// Bootstrap the overlay so the first resolution does not have to.
	overlay, err := iocatalog.NewOverlayTier(cfg.OverlayPath())
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer overlay.Close()
	gn.Info("User catalog is at <em>%s</em>", cfg.OverlayPath())

	return nil
}
