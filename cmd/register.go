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

	"github.com/geonym/srsdb/pkg/catalog"
	"github.com/geonym/srsdb/pkg/crs"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getRegisterCmd returns the register command.
func getRegisterCmd() *cobra.Command {
	var name string

	registerCmd := &cobra.Command{
		Use:   "register <definition>",
		Short: "Register a definition as a user reference system",
		Long: `Resolve a definition and, when it is not in the catalog yet, save
it into the writable user catalog under the given name.

A definition that already resolves to a catalog entry is reported and
left alone.

Examples:
  srsdb register '+proj=somerc +lat_0=46.9 +lon_0=7.4 ...' --name 'Site grid'
  srsdb register 'wkt:PROJCS[...]' -n 'Legacy survey'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(args[0], name)
		},
	}

	registerCmd.Flags().StringVarP(&name, "name", "n", "",
		"description stored with the user system (required)")
	registerCmd.MarkFlagRequired("name")

	return registerCmd
}

func runRegister(def, name string) error {
	ctx := context.Background()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	resolver := crs.NewResolver(store)
	res, err := resolveDefinition(ctx, resolver, def)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if res.SrsID() > 0 {
		gn.Info("The definition already resolves to srs_id %d (%s)",
			res.SrsID(), res.Description())
		return nil
	}

	id, err := resolver.SaveAsUserCRS(ctx, &res, name)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Registered <em>%s</em> as user system %d", name, id)
	if id > catalog.MaxBaselineSrsID {
		gn.Info("Resolve it again to pick up the catalog entry")
	}
	return nil
}
