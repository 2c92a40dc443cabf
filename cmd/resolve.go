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
	"errors"
	"fmt"

	"github.com/geonym/srsdb/pkg/catalog"
	"github.com/geonym/srsdb/pkg/crs"
	"github.com/geonym/srsdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// resolveResult is the CLI projection of a resolved reference system.
type resolveResult struct {
	SrsID             int64  `json:"srsId,omitempty"`
	AuthID            string `json:"authId,omitempty"`
	Description       string `json:"description,omitempty"`
	ProjectionAcronym string `json:"projectionAcronym,omitempty"`
	EllipsoidAcronym  string `json:"ellipsoidAcronym,omitempty"`
	Proj4             string `json:"proj4"`
	IsGeographic      bool   `json:"isGeographic"`
	MapUnits          string `json:"mapUnits,omitempty"`
	InCatalog         bool   `json:"inCatalog"`
	UserDefined       bool   `json:"userDefined"`
}

// getResolveCmd returns the resolve command.
func getResolveCmd() *cobra.Command {
	var format string

	resolveCmd := &cobra.Command{
		Use:   "resolve <definition>",
		Short: "Resolve a definition to a reference system",
		Long: `Resolve a reference system definition against the catalog.

The definition can be given in any of the supported forms:

  EPSG:4326                     authority code
  urn:ogc:def:crs:EPSG::4326    OGC URN
  CRS:84                        OGC WMS label
  proj4:+proj=longlat ...       prefixed proj4 string
  wkt:GEOGCS["WGS 84",...]      prefixed WKT string
  +proj=longlat +datum=WGS84    bare proj4 string
  GEOGCS["WGS 84",...]          bare WKT string
  WGS84                         well-known name

Examples:
  srsdb resolve EPSG:4326
  srsdb resolve 'proj4:+proj=merc +a=6378137 +b=6378137'
  srsdb resolve CRS:84 --format pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(args[0], format)
		},
	}

	resolveCmd.Flags().StringVarP(&format, "format", "F", "text",
		"output format: text, compact, pretty")

	return resolveCmd
}

func runResolve(def, format string) error {
	ctx := context.Background()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	resolver := crs.NewResolver(store)
	res, err := resolveDefinition(ctx, resolver, def)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			gn.Warn("The definition is valid but not in the catalog")
			return err
		}
		gn.PrintErrorMessage(err)
		return err
	}

	return printResult(&res, format)
}

// resolveDefinition tries the self-naming formats first and falls
// back to the wider user-input taxonomy (well-known names, URN
// identifiers, AUTO codes, ESRI WKT).
func resolveDefinition(
	ctx context.Context,
	resolver *crs.Resolver,
	def string,
) (crs.CRS, error) {
	res, err := resolver.FromString(ctx, def)
	var gerr *gn.Error
	if err != nil && errors.As(err, &gerr) &&
		gerr.Code == errcode.FormatError {
		return resolver.FromUserInput(ctx, def)
	}
	return res, err
}

func printResult(c *crs.CRS, format string) error {
	res := resolveResult{
		SrsID:             c.SrsID(),
		AuthID:            c.AuthID(),
		Description:       c.Description(),
		ProjectionAcronym: c.ProjectionAcronym(),
		EllipsoidAcronym:  c.EllipsoidAcronym(),
		Proj4:             c.ToProj4(),
		IsGeographic:      c.IsGeographic(),
		MapUnits:          c.MapUnits(),
		InCatalog:         c.SrsID() > 0,
		UserDefined:       c.SrsID() > catalog.MaxBaselineSrsID,
	}

	switch format {
	case "compact", "pretty":
		enc := gnfmt.GNjson{Pretty: format == "pretty"}
		out, err := enc.Encode(res)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		fmt.Println(string(out))
	default:
		printText(res)
	}

	if !c.IsValid() {
		gn.Warn("The definition did not produce a complete system")
	}
	return nil
}

func printText(res resolveResult) {
	if res.InCatalog {
		fmt.Printf("srs_id:      %d\n", res.SrsID)
	} else {
		fmt.Println("srs_id:      not in catalog")
	}
	if res.AuthID != "" {
		fmt.Printf("authority:   %s\n", res.AuthID)
	}
	if res.Description != "" {
		fmt.Printf("description: %s\n", res.Description)
	}
	fmt.Printf("projection:  %s\n", res.ProjectionAcronym)
	fmt.Printf("ellipsoid:   %s\n", res.EllipsoidAcronym)
	fmt.Printf("proj4:       %s\n", res.Proj4)
	fmt.Printf("geographic:  %t\n", res.IsGeographic)
	if res.MapUnits != "" {
		fmt.Printf("units:       %s\n", res.MapUnits)
	}
}
