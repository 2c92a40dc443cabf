// Package proj provides the structured CRS capability consumed by the
// resolver: parsing WKT and proj4 definitions into a comparable
// representation, canonical normalization of proj4 strings, and
// equivalence testing between two representations.
//
// The package is pure: no I/O, no catalog access. The resolver
// orchestrates candidate selection; this package only answers "what is
// this definition" and "are these two the same system".
package proj

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"

	"github.com/geonym/srsdb/pkg/errcode"
)

// SR is the structured representation of a spatial reference system
// extracted from a proj4 string or a WKT document.
type SR struct {
	// Name is the projection acronym, e.g. "longlat", "tmerc", "merc".
	Name string

	// Ellps is the ellipsoid acronym, e.g. "WGS84", "GRS80", "bessel".
	Ellps string

	// Datum is the datum name when one is declared, e.g. "WGS84",
	// "NAD83".
	Datum string

	// Units of the coordinate axes, "degrees" for geographic systems,
	// otherwise a linear unit such as "m" or "us-ft".
	Units string

	// Geographic is true for angular (latitude/longitude) systems.
	Geographic bool

	// Params holds the remaining +key=value pairs with proj and ellps
	// stripped. Keys are lowercased, flag-only keys map to "".
	Params map[string]string
}

// IsWKT reports whether a definition looks like a WKT document.
func IsWKT(def string) bool {
	keywords := []string{"GEOGCS", "GEOCCS", "PROJCS", "LOCAL_CS", "COMPD_CS"}
	for _, kw := range keywords {
		if strings.Contains(def, kw) {
			return true
		}
	}
	return false
}

// IsProj4 reports whether a definition looks like a proj4 parameter
// string.
func IsProj4(def string) bool {
	def = strings.TrimSpace(def)
	return len(def) >= 1 && def[0] == '+'
}

// Parse parses a WKT- or proj4-formatted definition into an SR.
func Parse(def string) (*SR, error) {
	def = strings.TrimSpace(def)
	if IsWKT(def) {
		return parseWkt(def)
	}
	if IsProj4(def) {
		return parseProj4(def)
	}
	return nil, parseError(def)
}

// ParseProj4 parses a proj4 parameter string into an SR.
// Fails when the string carries no +proj key.
func ParseProj4(p4 string) (*SR, error) {
	return parseProj4(p4)
}

func parseProj4(p4 string) (*SR, error) {
	tokens := tokenize(p4)
	if len(tokens) == 0 {
		return nil, parseError(p4)
	}

	sr := &SR{Params: make(map[string]string)}
	for _, tk := range tokens {
		switch tk.key {
		case "proj":
			sr.Name = tk.val
		case "ellps":
			sr.Ellps = tk.val
		case "datum":
			sr.Datum = tk.val
			sr.Params[tk.key] = tk.val
		case "units":
			sr.Units = tk.val
			sr.Params[tk.key] = tk.val
		default:
			sr.Params[tk.key] = tk.val
		}
	}

	if sr.Name == "" {
		return nil, parseError(p4)
	}

	sr.Geographic = isGeographicProj(sr.Name)

	// Datum implies an ellipsoid when none is given explicitly.
	if sr.Ellps == "" && sr.Datum != "" {
		if dd, ok := datumDefs[strings.ToLower(sr.Datum)]; ok {
			sr.Ellps = dd.ellipse
		}
	}
	if sr.Ellps == "" {
		sr.Ellps = deriveEllipsoid(sr.Params)
	}
	if sr.Ellps == "" {
		// proj4 default ellipsoid
		sr.Ellps = "WGS84"
	}

	if sr.Units == "" {
		if sr.Geographic {
			sr.Units = "degrees"
		} else {
			sr.Units = "m"
		}
	}

	return sr, nil
}

// isGeographicProj reports whether a projection acronym denotes an
// angular, datum-only system.
func isGeographicProj(name string) bool {
	switch name {
	case "longlat", "latlong", "lonlat", "latlon":
		return true
	}
	return false
}

// deriveEllipsoid maps explicit +a/+rf (or +a/+b) semi-axis parameters
// back to a known ellipsoid acronym. Returns "" when the axes match no
// catalogued ellipsoid.
func deriveEllipsoid(params map[string]string) string {
	a, okA := params["a"]
	if !okA {
		return ""
	}
	for acronym, e := range ellipsoidDefs {
		if numEqual(a, e.a) {
			if rf, ok := params["rf"]; ok && !numEqual(rf, e.rf) {
				continue
			}
			return acronym
		}
	}
	return ""
}

// Proj4 reassembles a full canonical proj4 string from the structured
// representation.
func (sr *SR) Proj4() string {
	var parts []string
	parts = append(parts, "+proj="+sr.Name)
	if sr.Ellps != "" {
		parts = append(parts, "+ellps="+sr.Ellps)
	}
	for _, k := range sortedKeys(sr.Params) {
		v := sr.Params[k]
		if v == "" {
			parts = append(parts, "+"+k)
		} else {
			parts = append(parts, "+"+k+"="+v)
		}
	}
	return strings.Join(parts, " ")
}

// ParamsString returns the normalized parameter string with the proj
// and ellps keys stripped, the form stored on the CRS entity.
func (sr *SR) ParamsString() string {
	var parts []string
	for _, k := range sortedKeys(sr.Params) {
		v := sr.Params[k]
		if v == "" {
			parts = append(parts, "+"+k)
		} else {
			parts = append(parts, "+"+k+"="+v)
		}
	}
	return strings.Join(parts, " ")
}

func parseError(def string) error {
	short := def
	if len(short) > 60 {
		short = short[:60] + "..."
	}
	return &gn.Error{
		Code: errcode.ProjParseError,
		Msg:  "Cannot parse CRS definition <em>%s</em>",
		Vars: []any{short},
		Err: fmt.Errorf(
			"unsupported definition %q; only proj4 and WKT are supported",
			def,
		),
	}
}
