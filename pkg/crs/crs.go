// Package crs provides the canonical CRS entity and the resolver that
// assembles it from heterogeneous definitions: authority codes, SRIDs,
// WKT documents, proj4 strings and free-form user input. Resolution is
// backed by the layered catalog in pkg/catalog; parsing and
// equivalence come from pkg/proj.
package crs

import (
	"strconv"
	"strings"

	"github.com/geonym/srsdb/pkg/catalog"
	"github.com/geonym/srsdb/pkg/proj"
)

// CRS is the canonical in-memory value for one reference system. The
// zero value is invalid; resolver methods either return a fully
// populated entity or a zero entity and an error, never a partially
// populated one.
type CRS struct {
	srsID             int64
	srid              int64
	epsgID            int64
	authName          string
	description       string
	projectionAcronym string
	ellipsoidAcronym  string
	wkt               string
	proj4Params       string
	geographic        bool
	axisInverted      bool
	mapUnits          string
	derivedAxes       bool

	// validationHint is transient UI state, never persisted.
	validationHint string
}

// SrsID returns the catalog primary key, zero while unresolved.
func (c *CRS) SrsID() int64 { return c.srsID }

// Srid returns the PostGIS SRID, zero when none is known.
func (c *CRS) Srid() int64 { return c.srid }

// EpsgID returns the EPSG code, zero when the authority is not EPSG.
func (c *CRS) EpsgID() int64 { return c.epsgID }

// AuthID returns the "AUTH:code" identifier, e.g. "EPSG:4326", or an
// empty string for unresolved systems.
func (c *CRS) AuthID() string {
	if c.authName != "" && c.epsgID > 0 {
		return c.authName + ":" + strconv.FormatInt(c.epsgID, 10)
	}
	if c.srsID > catalog.MaxBaselineSrsID {
		return "USER:" + strconv.FormatInt(c.srsID, 10)
	}
	return ""
}

// Description returns the human-readable name.
func (c *CRS) Description() string { return c.description }

// ProjectionAcronym identifies the projection family.
func (c *CRS) ProjectionAcronym() string { return c.projectionAcronym }

// EllipsoidAcronym identifies the reference ellipsoid.
func (c *CRS) EllipsoidAcronym() string { return c.ellipsoidAcronym }

// Wkt returns the well-known-text form when one is known.
func (c *CRS) Wkt() string { return c.wkt }

// Proj4Params returns the normalized parameter string with the proj
// and ellps keys stripped.
func (c *CRS) Proj4Params() string { return c.proj4Params }

// ToProj4 reassembles the full proj4 string from the acronyms and the
// stripped parameter string.
func (c *CRS) ToProj4() string {
	if c.projectionAcronym == "" {
		return ""
	}
	parts := []string{"+proj=" + c.projectionAcronym}
	if c.ellipsoidAcronym != "" {
		parts = append(parts, "+ellps="+c.ellipsoidAcronym)
	}
	if c.proj4Params != "" {
		parts = append(parts, c.proj4Params)
	}
	return proj.Normalize(strings.Join(parts, " "))
}

// IsGeographic reports whether the system is angular
// (latitude/longitude).
func (c *CRS) IsGeographic() bool { return c.geographic }

// AxisInverted reports whether the authority defines the axes in
// latitude/longitude order, inverse of the internal x/y convention.
func (c *CRS) AxisInverted() bool { return c.axisInverted }

// MapUnits returns the unit of the coordinate axes ("degrees", "m",
// "ft", ...), empty while unresolved.
func (c *CRS) MapUnits() string { return c.mapUnits }

// ValidationHint returns the transient UI hint attached by a
// validation strategy.
func (c *CRS) ValidationHint() string { return c.validationHint }

// SetValidationHint attaches a transient UI hint. The hint is never
// persisted and does not affect equality.
func (c *CRS) SetValidationHint(hint string) { c.validationHint = hint }

// IsValid reports whether the entity describes a usable system: both
// acronyms and parameters are populated, and either a catalog id is
// set or axes and units were independently derived from the
// definition.
func (c *CRS) IsValid() bool {
	if c.projectionAcronym == "" || c.ellipsoidAcronym == "" {
		return false
	}
	if c.proj4Params == "" {
		return false
	}
	return c.srsID > 0 || c.derivedAxes
}

// Equal reports whether two entities denote the same reference
// system: both carry the same non-zero srs_id from the same
// authority, or their proj4 representations pass the semantic
// equivalence check.
func (c *CRS) Equal(other *CRS) bool {
	if other == nil {
		return false
	}
	if c.srsID > 0 && c.srsID == other.srsID &&
		c.authName == other.authName {
		return true
	}

	a, errA := proj.ParseProj4(c.ToProj4())
	b, errB := proj.ParseProj4(other.ToProj4())
	if errA != nil || errB != nil {
		return false
	}
	mode := proj.Full
	if a.Geographic {
		mode = proj.Geographic
	}
	return proj.Equivalent(a, b, mode)
}

// NotEqual is the logical negation of Equal.
func (c *CRS) NotEqual(other *CRS) bool {
	return !c.Equal(other)
}

// fromRecord assembles an entity from a catalog row. The stored proj4
// string provides parameters and units; the stored is_geo column is
// authoritative for classification.
func fromRecord(rec catalog.Record) (CRS, error) {
	sr, err := proj.ParseProj4(rec.Proj4)
	if err != nil {
		return CRS{}, err
	}
	c := fromSR(sr)
	c.srsID = rec.SrsID
	c.srid = rec.Srid
	c.epsgID = rec.EpsgID
	c.authName = rec.AuthName
	c.description = rec.Description
	if rec.Wkt != "" {
		c.wkt = rec.Wkt
	}
	c.geographic = rec.IsGeo
	// EPSG defines geographic systems in latitude/longitude order
	c.axisInverted = c.geographic && c.authName == "EPSG"
	return c, nil
}

// fromSR assembles an unresolved entity from a structured
// representation. Axes and units come from the parse, so the entity
// is valid even without a catalog id.
func fromSR(sr *proj.SR) CRS {
	return CRS{
		projectionAcronym: sr.Name,
		ellipsoidAcronym:  sr.Ellps,
		proj4Params:       sr.ParamsString(),
		geographic:        sr.Geographic,
		mapUnits:          sr.Units,
		derivedAxes:       true,
	}
}
