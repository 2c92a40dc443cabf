// Package catalog defines the layered CRS record store: a read-only
// baseline tier of authority-issued systems and a writable overlay
// tier of user-registered systems, composed behind one Store with
// fixed precedence rules. Implementations live in internal/iocatalog.
package catalog

import (
	"context"
	"errors"
	"strconv"
)

const (
	// MaxBaselineSrsID is the highest srs_id reserved for the baseline
	// tier. Overlay (user) records start above it. The partition lets
	// id-based lookups route to a single tier without ambiguity.
	MaxBaselineSrsID int64 = 100_000

	// UserCRSStartID is the first srs_id available to the overlay
	// tier.
	UserCRSStartID int64 = MaxBaselineSrsID + 1
)

// ErrNotFound is the lookup-miss sentinel. A miss is an expected
// outcome, not a failure: callers decide whether to register.
var ErrNotFound = errors.New("catalog: record not found")

// Record is one immutable catalog row describing a reference system.
type Record struct {
	// SrsID is the catalog primary key.
	SrsID int64

	// Description is the human-readable name, e.g. "WGS 84".
	Description string

	// ProjectionAcronym identifies the projection family, e.g.
	// "longlat", "tmerc".
	ProjectionAcronym string

	// EllipsoidAcronym identifies the reference ellipsoid, e.g.
	// "WGS84".
	EllipsoidAcronym string

	// Proj4 is the full canonical-normalized proj4 string.
	Proj4 string

	// Srid is the PostGIS SRID, zero when the system has none.
	Srid int64

	// AuthName is the code authority, e.g. "EPSG". Empty for purely
	// user-defined systems.
	AuthName string

	// EpsgID is the EPSG code, zero when the authority is not EPSG.
	EpsgID int64

	// Wkt is the well-known-text form when the catalog carries one.
	Wkt string

	// IsGeo marks angular (latitude/longitude) systems.
	IsGeo bool

	// Deprecated marks authority-retired systems kept for lookups.
	Deprecated bool
}

// IsUser reports whether the record belongs to the overlay tier.
func (r Record) IsUser() bool {
	return r.SrsID > MaxBaselineSrsID
}

// AuthID returns the "AUTH:code" identifier, or "USER:srsid" for
// overlay records without an authority.
func (r Record) AuthID() string {
	if r.AuthName != "" && r.EpsgID > 0 {
		return authLabel(r.AuthName, r.EpsgID)
	}
	if r.IsUser() {
		return authLabel("USER", r.SrsID)
	}
	return ""
}

// Tier is one queryable record store. Both tiers answer exact-match
// queries and full scans; only the overlay tier accepts writes.
type Tier interface {
	// BySrsID returns the record with the given primary key, or
	// ErrNotFound.
	BySrsID(ctx context.Context, id int64) (Record, error)

	// BySrid returns the first record with the given PostGIS SRID, or
	// ErrNotFound.
	BySrid(ctx context.Context, srid int64) (Record, error)

	// ByEpsg returns the record with the given EPSG code, or
	// ErrNotFound.
	ByEpsg(ctx context.Context, code int64) (Record, error)

	// ByProj4 returns the first record whose canonical-normalized
	// proj4 string equals the argument, or ErrNotFound.
	ByProj4(ctx context.Context, normalized string) (Record, error)

	// ByDescription returns the first record with the exact
	// description, or ErrNotFound.
	ByDescription(ctx context.Context, name string) (Record, error)

	// ByAcronyms returns all records sharing the projection and
	// ellipsoid acronym pair, ordered by srs_id. The slice is empty
	// when nothing matches; no ErrNotFound.
	ByAcronyms(ctx context.Context, projAcronym, ellipsoidAcronym string) ([]Record, error)

	// Each performs a full scan in srs_id order, stopping on the first
	// error from fn.
	Each(ctx context.Context, fn func(Record) error) error

	// Close releases the underlying store.
	Close() error
}

// WritableTier extends Tier with the overlay-tier write operations.
type WritableTier interface {
	Tier

	// Insert appends a record, allocating the next srs_id above
	// MaxBaselineSrsID, and returns the new id.
	Insert(ctx context.Context, rec Record) (int64, error)

	// UpdateProj4 replaces the stored proj4 string of an existing
	// record. Used by sync reconciliation.
	UpdateProj4(ctx context.Context, srsID int64, proj4 string) error
}

func authLabel(auth string, id int64) string {
	return auth + ":" + strconv.FormatInt(id, 10)
}
