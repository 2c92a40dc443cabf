package crs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/gnames/gn"
	gocache "github.com/patrickmn/go-cache"

	"github.com/geonym/srsdb/pkg/catalog"
	"github.com/geonym/srsdb/pkg/errcode"
	"github.com/geonym/srsdb/pkg/proj"
)

// Resolver turns CRS definitions into canonical entities backed by
// the layered catalog. Resolution is synchronous and single-threaded;
// the context only propagates into catalog I/O.
type Resolver struct {
	store *catalog.Store
	equiv proj.EquivFunc
	cache *gocache.Cache
	log   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEquivFunc replaces the semantic equivalence test. Tests use it
// to count or stub comparisons.
func WithEquivFunc(fn proj.EquivFunc) Option {
	return func(r *Resolver) {
		r.equiv = fn
	}
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// NewResolver creates a Resolver over a composed catalog store.
// Resolved definitions are memoized per Resolver; there is no global
// cache state.
func NewResolver(store *catalog.Store, opts ...Option) *Resolver {
	res := &Resolver{
		store: store,
		equiv: proj.Equivalent,
		cache: gocache.New(gocache.NoExpiration, 0),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

var (
	reAuthority = regexp.MustCompile(`(?i)^(epsg|postgis|internal)\s*:\s*(\d+)$`)
	reStringDef = regexp.MustCompile(`(?is)^(wkt|proj4)\s*:\s*(.+)$`)
	reWmsLabel  = regexp.MustCompile(`(?i)^([a-z]+)\s*:\s*(\d+(?:\.\d+)?)$`)
)

// FromString resolves a definition that names its own format:
// "epsg:4326", "postgis:4326", "internal:100001", "wkt:GEOGCS[...]",
// "proj4:+proj=longlat ...", raw WKT, or a raw proj4 string.
func (r *Resolver) FromString(ctx context.Context, def string) (CRS, error) {
	def = strings.TrimSpace(def)

	if m := reAuthority.FindStringSubmatch(def); m != nil {
		id, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return CRS{}, formatError(def, err)
		}
		switch strings.ToLower(m[1]) {
		case "epsg":
			return r.FromEpsg(ctx, id)
		case "postgis":
			return r.FromSrid(ctx, id)
		case "internal":
			return r.FromSrsID(ctx, id)
		}
	}
	if m := reStringDef.FindStringSubmatch(def); m != nil {
		switch strings.ToLower(m[1]) {
		case "wkt":
			return r.FromWkt(ctx, m[2])
		case "proj4":
			return r.FromProj4(ctx, m[2])
		}
	}
	if proj.IsWKT(def) {
		return r.FromWkt(ctx, def)
	}
	if proj.IsProj4(def) {
		return r.FromProj4(ctx, def)
	}
	return CRS{}, formatError(def, fmt.Errorf("no known format detected"))
}

// FromUserInput resolves the broad user-facing format taxonomy:
// EPSG/EPSGA codes, URN CRS identifiers, AUTO codes, well-known
// names, OGC or ESRI-flavored WKT, and proj4 strings. ESRI WKT is
// morphed into OGC form before parsing.
func (r *Resolver) FromUserInput(ctx context.Context, def string) (CRS, error) {
	input, err := proj.ClassifyUserInput(def)
	if err != nil {
		return CRS{}, err
	}
	switch input.Kind {
	case proj.InputEpsg:
		return r.FromEpsg(ctx, input.EpsgID)
	case proj.InputWkt:
		return r.FromWkt(ctx, input.Definition)
	default:
		return r.FromProj4(ctx, input.Definition)
	}
}

// FromOgcWmsCrs resolves an OGC WMS CRS label such as "EPSG:4326" or
// "CRS:84" via the EPSG path.
func (r *Resolver) FromOgcWmsCrs(ctx context.Context, label string) (CRS, error) {
	label = strings.TrimSpace(label)
	m := reWmsLabel.FindStringSubmatch(label)
	if m == nil {
		return CRS{}, wmsLabelError(label)
	}
	auth := strings.ToUpper(m[1])
	code, err := strconv.ParseInt(strings.Split(m[2], ".")[0], 10, 64)
	if err != nil {
		return CRS{}, wmsLabelError(label)
	}

	switch auth {
	case "EPSG", "EPSGA":
		return r.FromEpsg(ctx, code)
	case "CRS":
		// the WMS 1.3 shorthand namespace
		switch code {
		case 84:
			return r.FromEpsg(ctx, 4326)
		case 83:
			return r.FromEpsg(ctx, 4269)
		case 27:
			return r.FromEpsg(ctx, 4267)
		}
	}
	return CRS{}, wmsLabelError(label)
}

// FromSrsID resolves a catalog primary key. The reserved-id threshold
// routes the lookup to exactly one tier.
func (r *Resolver) FromSrsID(ctx context.Context, id int64) (CRS, error) {
	rec, err := r.store.BySrsID(ctx, id)
	if err != nil {
		return CRS{}, err
	}
	return fromRecord(rec)
}

// FromSrid resolves a PostGIS SRID, baseline tier first.
func (r *Resolver) FromSrid(ctx context.Context, srid int64) (CRS, error) {
	rec, err := r.store.BySrid(ctx, srid)
	if err != nil {
		return CRS{}, err
	}
	return fromRecord(rec)
}

// FromEpsg resolves an EPSG code, baseline tier first.
func (r *Resolver) FromEpsg(ctx context.Context, code int64) (CRS, error) {
	rec, err := r.store.ByEpsg(ctx, code)
	if err != nil {
		return CRS{}, err
	}
	return fromRecord(rec)
}

// FromProj4 resolves a proj4 parameter string. When the catalog holds
// an equivalent record the canonical entity is returned; otherwise an
// unresolved but valid entity is built from the parse alone.
func (r *Resolver) FromProj4(ctx context.Context, p4 string) (CRS, error) {
	key := "proj4:" + proj.Normalize(p4)
	if hit, ok := r.cache.Get(key); ok {
		return hit.(CRS), nil
	}

	sr, err := proj.ParseProj4(p4)
	if err != nil {
		return CRS{}, err
	}

	c, err := r.resolveSR(ctx, sr, p4, "")
	if err != nil {
		return CRS{}, err
	}
	r.cache.SetDefault(key, c)
	return c, nil
}

// FromWkt resolves a WKT document the same way FromProj4 resolves a
// parameter string.
func (r *Resolver) FromWkt(ctx context.Context, wkt string) (CRS, error) {
	wkt = strings.TrimSpace(wkt)
	key := "wkt:" + wkt
	if hit, ok := r.cache.Get(key); ok {
		return hit.(CRS), nil
	}

	sr, err := proj.Parse(wkt)
	if err != nil {
		return CRS{}, err
	}

	c, err := r.resolveSR(ctx, sr, sr.Proj4(), wktName(wkt))
	if err != nil {
		return CRS{}, err
	}
	if c.wkt == "" {
		c.wkt = wkt
	}
	r.cache.SetDefault(key, c)
	return c, nil
}

// resolveSR routes a structured representation through the
// equivalence matcher and assembles the entity. A lookup miss is not
// an error here: the unresolved entity is still returned valid, and
// the caller may register it.
func (r *Resolver) resolveSR(
	ctx context.Context,
	sr *proj.SR,
	original string,
	name string,
) (CRS, error) {
	rec, found, err := r.findMatchingProj(ctx, sr, original, name)
	if err != nil {
		return CRS{}, err
	}
	if found {
		return fromRecord(rec)
	}

	r.log.Debug("no catalog match, building unresolved entity",
		"projection", sr.Name, "ellipsoid", sr.Ellps)
	c := fromSR(sr)
	if name != "" {
		c.description = name
	}
	return c, nil
}

// SaveAsUserCRS appends the entity's proj4 representation under the
// given name into the overlay tier and returns the allocated srs_id.
// The entity itself is never mutated: callers re-resolve to pick up
// the new id. A failed store write leaves both the entity and the
// catalog unchanged.
func (r *Resolver) SaveAsUserCRS(
	ctx context.Context,
	c *CRS,
	name string,
) (int64, error) {
	if !c.IsValid() {
		return 0, &gn.Error{
			Code: errcode.CatalogInsertError,
			Msg:  "Cannot register an invalid CRS",
			Err:  errors.New("SaveAsUserCRS on invalid entity"),
		}
	}

	rec := catalog.Record{
		Description:       name,
		ProjectionAcronym: c.projectionAcronym,
		EllipsoidAcronym:  c.ellipsoidAcronym,
		Proj4:             c.ToProj4(),
		Wkt:               c.wkt,
		IsGeo:             c.geographic,
	}
	id, err := r.store.Register(ctx, rec)
	if err != nil {
		return 0, err
	}
	// memoized resolutions predate the new record; a re-resolve of the
	// same definition must now find it
	r.cache.Flush()
	r.log.Info("registered user CRS", "srs_id", id, "name", name)
	return id, nil
}

// FlushCache drops all memoized resolutions. Callers that keep a
// Resolver across catalog maintenance (such as a sync run) call it so
// later resolutions see the updated records.
func (r *Resolver) FlushCache() {
	r.cache.Flush()
}

// wktName extracts the name of the root WKT object, used for the
// description match in the exact pass.
func wktName(wkt string) string {
	i := strings.IndexByte(wkt, '"')
	if i < 0 {
		return ""
	}
	j := strings.IndexByte(wkt[i+1:], '"')
	if j < 0 {
		return ""
	}
	return wkt[i+1 : i+1+j]
}

func formatError(def string, err error) error {
	short := def
	if len(short) > 60 {
		short = short[:60] + "..."
	}
	return &gn.Error{
		Code: errcode.FormatError,
		Msg:  "Unrecognized CRS definition <em>%s</em>",
		Vars: []any{short},
		Err:  fmt.Errorf("cannot detect format of %q: %w", def, err),
	}
}

func wmsLabelError(label string) error {
	return &gn.Error{
		Code: errcode.WmsCrsLabelError,
		Msg:  "Cannot parse OGC WMS CRS label <em>%s</em>",
		Vars: []any{label},
		Err:  fmt.Errorf("unparsable WMS CRS label %q", label),
	}
}
