package crs

import (
	"context"

	"github.com/geonym/srsdb/pkg/proj"
)

// Strategy is an injected validation step. It may repair the entity
// in place and reports whether it did. Strategies replace the
// process-wide validation hook of older designs: they are passed
// explicitly, so the core carries no hidden global state.
type Strategy func(*CRS) bool

// wgs84FallbackProj4 is the hard-coded safe default Validate falls
// back to.
const wgs84FallbackProj4 = "+proj=longlat +datum=WGS84 +no_defs"

func parseFallback() (*proj.SR, error) {
	return proj.ParseProj4(wgs84FallbackProj4)
}

// Validate is the best-effort recovery path: unlike the From*
// constructors it never leaves the entity invalid. It tries the
// injected strategies first, then re-derivation from any partial
// authority information, and finally substitutes a geographic WGS84
// default. Upstream failures are intentionally masked; callers that
// need strictness use the From* constructors instead.
func (r *Resolver) Validate(
	ctx context.Context,
	c *CRS,
	strategies ...Strategy,
) {
	if c.IsValid() {
		return
	}

	for _, strategy := range strategies {
		if strategy(c) && c.IsValid() {
			return
		}
	}

	// re-derive from partial authority info
	if c.epsgID > 0 {
		if repaired, err := r.FromEpsg(ctx, c.epsgID); err == nil {
			hint := c.validationHint
			*c = repaired
			c.validationHint = hint
			return
		}
	}
	if c.srid > 0 {
		if repaired, err := r.FromSrid(ctx, c.srid); err == nil {
			hint := c.validationHint
			*c = repaired
			c.validationHint = hint
			return
		}
	}
	if c.srsID > 0 {
		if repaired, err := r.FromSrsID(ctx, c.srsID); err == nil {
			hint := c.validationHint
			*c = repaired
			c.validationHint = hint
			return
		}
	}

	r.log.Warn("validate falling back to WGS84 default")
	fallback, err := r.FromProj4(ctx, wgs84FallbackProj4)
	if err != nil {
		// the fallback string always parses; a store failure still
		// yields a usable unresolved entity
		sr, parseErr := parseFallback()
		if parseErr != nil {
			return
		}
		fallback = fromSR(sr)
	}
	hint := c.validationHint
	*c = fallback
	c.validationHint = hint
}
