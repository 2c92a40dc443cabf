package crs

import (
	"context"
	"errors"

	"github.com/geonym/srsdb/pkg/catalog"
	"github.com/geonym/srsdb/pkg/proj"
)

// findMatchingProj resolves a structured representation without a
// catalog id to an existing record.
//
// The passes run in a fixed order:
//
//  1. Exact text: the canonical-normalized proj4 string (and the
//     supplied name, when any) is looked up verbatim, overlay tier
//     before baseline - user records are overrides. A hit returns
//     immediately with no semantic comparison.
//  2. Classification: the source is geographic when its projection is
//     angular; that selects the comparison mode for step 4.
//  3. Prefilter: candidates must share both the projection and the
//     ellipsoid acronym. Semantic comparison of full definitions is
//     expensive, so this keying bounds the scan to the rows sharing
//     the pair instead of the whole catalog.
//  4. Semantic: candidates arrive baseline tier before overlay tier -
//     this ordering decides which duplicate wins. The first candidate
//     passing the equivalence test is returned.
//
// A miss after both tiers are exhausted returns found=false, not an
// error; the caller decides whether to register.
func (r *Resolver) findMatchingProj(
	ctx context.Context,
	sr *proj.SR,
	original string,
	name string,
) (catalog.Record, bool, error) {
	normalized := proj.Normalize(original)

	rec, err := r.store.ByProj4Exact(ctx, normalized)
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return catalog.Record{}, false, err
	}
	if name != "" {
		rec, err = r.store.ByDescription(ctx, name)
		if err == nil {
			return rec, true, nil
		}
		if !errors.Is(err, catalog.ErrNotFound) {
			return catalog.Record{}, false, err
		}
	}

	mode := proj.Full
	if sr.Geographic {
		mode = proj.Geographic
	}

	candidates, err := r.store.Candidates(ctx, sr.Name, sr.Ellps)
	if err != nil {
		return catalog.Record{}, false, err
	}

	for _, cand := range candidates {
		candSR, err := proj.ParseProj4(cand.Proj4)
		if err != nil {
			// a malformed catalog row must not abort resolution
			r.log.Warn("skipping unparsable catalog row",
				"srs_id", cand.SrsID, "error", err)
			continue
		}
		if r.equiv(sr, candSR, mode) {
			return cand, true, nil
		}
	}

	return catalog.Record{}, false, nil
}
