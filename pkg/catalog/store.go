package catalog

import (
	"context"
	"errors"
)

// Store composes the two tiers behind the documented precedence
// rules:
//
//   - id lookups route by the reserved-id threshold, never both tiers
//   - SRID and EPSG lookups try baseline first, first match wins
//   - exact proj4/description lookups try overlay first (user records
//     are overrides, more specific than baseline)
//   - the semantic candidate scan lists baseline before overlay
type Store struct {
	baseline Tier
	overlay  WritableTier
}

// NewStore composes a baseline and an overlay tier.
func NewStore(baseline Tier, overlay WritableTier) *Store {
	return &Store{baseline: baseline, overlay: overlay}
}

// Baseline exposes the read-only tier.
func (s *Store) Baseline() Tier { return s.baseline }

// Overlay exposes the writable tier.
func (s *Store) Overlay() WritableTier { return s.overlay }

// BySrsID routes to the overlay tier when the id is above the
// reserved threshold, otherwise to the baseline tier.
func (s *Store) BySrsID(ctx context.Context, id int64) (Record, error) {
	if id > MaxBaselineSrsID {
		return s.overlay.BySrsID(ctx, id)
	}
	return s.baseline.BySrsID(ctx, id)
}

// BySrid queries the PostGIS SRID across both tiers, baseline first.
func (s *Store) BySrid(ctx context.Context, srid int64) (Record, error) {
	rec, err := s.baseline.BySrid(ctx, srid)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Record{}, err
	}
	return s.overlay.BySrid(ctx, srid)
}

// ByEpsg queries the EPSG code across both tiers, baseline first.
func (s *Store) ByEpsg(ctx context.Context, code int64) (Record, error) {
	rec, err := s.baseline.ByEpsg(ctx, code)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Record{}, err
	}
	return s.overlay.ByEpsg(ctx, code)
}

// ByProj4Exact looks up a canonical-normalized proj4 string, overlay
// tier first.
func (s *Store) ByProj4Exact(ctx context.Context, normalized string) (Record, error) {
	rec, err := s.overlay.ByProj4(ctx, normalized)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Record{}, err
	}
	return s.baseline.ByProj4(ctx, normalized)
}

// ByDescription looks up an exact description, overlay tier first.
func (s *Store) ByDescription(ctx context.Context, name string) (Record, error) {
	rec, err := s.overlay.ByDescription(ctx, name)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Record{}, err
	}
	return s.baseline.ByDescription(ctx, name)
}

// Candidates returns prefiltered records sharing the acronym pair,
// baseline tier before overlay tier. This ordering determines which
// duplicate wins during the semantic pass.
func (s *Store) Candidates(
	ctx context.Context,
	projAcronym, ellipsoidAcronym string,
) ([]Record, error) {
	base, err := s.baseline.ByAcronyms(ctx, projAcronym, ellipsoidAcronym)
	if err != nil {
		return nil, err
	}
	over, err := s.overlay.ByAcronyms(ctx, projAcronym, ellipsoidAcronym)
	if err != nil {
		return nil, err
	}
	return append(base, over...), nil
}

// Register appends a record into the overlay tier and returns the
// allocated srs_id.
func (s *Store) Register(ctx context.Context, rec Record) (int64, error) {
	return s.overlay.Insert(ctx, rec)
}

// Close closes both tiers, returning the first error.
func (s *Store) Close() error {
	errBase := s.baseline.Close()
	errOver := s.overlay.Close()
	if errBase != nil {
		return errBase
	}
	return errOver
}
