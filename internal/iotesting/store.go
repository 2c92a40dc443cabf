// Package iotesting provides shared test fixtures. This is an
// internal package for test infrastructure only.
package iotesting

import (
	"context"
	"testing"

	"github.com/geonym/srsdb/internal/iocatalog"
	"github.com/geonym/srsdb/pkg/catalog"
	"github.com/geonym/srsdb/pkg/proj"
)

// UserLV95SrsID is the srs_id of the user-registered record every
// test store carries in its overlay tier.
const UserLV95SrsID = catalog.UserCRSStartID

// NewTestStore returns a Store with both tiers in memory: the full
// baseline seed plus one pre-registered user record. The store closes
// with the test.
func NewTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	ctx := context.Background()

	seed, err := iocatalog.BaselineSeed()
	if err != nil {
		t.Fatalf("cannot expand baseline seed: %v", err)
	}
	baseline, err := iocatalog.NewMemoryTier(ctx, seed)
	if err != nil {
		t.Fatalf("cannot create baseline tier: %v", err)
	}

	overlay, err := iocatalog.NewMemoryTier(ctx, UserRecords())
	if err != nil {
		t.Fatalf("cannot create overlay tier: %v", err)
	}

	store := catalog.NewStore(baseline, overlay)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// UserRecords returns the overlay fixture: a user-registered variant
// of the Swiss LV95 system with a slightly different false origin.
func UserRecords() []catalog.Record {
	p4 := "+proj=somerc +lat_0=46.9524055555556 " +
		"+lon_0=7.43958333333333 +k_0=1 +x_0=2600500 +y_0=1200500 " +
		"+ellps=bessel +towgs84=674.374,15.056,405.346 +units=m +no_defs"
	return []catalog.Record{
		{
			SrsID:             UserLV95SrsID,
			Description:       "Shifted LV95 (site grid)",
			ProjectionAcronym: "somerc",
			EllipsoidAcronym:  "bessel",
			Proj4:             proj.Normalize(p4),
		},
	}
}
