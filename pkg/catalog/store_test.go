package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/geonym/srsdb/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTier is an in-memory Tier for routing tests.
type fakeTier struct {
	recs []catalog.Record
}

func (t *fakeTier) BySrsID(_ context.Context, id int64) (catalog.Record, error) {
	for _, r := range t.recs {
		if r.SrsID == id {
			return r, nil
		}
	}
	return catalog.Record{}, catalog.ErrNotFound
}

func (t *fakeTier) BySrid(_ context.Context, srid int64) (catalog.Record, error) {
	for _, r := range t.recs {
		if r.Srid == srid {
			return r, nil
		}
	}
	return catalog.Record{}, catalog.ErrNotFound
}

func (t *fakeTier) ByEpsg(_ context.Context, code int64) (catalog.Record, error) {
	for _, r := range t.recs {
		if r.EpsgID == code {
			return r, nil
		}
	}
	return catalog.Record{}, catalog.ErrNotFound
}

func (t *fakeTier) ByProj4(_ context.Context, normalized string) (catalog.Record, error) {
	for _, r := range t.recs {
		if r.Proj4 == normalized {
			return r, nil
		}
	}
	return catalog.Record{}, catalog.ErrNotFound
}

func (t *fakeTier) ByDescription(_ context.Context, name string) (catalog.Record, error) {
	for _, r := range t.recs {
		if r.Description == name {
			return r, nil
		}
	}
	return catalog.Record{}, catalog.ErrNotFound
}

func (t *fakeTier) ByAcronyms(
	_ context.Context,
	projAcronym, ellipsoidAcronym string,
) ([]catalog.Record, error) {
	var res []catalog.Record
	for _, r := range t.recs {
		if r.ProjectionAcronym == projAcronym &&
			r.EllipsoidAcronym == ellipsoidAcronym {
			res = append(res, r)
		}
	}
	return res, nil
}

func (t *fakeTier) Each(_ context.Context, fn func(catalog.Record) error) error {
	for _, r := range t.recs {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

func (t *fakeTier) Close() error { return nil }

// fakeWritable adds the overlay operations on top of fakeTier.
type fakeWritable struct {
	fakeTier
}

func (t *fakeWritable) Insert(_ context.Context, rec catalog.Record) (int64, error) {
	next := catalog.UserCRSStartID
	for _, r := range t.recs {
		if r.SrsID >= next {
			next = r.SrsID + 1
		}
	}
	rec.SrsID = next
	t.recs = append(t.recs, rec)
	return next, nil
}

func (t *fakeWritable) UpdateProj4(_ context.Context, srsID int64, proj4 string) error {
	for i, r := range t.recs {
		if r.SrsID == srsID {
			t.recs[i].Proj4 = proj4
			return nil
		}
	}
	return catalog.ErrNotFound
}

func newFixtureStore() *catalog.Store {
	baseline := &fakeTier{recs: []catalog.Record{
		{
			SrsID:             4326,
			Description:       "WGS 84",
			ProjectionAcronym: "longlat",
			EllipsoidAcronym:  "WGS84",
			Proj4:             "+datum=WGS84 +no_defs +proj=longlat",
			Srid:              4326,
			AuthName:          "EPSG",
			EpsgID:            4326,
			IsGeo:             true,
		},
		{
			SrsID:             2056,
			Description:       "CH1903+ / LV95",
			ProjectionAcronym: "somerc",
			EllipsoidAcronym:  "bessel",
			Proj4:             "+ellps=bessel +proj=somerc +x_0=2600000 +y_0=1200000",
			Srid:              2056,
			AuthName:          "EPSG",
			EpsgID:            2056,
		},
	}}
	overlay := &fakeWritable{fakeTier: fakeTier{recs: []catalog.Record{
		{
			SrsID:             catalog.UserCRSStartID,
			Description:       "WGS 84",
			ProjectionAcronym: "somerc",
			EllipsoidAcronym:  "bessel",
			Proj4:             "+ellps=bessel +proj=somerc +x_0=2600500 +y_0=1200500",
		},
	}}}
	return catalog.NewStore(baseline, overlay)
}

func TestBySrsIDRouting(t *testing.T) {
	ctx := context.Background()
	store := newFixtureStore()

	// ids inside the reserved range go to the baseline tier only
	rec, err := store.BySrsID(ctx, 4326)
	require.NoError(t, err)
	assert.Equal(t, "EPSG", rec.AuthName)

	// ids above the threshold go to the overlay tier only
	rec, err = store.BySrsID(ctx, catalog.UserCRSStartID)
	require.NoError(t, err)
	assert.True(t, rec.IsUser())
	assert.Empty(t, rec.AuthName)

	// the threshold itself belongs to the baseline range
	_, err = store.BySrsID(ctx, catalog.MaxBaselineSrsID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestBySridBaselineFirst(t *testing.T) {
	ctx := context.Background()
	store := newFixtureStore()

	rec, err := store.BySrid(ctx, 2056)
	require.NoError(t, err)
	assert.EqualValues(t, 2056, rec.SrsID)

	_, err = store.BySrid(ctx, 99999)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestByProj4ExactOverlayFirst(t *testing.T) {
	ctx := context.Background()
	store := newFixtureStore()

	rec, err := store.ByProj4Exact(ctx,
		"+ellps=bessel +proj=somerc +x_0=2600500 +y_0=1200500")
	require.NoError(t, err)
	assert.True(t, rec.IsUser())

	rec, err = store.ByProj4Exact(ctx,
		"+datum=WGS84 +no_defs +proj=longlat")
	require.NoError(t, err)
	assert.EqualValues(t, 4326, rec.SrsID)
}

func TestByDescriptionOverlayFirst(t *testing.T) {
	ctx := context.Background()
	store := newFixtureStore()

	// the user record shadows the baseline record of the same name
	rec, err := store.ByDescription(ctx, "WGS 84")
	require.NoError(t, err)
	assert.True(t, rec.IsUser())
}

func TestCandidatesBaselineBeforeOverlay(t *testing.T) {
	ctx := context.Background()
	store := newFixtureStore()

	cands, err := store.Candidates(ctx, "somerc", "bessel")
	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.False(t, cands[0].IsUser())
	assert.True(t, cands[1].IsUser())
}

func TestRegisterAllocatesAboveThreshold(t *testing.T) {
	ctx := context.Background()
	store := newFixtureStore()

	id, err := store.Register(ctx, catalog.Record{Description: "custom"})
	require.NoError(t, err)
	assert.Greater(t, id, catalog.MaxBaselineSrsID)

	rec, err := store.BySrsID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "custom", rec.Description)
}

func TestRecordHelpers(t *testing.T) {
	rec := catalog.Record{SrsID: 4326, AuthName: "EPSG", EpsgID: 4326}
	assert.False(t, rec.IsUser())
	assert.Equal(t, "EPSG:4326", rec.AuthID())

	user := catalog.Record{SrsID: catalog.UserCRSStartID}
	assert.True(t, user.IsUser())
}

func TestStoreErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")
	store := catalog.NewStore(
		&failingTier{err: boom},
		&fakeWritable{},
	)

	_, err := store.BySrid(ctx, 4326)
	assert.ErrorIs(t, err, boom)
}

// failingTier reports the same error for every operation.
type failingTier struct {
	err error
}

func (t *failingTier) BySrsID(context.Context, int64) (catalog.Record, error) {
	return catalog.Record{}, t.err
}

func (t *failingTier) BySrid(context.Context, int64) (catalog.Record, error) {
	return catalog.Record{}, t.err
}

func (t *failingTier) ByEpsg(context.Context, int64) (catalog.Record, error) {
	return catalog.Record{}, t.err
}

func (t *failingTier) ByProj4(context.Context, string) (catalog.Record, error) {
	return catalog.Record{}, t.err
}

func (t *failingTier) ByDescription(context.Context, string) (catalog.Record, error) {
	return catalog.Record{}, t.err
}

func (t *failingTier) ByAcronyms(context.Context, string, string) ([]catalog.Record, error) {
	return nil, t.err
}

func (t *failingTier) Each(context.Context, func(catalog.Record) error) error {
	return t.err
}

func (t *failingTier) Close() error { return nil }
