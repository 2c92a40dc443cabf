package iosync_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/geonym/srsdb/internal/iocatalog"
	"github.com/geonym/srsdb/internal/iosync"
	"github.com/geonym/srsdb/pkg/catalog"
	"github.com/geonym/srsdb/pkg/proj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapSource serves definitions from a map and injects errors for
// selected codes.
type mapSource struct {
	defs  map[int64]string
	errs  map[int64]error
	calls int
}

func (s *mapSource) Proj4ForEpsg(_ context.Context, code int64) (string, error) {
	s.calls++
	if err, ok := s.errs[code]; ok {
		return "", err
	}
	def, ok := s.defs[code]
	if !ok {
		return "", iosync.ErrNoDefinition
	}
	return def, nil
}

func (s *mapSource) Close() error { return nil }

const (
	staleLV95 = "+proj=somerc +lat_0=46.95 +lon_0=7.4 +k_0=1 " +
		"+x_0=2600000 +y_0=1200000 +ellps=bessel +units=m +no_defs"
	currentLV95 = "+proj=somerc +lat_0=46.9524055555556 " +
		"+lon_0=7.43958333333333 +k_0=1 +x_0=2600000 +y_0=1200000 " +
		"+ellps=bessel +towgs84=674.374,15.056,405.346 +units=m +no_defs"
)

// newSyncStore builds a store whose overlay holds authority-backed
// records at the given EPSG codes, plus one purely user-defined record
// that sync must never touch.
func newSyncStore(
	t *testing.T,
	overlay ...catalog.Record,
) *catalog.Store {
	t.Helper()
	ctx := context.Background()

	seed, err := iocatalog.BaselineSeed()
	require.NoError(t, err)
	baseline, err := iocatalog.NewMemoryTier(ctx, seed)
	require.NoError(t, err)

	overlay = append(overlay, catalog.Record{
		SrsID:             catalog.UserCRSStartID + 50,
		Description:       "Local site grid",
		ProjectionAcronym: "tmerc",
		EllipsoidAcronym:  "GRS80",
		Proj4: proj.Normalize(
			"+proj=tmerc +lat_0=0 +lon_0=9 +ellps=GRS80 +units=m +no_defs"),
	})
	over, err := iocatalog.NewMemoryTier(ctx, overlay)
	require.NoError(t, err)

	t.Cleanup(func() {
		baseline.Close()
		over.Close()
	})
	return catalog.NewStore(baseline, over)
}

func epsgRecord(srsID, epsg int64, proj4 string) catalog.Record {
	return catalog.Record{
		SrsID:             srsID,
		Description:       "User copy of EPSG:" + strconv.FormatInt(epsg, 10),
		ProjectionAcronym: "somerc",
		EllipsoidAcronym:  "bessel",
		Proj4:             proj.Normalize(proj4),
		AuthName:          "EPSG",
		EpsgID:            epsg,
	}
}

func TestSyncUpdatesStaleRows(t *testing.T) {
	ctx := context.Background()
	id := catalog.UserCRSStartID
	store := newSyncStore(t, epsgRecord(id, 2056, staleLV95))
	source := &mapSource{defs: map[int64]string{2056: currentLV95}}

	updated, err := iosync.Sync(ctx, store, source, false)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	rec, err := store.Overlay().BySrsID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, proj.Normalize(currentLV95), rec.Proj4)
}

func TestSyncSkipsCurrentRows(t *testing.T) {
	ctx := context.Background()
	id := catalog.UserCRSStartID
	store := newSyncStore(t, epsgRecord(id, 2056, currentLV95))
	source := &mapSource{defs: map[int64]string{
		// the source spells the same definition with extra whitespace
		2056: "  " + currentLV95 + "  ",
	}}

	updated, err := iosync.Sync(ctx, store, source, false)
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}

func TestSyncSkipsUnknownCodes(t *testing.T) {
	ctx := context.Background()
	id := catalog.UserCRSStartID
	store := newSyncStore(t, epsgRecord(id, 999999, staleLV95))
	source := &mapSource{defs: map[int64]string{}}

	updated, err := iosync.Sync(ctx, store, source, false)
	require.NoError(t, err)
	assert.Equal(t, 0, updated)

	rec, err := store.Overlay().BySrsID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, proj.Normalize(staleLV95), rec.Proj4, "row untouched")
}

func TestSyncIgnoresUserOnlyRows(t *testing.T) {
	ctx := context.Background()
	store := newSyncStore(t)
	source := &mapSource{}

	updated, err := iosync.Sync(ctx, store, source, false)
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
	assert.Zero(t, source.calls, "rows without an authority are not candidates")
}

func TestSyncCountsFailuresNegative(t *testing.T) {
	ctx := context.Background()
	store := newSyncStore(t,
		epsgRecord(catalog.UserCRSStartID, 2056, staleLV95),
		epsgRecord(catalog.UserCRSStartID+1, 21781, staleLV95),
		epsgRecord(catalog.UserCRSStartID+2, 32632, staleLV95),
	)
	source := &mapSource{
		defs: map[int64]string{2056: currentLV95},
		errs: map[int64]error{
			21781: errors.New("connection reset"),
			32632: errors.New("connection reset"),
		},
	}

	updated, err := iosync.Sync(ctx, store, source, false)
	require.NoError(t, err)
	assert.Equal(t, -2, updated)

	// the successful row was still reconciled
	rec, err := store.Overlay().BySrsID(ctx, catalog.UserCRSStartID)
	require.NoError(t, err)
	assert.Equal(t, proj.Normalize(currentLV95), rec.Proj4)
}
