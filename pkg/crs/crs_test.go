package crs_test

import (
	"context"
	"testing"

	"github.com/geonym/srsdb/internal/iotesting"
	"github.com/geonym/srsdb/pkg/crs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroEntityIsInvalid(t *testing.T) {
	var c crs.CRS
	assert.False(t, c.IsValid())
	assert.Empty(t, c.AuthID())
	assert.Empty(t, c.ToProj4())
}

func TestToProj4IsCanonical(t *testing.T) {
	ctx := context.Background()
	r := crs.NewResolver(iotesting.NewTestStore(t))

	c, err := r.FromProj4(ctx,
		"+no_defs +datum=WGS84 +proj=longlat")
	require.NoError(t, err)

	// reassembly is canonical regardless of the input order; the
	// derived ellipsoid is spelled out
	assert.Equal(t,
		"+datum=WGS84 +ellps=WGS84 +no_defs +proj=longlat", c.ToProj4())
}

func TestEqualBySrsID(t *testing.T) {
	ctx := context.Background()
	r := crs.NewResolver(iotesting.NewTestStore(t))

	a, err := r.FromEpsg(ctx, 2056)
	require.NoError(t, err)
	b, err := r.FromSrid(ctx, 2056)
	require.NoError(t, err)
	assert.True(t, a.Equal(&b))
}

func TestNotEqualDifferentSystems(t *testing.T) {
	ctx := context.Background()
	r := crs.NewResolver(iotesting.NewTestStore(t))

	a, err := r.FromEpsg(ctx, 2056)
	require.NoError(t, err)
	b, err := r.FromEpsg(ctx, 21781)
	require.NoError(t, err)
	assert.True(t, a.NotEqual(&b))
}

func TestEqualGeographicIgnoresProjectionAlias(t *testing.T) {
	ctx := context.Background()
	r := crs.NewResolver(iotesting.NewTestStore(t))

	a, err := r.FromProj4(ctx, "+proj=longlat +ellps=GRS80 +no_defs")
	require.NoError(t, err)
	b, err := r.FromProj4(ctx, "+proj=latlong +ellps=GRS80")
	require.NoError(t, err)
	assert.True(t, a.Equal(&b))
}

func TestEqualNil(t *testing.T) {
	ctx := context.Background()
	r := crs.NewResolver(iotesting.NewTestStore(t))

	a, err := r.FromEpsg(ctx, 4326)
	require.NoError(t, err)
	assert.False(t, a.Equal(nil))
}
