package crs_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/geonym/srsdb/internal/iotesting"
	"github.com/geonym/srsdb/pkg/crs"
	"github.com/geonym/srsdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundtrip(t *testing.T) {
	ctx := context.Background()
	r := crs.NewResolver(iotesting.NewTestStore(t))

	orig, err := r.FromEpsg(ctx, 2056)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, orig.Write(&buf))

	doc := buf.String()
	for _, tag := range []string{
		"<spatialrefsys>", "<proj4>", "<srsid>", "<srid>", "<epsg>",
		"<description>", "<projectionacronym>", "<ellipsoidacronym>",
	} {
		assert.Contains(t, doc, tag)
	}

	got, err := crs.Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, orig.SrsID(), got.SrsID())
	assert.Equal(t, orig.Srid(), got.Srid())
	assert.Equal(t, orig.EpsgID(), got.EpsgID())
	assert.Equal(t, orig.AuthID(), got.AuthID())
	assert.Equal(t, orig.Description(), got.Description())
	assert.Equal(t, orig.ProjectionAcronym(), got.ProjectionAcronym())
	assert.Equal(t, orig.EllipsoidAcronym(), got.EllipsoidAcronym())
	assert.Equal(t, orig.Proj4Params(), got.Proj4Params())
	assert.Equal(t, orig.IsGeographic(), got.IsGeographic())
	assert.Equal(t, orig.MapUnits(), got.MapUnits())
	assert.True(t, orig.Equal(&got))
}

func TestCodecGeographicRederived(t *testing.T) {
	ctx := context.Background()
	r := crs.NewResolver(iotesting.NewTestStore(t))

	orig, err := r.FromEpsg(ctx, 4326)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, orig.Write(&buf))

	got, err := crs.Read(&buf)
	require.NoError(t, err)
	assert.True(t, got.IsGeographic())
	assert.True(t, got.AxisInverted())
	assert.Equal(t, "degrees", got.MapUnits())
	assert.True(t, got.IsValid())
}

func TestCodecHintNotPersisted(t *testing.T) {
	ctx := context.Background()
	r := crs.NewResolver(iotesting.NewTestStore(t))

	orig, err := r.FromEpsg(ctx, 4326)
	require.NoError(t, err)
	orig.SetValidationHint("picked by the user")

	var buf bytes.Buffer
	require.NoError(t, orig.Write(&buf))
	assert.NotContains(t, buf.String(), "picked by the user")

	got, err := crs.Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, got.ValidationHint())
}

func TestCodecEmptyNumericFields(t *testing.T) {
	// unresolved entities persist with empty id elements
	doc := `<spatialrefsys>
  <proj4>+lat_0=52 +lon_0=5 +no_defs +units=m</proj4>
  <srsid></srsid>
  <srid></srid>
  <epsg></epsg>
  <description>local grid</description>
  <projectionacronym>aeqd</projectionacronym>
  <ellipsoidacronym>GRS80</ellipsoidacronym>
</spatialrefsys>`

	got, err := crs.Read(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Zero(t, got.SrsID())
	assert.Zero(t, got.EpsgID())
	assert.Empty(t, got.AuthID())
	assert.Equal(t, "local grid", got.Description())
	assert.True(t, got.IsValid())
}

func TestCodecMalformed(t *testing.T) {
	tests := []struct {
		msg string
		doc string
	}{
		{
			msg: "missing epsg element",
			doc: `<spatialrefsys>
  <proj4>+proj=longlat</proj4>
  <srsid>4326</srsid>
  <srid>4326</srid>
  <description>WGS 84</description>
  <projectionacronym>longlat</projectionacronym>
  <ellipsoidacronym>WGS84</ellipsoidacronym>
</spatialrefsys>`,
		},
		{
			msg: "missing proj4 element",
			doc: `<spatialrefsys>
  <srsid>4326</srsid>
  <srid>4326</srid>
  <epsg>4326</epsg>
  <description>WGS 84</description>
  <projectionacronym>longlat</projectionacronym>
  <ellipsoidacronym>WGS84</ellipsoidacronym>
</spatialrefsys>`,
		},
		{
			msg: "non-numeric id",
			doc: `<spatialrefsys>
  <proj4>+proj=longlat</proj4>
  <srsid>abc</srsid>
  <srid>4326</srid>
  <epsg>4326</epsg>
  <description>WGS 84</description>
  <projectionacronym>longlat</projectionacronym>
  <ellipsoidacronym>WGS84</ellipsoidacronym>
</spatialrefsys>`,
		},
		{
			msg: "not xml at all",
			doc: `{ "proj4": "+proj=longlat" }`,
		},
	}

	for _, v := range tests {
		_, err := crs.Read(strings.NewReader(v.doc))
		require.Error(t, err, v.msg)
		var gerr *gn.Error
		require.True(t, errors.As(err, &gerr), v.msg)
		assert.Equal(t, errcode.MalformedPersistedStateError, gerr.Code, v.msg)
	}
}
