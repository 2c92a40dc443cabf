package proj_test

import (
	"errors"
	"testing"

	"github.com/geonym/srsdb/pkg/errcode"
	"github.com/geonym/srsdb/pkg/proj"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wgs84Wkt = `GEOGCS["WGS 84",
    DATUM["WGS_1984",
        SPHEROID["WGS 84",6378137,298.257223563,
            AUTHORITY["EPSG","7030"]],
        AUTHORITY["EPSG","6326"]],
    PRIMEM["Greenwich",0,
        AUTHORITY["EPSG","8901"]],
    UNIT["degree",0.0174532925199433,
        AUTHORITY["EPSG","9122"]],
    AUTHORITY["EPSG","4326"]]`

const bngWkt = `PROJCS["OSGB36 / British National Grid",
    GEOGCS["OSGB36",
        DATUM["OSGB_1936",
            SPHEROID["Airy 1830",6377563.396,299.3249646]],
        PRIMEM["Greenwich",0],
        UNIT["degree",0.0174532925199433]],
    PROJECTION["Transverse_Mercator"],
    PARAMETER["latitude_of_origin",49],
    PARAMETER["central_meridian",-2],
    PARAMETER["scale_factor",0.9996012717],
    PARAMETER["false_easting",400000],
    PARAMETER["false_northing",-100000],
    UNIT["metre",1]]`

func TestParseWktGeographic(t *testing.T) {
	sr, err := proj.Parse(wgs84Wkt)
	require.NoError(t, err)

	assert.Equal(t, "longlat", sr.Name)
	assert.Equal(t, "WGS84", sr.Ellps)
	assert.Equal(t, "WGS84", sr.Datum)
	assert.Equal(t, "degrees", sr.Units)
	assert.True(t, sr.Geographic)
}

func TestParseWktProjected(t *testing.T) {
	sr, err := proj.Parse(bngWkt)
	require.NoError(t, err)

	assert.Equal(t, "tmerc", sr.Name)
	assert.Equal(t, "airy", sr.Ellps)
	assert.Equal(t, "m", sr.Units)
	assert.False(t, sr.Geographic)

	assert.Equal(t, "49", sr.Params["lat_0"])
	assert.Equal(t, "-2", sr.Params["lon_0"])
	assert.Equal(t, "0.9996012717", sr.Params["k"])
	assert.Equal(t, "400000", sr.Params["x_0"])
	assert.Equal(t, "-100000", sr.Params["y_0"])
}

func TestParseWktTowgs84(t *testing.T) {
	wkt := `GEOGCS["CH1903+",
        DATUM["CH1903",
            SPHEROID["Bessel 1841",6377397.155,299.1528128],
            TOWGS84[674.374,15.056,405.346,0,0,0,0]],
        PRIMEM["Greenwich",0],
        UNIT["degree",0.0174532925199433]]`
	sr, err := proj.Parse(wkt)
	require.NoError(t, err)

	assert.Equal(t, "bessel", sr.Ellps)
	assert.Equal(t, "674.374,15.056,405.346,0,0,0,0", sr.Params["towgs84"])
}

func TestParseWktEquivalentToProj4(t *testing.T) {
	fromWkt, err := proj.Parse(bngWkt)
	require.NoError(t, err)

	fromP4, err := proj.ParseProj4(
		"+proj=tmerc +lat_0=49 +lon_0=-2 +k=0.9996012717 " +
			"+x_0=400000 +y_0=-100000 +datum=OSGB36 +units=m +no_defs")
	require.NoError(t, err)

	assert.True(t, proj.Equivalent(fromWkt, fromP4, proj.Full))
}

func TestParseWktErrors(t *testing.T) {
	tests := []struct {
		msg   string
		input string
	}{
		{msg: "unterminated node", input: `GEOGCS["WGS 84"`},
		{msg: "missing projection", input: `PROJCS["x",GEOGCS["y",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]]]]`},
		{
			msg:   "unknown projection",
			input: `PROJCS["x",GEOGCS["y"],PROJECTION["Made_Up_Projection"]]`,
		},
		{msg: "trailing garbage", input: `GEOGCS["x"] leftover`},
	}

	for _, v := range tests {
		_, err := proj.Parse(v.input)
		require.Error(t, err, v.msg)
		var gerr *gn.Error
		require.True(t, errors.As(err, &gerr), v.msg)
		assert.Equal(t, errcode.WktParseError, gerr.Code, v.msg)
	}
}

func TestMorphFromEsri(t *testing.T) {
	esri := `GEOGCS['GCS_WGS_1984',DATUM['D_WGS_1984',SPHEROID['WGS_1984',6378137,298.257223563]],PRIMEM['Greenwich',0],UNIT['Degree',0.017453292519943295]]`
	require.True(t, proj.LooksLikeEsri(esri))

	morphed := proj.MorphFromEsri(esri)
	assert.NotContains(t, morphed, "'")
	assert.NotContains(t, morphed, `DATUM["D_`)
	assert.Contains(t, morphed, `UNIT["degree"`)

	sr, err := proj.Parse(morphed)
	require.NoError(t, err)
	assert.Equal(t, "WGS84", sr.Ellps)
	assert.Equal(t, "WGS84", sr.Datum)
}

func TestLooksLikeEsri(t *testing.T) {
	assert.False(t, proj.LooksLikeEsri(wgs84Wkt))
	assert.True(t, proj.LooksLikeEsri(`DATUM["D_WGS_1984"`))
}
