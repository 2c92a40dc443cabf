package iocatalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/geonym/srsdb/pkg/catalog"
	"github.com/geonym/srsdb/pkg/proj"
)

// seedEntry is the compact source form of one baseline record.
type seedEntry struct {
	epsg        int64
	description string
	proj4       string
	wkt         string
}

// wkt4326 exercises the wkt column for the most common system.
const wkt4326 = `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563,AUTHORITY["EPSG","7030"]],AUTHORITY["EPSG","6326"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4326"]]`

// baselineSeed lists the systems shipped with `srsdb init`. The srid
// and srs_id of baseline records follow the EPSG code.
var baselineSeed = []seedEntry{
	{
		epsg:        4326,
		description: "WGS 84",
		proj4:       "+proj=longlat +datum=WGS84 +no_defs",
		wkt:         wkt4326,
	},
	{
		epsg:        4269,
		description: "NAD83",
		proj4:       "+proj=longlat +datum=NAD83 +no_defs",
	},
	{
		epsg:        4267,
		description: "NAD27",
		proj4:       "+proj=longlat +datum=NAD27 +no_defs",
	},
	{
		epsg:        4258,
		description: "ETRS89",
		proj4:       "+proj=longlat +ellps=GRS80 +no_defs",
	},
	{
		epsg:        4277,
		description: "OSGB 1936",
		proj4:       "+proj=longlat +datum=OSGB36 +no_defs",
	},
	{
		epsg:        3857,
		description: "WGS 84 / Pseudo-Mercator",
		proj4: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 " +
			"+x_0=0 +y_0=0 +k=1 +units=m +nadgrids=@null +wktext +no_defs",
	},
	{
		epsg:        3035,
		description: "ETRS89-extended / LAEA Europe",
		proj4: "+proj=laea +lat_0=52 +lon_0=10 +x_0=4321000 +y_0=3210000 " +
			"+ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	},
	{
		epsg:        2056,
		description: "CH1903+ / LV95",
		proj4: "+proj=somerc +lat_0=46.9524055555556 " +
			"+lon_0=7.43958333333333 +k_0=1 +x_0=2600000 +y_0=1200000 " +
			"+ellps=bessel +towgs84=674.374,15.056,405.346 +units=m +no_defs",
	},
	{
		epsg:        21781,
		description: "CH1903 / LV03",
		proj4: "+proj=somerc +lat_0=46.9524055555556 " +
			"+lon_0=7.43958333333333 +k_0=1 +x_0=600000 +y_0=200000 " +
			"+ellps=bessel +towgs84=674.374,15.056,405.346 +units=m +no_defs",
	},
	{
		epsg:        27700,
		description: "OSGB36 / British National Grid",
		proj4: "+proj=tmerc +lat_0=49 +lon_0=-2 +k=0.9996012717 " +
			"+x_0=400000 +y_0=-100000 +datum=OSGB36 +units=m +no_defs",
	},
	{
		epsg:        32633,
		description: "WGS 84 / UTM zone 33N",
		proj4:       "+proj=utm +zone=33 +datum=WGS84 +units=m +no_defs",
	},
	{
		epsg:        32733,
		description: "WGS 84 / UTM zone 33S",
		proj4:       "+proj=utm +zone=33 +south +datum=WGS84 +units=m +no_defs",
	},
	{
		epsg:        2193,
		description: "NZGD2000 / New Zealand Transverse Mercator 2000",
		proj4: "+proj=tmerc +lat_0=0 +lon_0=173 +k=0.9996 +x_0=1600000 " +
			"+y_0=10000000 +ellps=GRS80 +units=m +no_defs",
	},
	{
		epsg:        5181,
		description: "Korea 2000 / Central Belt",
		proj4: "+proj=tmerc +lat_0=38 +lon_0=127 +k=1 +x_0=200000 " +
			"+y_0=500000 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	},
}

// BaselineSeed expands the shipped seed into full catalog records.
// Acronyms and the geographic flag are derived from the proj4 string,
// which is stored in canonical-normalized form.
func BaselineSeed() ([]catalog.Record, error) {
	res := make([]catalog.Record, 0, len(baselineSeed))
	for _, e := range baselineSeed {
		sr, err := proj.ParseProj4(e.proj4)
		if err != nil {
			return nil, err
		}
		res = append(res, catalog.Record{
			SrsID:             e.epsg,
			Description:       e.description,
			ProjectionAcronym: sr.Name,
			EllipsoidAcronym:  sr.Ellps,
			Proj4:             proj.Normalize(e.proj4),
			Srid:              e.epsg,
			AuthName:          "EPSG",
			EpsgID:            e.epsg,
			Wkt:               e.wkt,
			IsGeo:             sr.Geographic,
		})
	}
	return res, nil
}

// NewMemoryTier returns a writable in-memory tier seeded with the
// given records, keeping their srs_id values verbatim. Used by tests
// and fixtures for both tiers.
func NewMemoryTier(
	ctx context.Context,
	recs []catalog.Record,
) (catalog.WritableTier, error) {
	db, err := open(":memory:", true)
	if err != nil {
		return nil, err
	}
	if _, err = db.ExecContext(ctx, schemaDDL); err != nil {
		db.Close()
		return nil, NewSchemaError(":memory:", err)
	}
	t := &sqliteTier{db: db, path: ":memory:", writable: true}
	for _, rec := range recs {
		if err = insertVerbatim(ctx, db, ":memory:", rec); err != nil {
			db.Close()
			return nil, err
		}
	}
	return t, nil
}

func insertVerbatim(
	ctx context.Context,
	db *sql.DB,
	path string,
	rec catalog.Record,
) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO tbl_srs (srs_id, description, projection_acronym,
			ellipsoid_acronym, parameters, srid, auth_name, auth_id,
			wkt, is_geo, deprecated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SrsID, rec.Description, rec.ProjectionAcronym,
		rec.EllipsoidAcronym, rec.Proj4, rec.Srid, rec.AuthName,
		rec.EpsgID, rec.Wkt, boolToInt(rec.IsGeo),
		boolToInt(rec.Deprecated),
	)
	if err != nil {
		return NewInsertError(path, err)
	}
	return nil
}

// CreateBaseline builds a baseline catalog file at path from the
// given records, keeping their srs_id values verbatim. Records above
// the reserved baseline range are rejected.
func CreateBaseline(
	ctx context.Context,
	path string,
	recs []catalog.Record,
) error {
	db, err := open(path, true)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err = db.ExecContext(ctx, schemaDDL); err != nil {
		return NewSchemaError(path, err)
	}

	for _, rec := range recs {
		if rec.SrsID < 1 || rec.SrsID > catalog.MaxBaselineSrsID {
			return NewInsertError(path, errors.New(
				"srs_id outside the baseline range"))
		}
		if err = insertVerbatim(ctx, db, path, rec); err != nil {
			return err
		}
	}
	return nil
}
