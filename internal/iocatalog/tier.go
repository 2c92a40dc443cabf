// Package iocatalog implements the catalog tiers on SQLite files.
// This is an impure I/O package that implements contracts defined in
// pkg/catalog.
package iocatalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/geonym/srsdb/pkg/catalog"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS tbl_srs (
	srs_id INTEGER PRIMARY KEY,
	description TEXT NOT NULL,
	projection_acronym TEXT NOT NULL DEFAULT '',
	ellipsoid_acronym TEXT NOT NULL DEFAULT '',
	parameters TEXT NOT NULL,
	srid INTEGER NOT NULL DEFAULT 0,
	auth_name TEXT NOT NULL DEFAULT '',
	auth_id INTEGER NOT NULL DEFAULT 0,
	wkt TEXT NOT NULL DEFAULT '',
	is_geo INTEGER NOT NULL DEFAULT 0,
	deprecated INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_srs_srid ON tbl_srs (srid);
CREATE INDEX IF NOT EXISTS idx_srs_auth ON tbl_srs (auth_name, auth_id);
CREATE INDEX IF NOT EXISTS idx_srs_acronyms
	ON tbl_srs (projection_acronym, ellipsoid_acronym);
`

const selectColumns = `srs_id, description, projection_acronym,
	ellipsoid_acronym, parameters, srid, auth_name, auth_id, wkt,
	is_geo, deprecated`

// sqliteTier implements catalog.Tier over one SQLite file.
type sqliteTier struct {
	db       *sql.DB
	path     string
	writable bool
}

// NewBaselineTier opens the read-only baseline catalog.
func NewBaselineTier(path string) (catalog.Tier, error) {
	db, err := open(path, false)
	if err != nil {
		return nil, err
	}
	return &sqliteTier{db: db, path: path}, nil
}

// NewOverlayTier opens (and bootstraps when missing) the writable
// user catalog.
func NewOverlayTier(path string) (catalog.WritableTier, error) {
	db, err := open(path, true)
	if err != nil {
		return nil, err
	}
	if _, err = db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, NewSchemaError(path, err)
	}
	return &sqliteTier{db: db, path: path, writable: true}, nil
}

func open(path string, writable bool) (*sql.DB, error) {
	// the modernc driver takes pragmas as _pragma=name(value) and
	// honors mode=ro only in the file: URI form; query_only makes the
	// engine itself reject writes on the baseline handle
	var dsn string
	if writable {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(500)"
	} else {
		dsn = "file:" + path +
			"?mode=ro&_pragma=busy_timeout(500)&_pragma=query_only(1)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, NewOpenError(path, err)
	}
	// SQLite with a single connection avoids writer contention.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, NewOpenError(path, err)
	}
	return db, nil
}

func (t *sqliteTier) BySrsID(ctx context.Context, id int64) (catalog.Record, error) {
	q := fmt.Sprintf("SELECT %s FROM tbl_srs WHERE srs_id = ?", selectColumns)
	return t.one(ctx, q, id)
}

func (t *sqliteTier) BySrid(ctx context.Context, srid int64) (catalog.Record, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM tbl_srs WHERE srid = ? ORDER BY srs_id LIMIT 1",
		selectColumns)
	return t.one(ctx, q, srid)
}

func (t *sqliteTier) ByEpsg(ctx context.Context, code int64) (catalog.Record, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM tbl_srs WHERE auth_name = 'EPSG' AND auth_id = ? "+
			"ORDER BY srs_id LIMIT 1", selectColumns)
	return t.one(ctx, q, code)
}

func (t *sqliteTier) ByProj4(ctx context.Context, normalized string) (catalog.Record, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM tbl_srs WHERE parameters = ? ORDER BY srs_id LIMIT 1",
		selectColumns)
	return t.one(ctx, q, normalized)
}

func (t *sqliteTier) ByDescription(ctx context.Context, name string) (catalog.Record, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM tbl_srs WHERE description = ? ORDER BY srs_id LIMIT 1",
		selectColumns)
	return t.one(ctx, q, name)
}

func (t *sqliteTier) ByAcronyms(
	ctx context.Context,
	projAcronym, ellipsoidAcronym string,
) ([]catalog.Record, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM tbl_srs WHERE projection_acronym = ? AND "+
			"ellipsoid_acronym = ? ORDER BY srs_id", selectColumns)
	rows, err := t.db.QueryContext(ctx, q, projAcronym, ellipsoidAcronym)
	if err != nil {
		return nil, NewQueryError(t.path, err)
	}
	defer rows.Close()

	var res []catalog.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, NewScanError(t.path, err)
		}
		res = append(res, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, NewScanError(t.path, err)
	}
	return res, nil
}

func (t *sqliteTier) Each(ctx context.Context, fn func(catalog.Record) error) error {
	q := fmt.Sprintf("SELECT %s FROM tbl_srs ORDER BY srs_id", selectColumns)
	rows, err := t.db.QueryContext(ctx, q)
	if err != nil {
		return NewQueryError(t.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return NewScanError(t.path, err)
		}
		if err = fn(rec); err != nil {
			return err
		}
	}
	if err = rows.Err(); err != nil {
		return NewScanError(t.path, err)
	}
	return nil
}

func (t *sqliteTier) Insert(ctx context.Context, rec catalog.Record) (int64, error) {
	if !t.writable {
		return 0, NewReadOnlyError(t.path)
	}

	// allocate the next id above the reserved baseline range
	var maxID sql.NullInt64
	err := t.db.QueryRowContext(ctx,
		"SELECT MAX(srs_id) FROM tbl_srs WHERE srs_id > ?",
		catalog.MaxBaselineSrsID).Scan(&maxID)
	if err != nil {
		return 0, NewInsertError(t.path, err)
	}
	id := catalog.UserCRSStartID
	if maxID.Valid && maxID.Int64 >= id {
		id = maxID.Int64 + 1
	}

	_, err = t.db.ExecContext(ctx, `
		INSERT INTO tbl_srs (srs_id, description, projection_acronym,
			ellipsoid_acronym, parameters, srid, auth_name, auth_id,
			wkt, is_geo, deprecated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rec.Description, rec.ProjectionAcronym, rec.EllipsoidAcronym,
		rec.Proj4, rec.Srid, rec.AuthName, rec.EpsgID, rec.Wkt,
		boolToInt(rec.IsGeo), boolToInt(rec.Deprecated),
	)
	if err != nil {
		return 0, NewInsertError(t.path, err)
	}
	return id, nil
}

func (t *sqliteTier) UpdateProj4(ctx context.Context, srsID int64, proj4 string) error {
	if !t.writable {
		return NewReadOnlyError(t.path)
	}
	res, err := t.db.ExecContext(ctx,
		"UPDATE tbl_srs SET parameters = ? WHERE srs_id = ?", proj4, srsID)
	if err != nil {
		return NewUpdateError(t.path, srsID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return NewUpdateError(t.path, srsID, err)
	}
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (t *sqliteTier) Close() error {
	return t.db.Close()
}

func (t *sqliteTier) one(
	ctx context.Context,
	query string,
	args ...any,
) (catalog.Record, error) {
	row := t.db.QueryRowContext(ctx, query, args...)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Record{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Record{}, NewQueryError(t.path, err)
	}
	return rec, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (catalog.Record, error) {
	var rec catalog.Record
	var isGeo, deprecated int64
	err := s.Scan(
		&rec.SrsID, &rec.Description, &rec.ProjectionAcronym,
		&rec.EllipsoidAcronym, &rec.Proj4, &rec.Srid, &rec.AuthName,
		&rec.EpsgID, &rec.Wkt, &isGeo, &deprecated,
	)
	if err != nil {
		return catalog.Record{}, err
	}
	rec.IsGeo = isGeo != 0
	rec.Deprecated = deprecated != 0
	return rec, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
