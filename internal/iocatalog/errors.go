package iocatalog

import (
	"fmt"

	"github.com/gnames/gnlib"
)

// OpenError is returned when a catalog tier file cannot be opened.
type OpenError struct {
	error
	gnlib.MessageBase
}

// NewOpenError creates an error for a tier that cannot be opened.
func NewOpenError(path string, err error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Cannot Open CRS Catalog</title>
<warn>Failed to open catalog file.</warn>

<em>How to fix:</em>
  1. Check that the file exists: <em>%s</em>
  2. Run <em>srsdb init</em> to create the baseline catalog
  3. Verify file permissions
`,
		Vars: []any{path},
	}
	return OpenError{
		error:       fmt.Errorf("cannot open catalog %s: %w", path, err),
		MessageBase: msgBase,
	}
}

// SchemaError is returned when the overlay tier schema cannot be
// created.
type SchemaError struct {
	error
	gnlib.MessageBase
}

// NewSchemaError creates an error for failed schema bootstrap.
func NewSchemaError(path string, err error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Cannot Prepare User Catalog</title>
<warn>Failed to create the tbl_srs table in %s.</warn>

<em>Possible causes:</em>
  1. The file is not an SQLite database
  2. The file is corrupted or locked by another process
`,
		Vars: []any{path},
	}
	return SchemaError{
		error:       fmt.Errorf("cannot create schema in %s: %w", path, err),
		MessageBase: msgBase,
	}
}

// QueryError is returned when a catalog query fails for reasons other
// than a missing row.
type QueryError struct {
	error
	gnlib.MessageBase
}

// NewQueryError creates an error for a failed catalog query.
func NewQueryError(path string, err error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Catalog Query Failed</title>
<warn>Could not query the CRS catalog at %s.</warn>
`,
		Vars: []any{path},
	}
	return QueryError{
		error:       fmt.Errorf("catalog query failed in %s: %w", path, err),
		MessageBase: msgBase,
	}
}

// ScanError is returned when a catalog row cannot be read.
type ScanError struct {
	error
	gnlib.MessageBase
}

// NewScanError creates an error for a row that cannot be scanned.
func NewScanError(path string, err error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Cannot Read Catalog Row</title>
<warn>A row in %s does not match the expected schema.</warn>

<em>How to fix:</em>
  1. Recreate the catalog: <em>srsdb init --force</em>
`,
		Vars: []any{path},
	}
	return ScanError{
		error:       fmt.Errorf("catalog scan failed in %s: %w", path, err),
		MessageBase: msgBase,
	}
}

// InsertError is returned when an overlay-tier insert fails.
type InsertError struct {
	error
	gnlib.MessageBase
}

// NewInsertError creates an error for a failed insert.
func NewInsertError(path string, err error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Cannot Register User CRS</title>
<warn>Failed to write into the user catalog at %s.</warn>

<em>Possible causes:</em>
  1. The file or its directory is not writable
  2. The database is locked by another process
`,
		Vars: []any{path},
	}
	return InsertError{
		error:       fmt.Errorf("catalog insert failed in %s: %w", path, err),
		MessageBase: msgBase,
	}
}

// UpdateError is returned when an overlay-tier update fails.
type UpdateError struct {
	error
	gnlib.MessageBase
}

// NewUpdateError creates an error for a failed update.
func NewUpdateError(path string, srsID int64, err error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Cannot Update User CRS</title>
<warn>Failed to update record %d in %s.</warn>
`,
		Vars: []any{srsID, path},
	}
	return UpdateError{
		error: fmt.Errorf(
			"catalog update of srs_id %d failed in %s: %w", srsID, path, err),
		MessageBase: msgBase,
	}
}

// ReadOnlyError is returned when a write is attempted on the baseline
// tier.
type ReadOnlyError struct {
	error
	gnlib.MessageBase
}

// NewReadOnlyError creates an error for writes against a read-only
// tier.
func NewReadOnlyError(path string) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Catalog Tier Is Read-Only</title>
<warn>The baseline catalog %s never accepts writes.</warn>

User systems are registered into the overlay catalog instead.
`,
		Vars: []any{path},
	}
	return ReadOnlyError{
		error:       fmt.Errorf("tier %s is read-only", path),
		MessageBase: msgBase,
	}
}
