package iosync

import (
	"fmt"

	"github.com/gnames/gnlib"
)

// ConnectionError is returned when the definition source cannot be
// reached.
type ConnectionError struct {
	error
	gnlib.MessageBase
}

// NewConnectionError creates a connection error with user-friendly
// message.
func NewConnectionError(host string, port int, database string, cause error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Definition Source Unavailable</title>

<warning>Could not connect to the PostGIS definition source.</warning>

<em>Possible causes:</em>
  • PostGIS is not running
  • Sync configuration is incorrect
  • Network connectivity issues

<em>How to fix:</em>
  1. Check if PostGIS is running:
     <em>pg_isready -h %s -p %d</em>

  2. Review connection settings in:
     <em>~/.config/srsdb/config.yaml</em>

  3. Current settings:
     Host: %s
     Port: %d
     Database: %s
`,
		Vars: []any{host, port, host, port, database},
	}

	return ConnectionError{
		error: fmt.Errorf(
			"failed to connect to %s:%d/%s: %w", host, port, database, cause),
		MessageBase: msgBase,
	}
}

// SourceQueryError is returned when fetching one definition fails for
// reasons other than a missing row.
type SourceQueryError struct {
	error
	gnlib.MessageBase
}

// NewSourceQueryError creates an error for a failed definition fetch.
func NewSourceQueryError(code int64, cause error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Cannot Fetch Definition</title>
<warn>Failed to read the spatial_ref_sys row for EPSG:%d.</warn>
`,
		Vars: []any{code},
	}

	return SourceQueryError{
		error: fmt.Errorf(
			"failed to query definition for EPSG:%d: %w", code, cause),
		MessageBase: msgBase,
	}
}
