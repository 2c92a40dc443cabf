package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Definition parsing errors
	FormatError
	UserInputError
	WmsCrsLabelError

	// Catalog errors
	CatalogOpenError
	CatalogSchemaError
	CatalogQueryError
	CatalogScanError
	CatalogInsertError
	CatalogUpdateError

	// Proj capability errors
	ProjParseError
	WktParseError

	// Persistence errors
	PersistEncodeError
	MalformedPersistedStateError

	// Sync errors
	SyncSourceConnectionError
	SyncSourceQueryError
	SyncReconcileError
)
