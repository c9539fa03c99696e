package tabulate

import "errors"

// Sentinel errors for programmatic error handling.
var (
	// ErrEmptyTableData indicates the writer has no table name, no headers,
	// no value matrix, and no cached typed matrix. WriteTable treats it as a
	// silent skip; it is surfaced only by the lower-level verification.
	ErrEmptyTableData = errors.New("empty table data")

	// ErrEmptyTableName indicates the target format requires a table name
	// and none was set.
	ErrEmptyTableName = errors.New("empty table name")

	// ErrEmptyHeader indicates the target format requires headers and none
	// were set.
	ErrEmptyHeader = errors.New("empty header")

	// ErrEmptyValue indicates the value matrix is empty while headers are
	// present. Recovered internally to allow header-only output.
	ErrEmptyValue = errors.New("empty value matrix")

	// ErrNotSupported indicates an operation the target format cannot
	// perform, such as a chunked write on a single-document format.
	ErrNotSupported = errors.New("not supported")

	// ErrInvalidArgument indicates a malformed argument, such as a column
	// specifier that is neither an index nor a known header name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNilStream indicates a render was requested with no output stream.
	ErrNilStream = errors.New("nil output stream")

	// ErrUnsupportedFormat indicates an unknown format name.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
