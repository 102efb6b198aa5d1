package importer

import "errors"

// Whole-file failures. Anything row-scoped goes into the report instead.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("file has no data rows")
	ErrMalformedInput    = errors.New("malformed input")
)
