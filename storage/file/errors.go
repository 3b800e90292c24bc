package file

import "errors"

// ErrUnsupportedFormat is returned for paths that are neither .json nor .parquet.
var ErrUnsupportedFormat = errors.New("unsupported corpus file format")
