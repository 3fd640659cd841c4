package export

import "errors"

var (
	// ErrUnsupportedFormat is returned for an unknown export format.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
