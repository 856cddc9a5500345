package source

import "errors"

// Common source errors.
var (
	// ErrUnsupportedExtension is returned for files whose extension has no
	// record decoder.
	ErrUnsupportedExtension = errors.New("unsupported record file extension")

	// ErrNoFiles is returned when patterns match no record files.
	ErrNoFiles = errors.New("no record files match")
)
