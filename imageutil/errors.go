package imageutil

import "errors"

var (
	// ErrInvalidDimensions is returned for zero or negative image sizes.
	ErrInvalidDimensions = errors.New("invalid image dimensions")

	// ErrInvalidResolution is returned when a column count cannot split an
	// image into equal square tiles.
	ErrInvalidResolution = errors.New("invalid resolution")

	// ErrOutOfBounds is returned for pixel access outside a buffer.
	ErrOutOfBounds = errors.New("pixel out of bounds")
)
