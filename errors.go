package img2ascii

import "errors"

var (
	// ErrEmptyIndex is returned when a character index with no entries is
	// queried or used for rendering.
	ErrEmptyIndex = errors.New("character index is empty")

	// ErrGlyphNotFound is returned when a glyph source has no bitmap for a
	// rune.
	ErrGlyphNotFound = errors.New("glyph not found")

	// ErrResolutionLimit is returned when stepping the resolution would
	// leave the range an image supports.
	ErrResolutionLimit = errors.New("resolution out of range")
)
