package img2ascii

import (
	"fmt"
	"math"
)

const (
	// FirstPrintable and LastPrintable bound the printable ASCII range
	// used by "add all" and "remove all".
	FirstPrintable = ' '
	LastPrintable  = '~'

	// degenerateScore is the normalized brightness of every character when
	// the set has no brightness spread, e.g. a single character.
	degenerateScore = 0.5

	// tieEpsilon absorbs floating point noise when comparing distances in
	// Nearest, so equidistant characters resolve to the smaller codepoint.
	tieEpsilon = 1e-9
)

// DefaultChars is the starting character set: the digits 0-9.
var DefaultChars = []rune{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'}

// CharIndex maps target brightness values to characters. Every character
// carries a raw brightness (the ink density of its glyph) and a normalized
// brightness rescaled to [0, 1] over the current set. Characters are kept
// in ascending codepoint order.
//
// Any Add or Remove renormalizes the whole index before returning. When all
// characters share the same raw brightness (including the single-character
// case) every normalized score is 0.5.
//
// CharIndex is not safe for concurrent use; callers that share one must
// serialize access.
type CharIndex struct {
	src    GlyphSource
	raw    *SortedMap[rune, float64]
	norm   map[rune]float64
	cache  map[rune]float64
	minRaw float64
	maxRaw float64
	ranged bool // false while the index is empty
}

// NewCharIndex builds an index over chars using src for glyph bitmaps.
// Duplicates are ignored. A nil src selects the built-in basic font.
func NewCharIndex(src GlyphSource, chars ...rune) (*CharIndex, error) {
	if src == nil {
		src = NewBasicFontGlyphs()
	}
	idx := &CharIndex{
		src:   src,
		raw:   NewSortedMap[rune, float64](),
		norm:  make(map[rune]float64),
		cache: make(map[rune]float64),
	}
	for _, c := range chars {
		if idx.raw.Has(c) {
			continue
		}
		b, err := idx.rawBrightness(c)
		if err != nil {
			return nil, err
		}
		idx.raw.Set(c, b)
		idx.extendRange(b)
	}
	idx.normalize()
	return idx, nil
}

// rawBrightness returns the glyph density of c. Values are cached for the
// lifetime of the index, so removing and re-adding a character does not
// render it again.
func (idx *CharIndex) rawBrightness(c rune) (float64, error) {
	if b, ok := idx.cache[c]; ok {
		return b, nil
	}
	g, err := idx.src.Glyph(c)
	if err != nil {
		return 0, fmt.Errorf("brightness of %q: %w", c, err)
	}
	b := g.Density()
	idx.cache[c] = b
	return b, nil
}

func (idx *CharIndex) extendRange(b float64) {
	if !idx.ranged {
		idx.minRaw, idx.maxRaw, idx.ranged = b, b, true
		return
	}
	idx.minRaw = math.Min(idx.minRaw, b)
	idx.maxRaw = math.Max(idx.maxRaw, b)
}

func (idx *CharIndex) rescanRange() {
	idx.ranged = false
	idx.raw.Iterate(func(_ rune, b float64) {
		idx.extendRange(b)
	})
}

func (idx *CharIndex) normalize() {
	clear(idx.norm)
	span := idx.maxRaw - idx.minRaw
	idx.raw.Iterate(func(c rune, b float64) {
		if span == 0 {
			idx.norm[c] = degenerateScore
			return
		}
		idx.norm[c] = (b - idx.minRaw) / span
	})
	Logger().Debug("normalized character index",
		"chars", idx.raw.Len(), "min", idx.minRaw, "max", idx.maxRaw)
}

// Add inserts c. Adding a character that is already present does nothing.
// An error is returned only if the glyph source cannot render c, in which
// case the index is unchanged.
func (idx *CharIndex) Add(c rune) error {
	if idx.raw.Has(c) {
		return nil
	}
	b, err := idx.rawBrightness(c)
	if err != nil {
		return err
	}
	idx.raw.Set(c, b)
	idx.extendRange(b)
	idx.normalize()
	return nil
}

// Remove deletes c. Removing an absent character does nothing.
func (idx *CharIndex) Remove(c rune) {
	b, ok := idx.raw.Get(c)
	if !ok {
		return
	}
	idx.raw.Delete(c)
	switch {
	case idx.raw.Len() == 0:
		idx.minRaw, idx.maxRaw, idx.ranged = 0, 0, false
	case b == idx.minRaw || b == idx.maxRaw:
		idx.rescanRange()
	}
	idx.normalize()
}

// AddRange adds every character between lo and hi inclusive; the bounds
// may be given in either order. It stops at the first glyph error.
func (idx *CharIndex) AddRange(lo, hi rune) error {
	if lo > hi {
		lo, hi = hi, lo
	}
	for c := lo; c <= hi; c++ {
		if err := idx.Add(c); err != nil {
			return err
		}
	}
	return nil
}

// RemoveRange removes every character between lo and hi inclusive; the
// bounds may be given in either order.
func (idx *CharIndex) RemoveRange(lo, hi rune) {
	if lo > hi {
		lo, hi = hi, lo
	}
	for c := lo; c <= hi; c++ {
		idx.Remove(c)
	}
}

// Nearest returns the character whose normalized brightness is closest to
// target. Equidistant characters resolve to the smaller codepoint.
func (idx *CharIndex) Nearest(target float64) (rune, error) {
	if idx.raw.Len() == 0 {
		return 0, ErrEmptyIndex
	}
	var best rune
	bestDiff := math.Inf(1)
	// Keys iterate in ascending order, so only a strictly smaller distance
	// replaces the current best.
	idx.raw.Iterate(func(c rune, _ float64) {
		diff := math.Abs(idx.norm[c] - target)
		if diff < bestDiff-tieEpsilon {
			best, bestDiff = c, diff
		}
	})
	return best, nil
}

// Chars returns the characters in ascending codepoint order.
func (idx *CharIndex) Chars() []rune {
	return idx.raw.Keys()
}

// Len returns the number of characters in the index.
func (idx *CharIndex) Len() int {
	return idx.raw.Len()
}

// Has reports whether c is in the index.
func (idx *CharIndex) Has(c rune) bool {
	return idx.raw.Has(c)
}

// Raw returns the raw brightness of c.
func (idx *CharIndex) Raw(c rune) (float64, bool) {
	return idx.raw.Get(c)
}

// Normalized returns the normalized brightness of c.
func (idx *CharIndex) Normalized(c rune) (float64, bool) {
	b, ok := idx.norm[c]
	return b, ok
}
