package img2ascii

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// GlyphSet is a precomputed table of glyph bitmaps, typically rendered once
// from a TrueType font with cmd/computeglyphs and loaded from a .glyphs
// file. Runes missing from the table are looked up in an optional fallback
// source.
type GlyphSet struct {
	name     string
	glyphs   map[rune]GlyphBitmap
	fallback GlyphSource
}

// glyphSetData is the serialized form of a GlyphSet.
type glyphSetData struct {
	FontName string
	Glyphs   map[rune]GlyphBitmap
}

// BlockRunes are the Unicode block elements rendered alongside printable
// ASCII when precomputing glyph sets.
var BlockRunes = []rune{
	'▀', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█',
	'▌', '▍', '▎', '▏', '▐', '░', '▒', '▓',
	'▔', '▕', '▖', '▗', '▘', '▙', '▚', '▛', '▜', '▝', '▞', '▟',
}

// BoxRunes are the box drawing characters rendered when precomputing glyph
// sets.
var BoxRunes = []rune{
	'─', '━', '│', '┃', '┄', '┅', '┆', '┇', '┈', '┉', '┊', '┋',
	'┌', '┐', '└', '┘', '├', '┤', '┬', '┴', '┼',
	'═', '║', '╔', '╗', '╚', '╝', '╠', '╣', '╦', '╩', '╬',
}

// ComputeGlyphSet renders runes with src into a GlyphSet. Runes the source
// does not have are skipped and logged; other errors abort.
func ComputeGlyphSet(src GlyphSource, name string, runes []rune) (*GlyphSet, error) {
	set := &GlyphSet{
		name:   name,
		glyphs: make(map[rune]GlyphBitmap, len(runes)),
	}
	for _, r := range runes {
		g, err := src.Glyph(r)
		if errors.Is(err, ErrGlyphNotFound) {
			Logger().Warn("skipping missing glyph", "font", name, "rune", string(r))
			continue
		}
		if err != nil {
			return nil, err
		}
		set.glyphs[r] = g
	}
	return set, nil
}

// LoadGlyphSet reads a gzip-compressed gob glyph table.
func LoadGlyphSet(r io.Reader) (*GlyphSet, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gr.Close()

	var data glyphSetData
	if err := gob.NewDecoder(gr).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode glyph data: %w", err)
	}
	if data.Glyphs == nil {
		data.Glyphs = make(map[rune]GlyphBitmap)
	}
	return &GlyphSet{name: data.FontName, glyphs: data.Glyphs}, nil
}

// LoadGlyphSetFile reads a .glyphs file from disk.
func LoadGlyphSetFile(path string) (*GlyphSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open glyph file: %w", err)
	}
	defer f.Close()
	return LoadGlyphSet(f)
}

// Save writes the set as a gzip-compressed gob. The fallback source is not
// saved.
func (s *GlyphSet) Save(w io.Writer) error {
	gz := gzip.NewWriter(w)
	data := glyphSetData{FontName: s.name, Glyphs: s.glyphs}
	if err := gob.NewEncoder(gz).Encode(&data); err != nil {
		gz.Close()
		return fmt.Errorf("failed to encode glyph data: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to close gzip: %w", err)
	}
	return nil
}

// WithFallback sets the source consulted for runes not in the set and
// returns s.
func (s *GlyphSet) WithFallback(src GlyphSource) *GlyphSet {
	s.fallback = src
	return s
}

// Name returns the font name recorded in the set.
func (s *GlyphSet) Name() string {
	return s.name
}

// Len returns the number of glyphs in the table.
func (s *GlyphSet) Len() int {
	return len(s.glyphs)
}

// Runes returns the runes in the table in ascending order.
func (s *GlyphSet) Runes() []rune {
	runes := make([]rune, 0, len(s.glyphs))
	for r := range s.glyphs {
		runes = append(runes, r)
	}
	slices.Sort(runes)
	return runes
}

// Glyph returns the stored bitmap for r, checking the fallback if needed.
func (s *GlyphSet) Glyph(r rune) (GlyphBitmap, error) {
	if g, ok := s.glyphs[r]; ok {
		return g, nil
	}
	if s.fallback != nil {
		return s.fallback.Glyph(r)
	}
	return GlyphBitmap{}, fmt.Errorf("%w: %q in %s", ErrGlyphNotFound, r, s.name)
}

// OpenGlyphSource picks a glyph source for path: the built-in basic font
// for "", a TrueType font for .ttf, an OpenType font or collection for
// .otf and .ttc, or a precomputed table for .glyphs (with the basic font
// as fallback).
func OpenGlyphSource(path string) (GlyphSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "":
		if path == "" {
			return NewBasicFontGlyphs(), nil
		}
	case ".ttf":
		return LoadTrueTypeGlyphs(path)
	case ".otf", ".ttc":
		return LoadOpenTypeGlyphs(path)
	case ".glyphs":
		set, err := LoadGlyphSetFile(path)
		if err != nil {
			return nil, err
		}
		return set.WithFallback(NewBasicFontGlyphs()), nil
	}
	return nil, fmt.Errorf("unsupported font file %s (want .ttf, .otf, .ttc or .glyphs)", path)
}
