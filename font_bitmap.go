package img2ascii

import (
	"fmt"
	"image"
	"math/bits"
	"os"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	// GlyphSize is the side of the square cell every glyph is rendered into.
	GlyphSize = 16

	// alphaThreshold turns anti-aliased coverage into on/off pixels. 25%
	// keeps thin strokes and dots that a 50% cut would drop.
	alphaThreshold = 64
)

// GlyphBitmap is a GlyphSize x GlyphSize on/off bitmap, one bit per pixel,
// row-major. A set bit is an inked pixel.
type GlyphBitmap [GlyphSize * GlyphSize / 64]uint64

// GlyphSource supplies the rendered bitmap of a character. Implementations
// must be deterministic.
type GlyphSource interface {
	Glyph(r rune) (GlyphBitmap, error)
}

// getBit checks if a specific bit is set in the bitmap
func (g GlyphBitmap) getBit(x, y int) bool {
	if x < 0 || x >= GlyphSize || y < 0 || y >= GlyphSize {
		return false
	}
	pos := y*GlyphSize + x
	return g[pos/64]&(1<<(pos%64)) != 0
}

// setBit sets a specific bit in the bitmap
func (g *GlyphBitmap) setBit(x, y int, value bool) {
	if x < 0 || x >= GlyphSize || y < 0 || y >= GlyphSize {
		return
	}
	pos := y*GlyphSize + x
	if value {
		g[pos/64] |= 1 << (pos % 64)
	} else {
		g[pos/64] &^= 1 << (pos % 64)
	}
}

// OnCount returns the number of set pixels.
func (g GlyphBitmap) OnCount() int {
	n := 0
	for _, word := range g {
		n += bits.OnesCount64(word)
	}
	return n
}

// Density returns the fraction of set pixels, the raw brightness of the
// glyph.
func (g GlyphBitmap) Density() float64 {
	return float64(g.OnCount()) / (GlyphSize * GlyphSize)
}

// Rows returns the bitmap as a 2D boolean grid indexed [row][col].
func (g GlyphBitmap) Rows() [][]bool {
	rows := make([][]bool, GlyphSize)
	for y := range rows {
		rows[y] = make([]bool, GlyphSize)
		for x := range rows[y] {
			rows[y][x] = g.getBit(x, y)
		}
	}
	return rows
}

// String draws the bitmap with '#' for set pixels, for debugging.
func (g GlyphBitmap) String() string {
	var sb strings.Builder
	for y := 0; y < GlyphSize; y++ {
		for x := 0; x < GlyphSize; x++ {
			if g.getBit(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// bitmapFromAlpha thresholds an alpha mask into a bitmap.
func bitmapFromAlpha(img *image.Alpha) GlyphBitmap {
	var bitmap GlyphBitmap
	for y := 0; y < GlyphSize; y++ {
		for x := 0; x < GlyphSize; x++ {
			if img.AlphaAt(x, y).A > alphaThreshold {
				bitmap.setBit(x, y, true)
			}
		}
	}
	return bitmap
}

// baseline returns the y position that vertically centres a face's line
// box in the glyph cell.
func baseline(m font.Metrics) int {
	return (GlyphSize + m.Ascent.Round() - m.Descent.Round()) / 2
}

// BasicFontGlyphs renders glyphs with the 7x13 bitmap face from
// golang.org/x/image. It needs no font files and covers printable ASCII.
type BasicFontGlyphs struct {
	face *basicfont.Face
}

// NewBasicFontGlyphs returns the built-in glyph source.
func NewBasicFontGlyphs() *BasicFontGlyphs {
	return &BasicFontGlyphs{face: basicfont.Face7x13}
}

// covers reports whether the face has its own bitmap for r. The face
// would otherwise substitute the replacement character.
func (b *BasicFontGlyphs) covers(r rune) bool {
	for _, rng := range b.face.Ranges {
		if rng.Low <= r && r < rng.High {
			return true
		}
	}
	return false
}

// Glyph renders r centred in the glyph cell.
func (b *BasicFontGlyphs) Glyph(r rune) (GlyphBitmap, error) {
	if !b.covers(r) {
		return GlyphBitmap{}, fmt.Errorf("%w: %q in basic font", ErrGlyphNotFound, r)
	}
	advance, _ := b.face.GlyphAdvance(r)

	img := image.NewAlpha(image.Rect(0, 0, GlyphSize, GlyphSize))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: b.face,
		Dot: fixed.Point26_6{
			X: (fixed.I(GlyphSize) - advance) / 2,
			Y: fixed.I(baseline(b.face.Metrics())),
		},
	}
	d.DrawString(string(r))

	return bitmapFromAlpha(img), nil
}

// TrueTypeGlyphs renders glyphs from a TrueType font at GlyphSize pixels.
type TrueTypeGlyphs struct {
	name string
	font *truetype.Font
	face font.Face
}

// LoadTrueTypeGlyphs parses the TrueType font at path.
func LoadTrueTypeGlyphs(path string) (*TrueTypeGlyphs, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return ParseTrueTypeGlyphs(path, fontBytes)
}

// ParseTrueTypeGlyphs builds a glyph source from TrueType font data.
func ParseTrueTypeGlyphs(name string, fontBytes []byte) (*TrueTypeGlyphs, error) {
	f, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
	}
	return &TrueTypeGlyphs{
		name: name,
		font: f,
		face: truetype.NewFace(f, &truetype.Options{
			Size:    GlyphSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
	}, nil
}

// Name returns the font path or name the source was created with.
func (t *TrueTypeGlyphs) Name() string {
	return t.name
}

// Close releases the font face.
func (t *TrueTypeGlyphs) Close() error {
	return t.face.Close()
}

// Glyph renders r with the freetype rasterizer. The space character is
// allowed to have an empty outline; any other rune mapped to the .notdef
// glyph is reported as missing.
func (t *TrueTypeGlyphs) Glyph(r rune) (GlyphBitmap, error) {
	if r != ' ' && t.font.Index(r) == 0 {
		return GlyphBitmap{}, fmt.Errorf("%w: %q in %s", ErrGlyphNotFound, r, t.name)
	}

	img := image.NewAlpha(image.Rect(0, 0, GlyphSize, GlyphSize))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(t.font)
	ctx.SetFontSize(GlyphSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.Opaque)
	ctx.SetHinting(font.HintingFull)

	x := 0
	if advance, ok := t.face.GlyphAdvance(r); ok {
		x = (GlyphSize - advance.Round()) / 2
	}
	pt := freetype.Pt(x, baseline(t.face.Metrics()))
	if _, err := ctx.DrawString(string(r), pt); err != nil {
		return GlyphBitmap{}, fmt.Errorf("failed to draw %q: %w", r, err)
	}

	return bitmapFromAlpha(img), nil
}

// OpenTypeGlyphs renders glyphs from an OpenType font or the first font of
// a collection, using the x/image sfnt rasterizer.
type OpenTypeGlyphs struct {
	name string
	font *opentype.Font
	face font.Face
	buf  sfnt.Buffer
}

// LoadOpenTypeGlyphs parses the OpenType font or collection at path.
func LoadOpenTypeGlyphs(path string) (*OpenTypeGlyphs, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return ParseOpenTypeGlyphs(path, fontBytes)
}

// ParseOpenTypeGlyphs builds a glyph source from OpenType font data. Font
// collections are accepted and their first font is used.
func ParseOpenTypeGlyphs(name string, fontBytes []byte) (*OpenTypeGlyphs, error) {
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		coll, collErr := opentype.ParseCollection(fontBytes)
		if collErr != nil || coll.NumFonts() == 0 {
			return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
		}
		if f, err = coll.Font(0); err != nil {
			return nil, fmt.Errorf("failed to read font 0 of %s: %w", name, err)
		}
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    GlyphSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face for %s: %w", name, err)
	}
	return &OpenTypeGlyphs{name: name, font: f, face: face}, nil
}

// Name returns the font path or name the source was created with.
func (o *OpenTypeGlyphs) Name() string {
	return o.name
}

// Close releases the font face.
func (o *OpenTypeGlyphs) Close() error {
	return o.face.Close()
}

// Glyph renders r centred in the glyph cell. Runes mapped to the .notdef
// glyph, other than space, are reported as missing.
func (o *OpenTypeGlyphs) Glyph(r rune) (GlyphBitmap, error) {
	idx, err := o.font.GlyphIndex(&o.buf, r)
	if err != nil {
		return GlyphBitmap{}, fmt.Errorf("failed to look up %q in %s: %w", r, o.name, err)
	}
	if idx == 0 && r != ' ' {
		return GlyphBitmap{}, fmt.Errorf("%w: %q in %s", ErrGlyphNotFound, r, o.name)
	}

	advance, _ := o.face.GlyphAdvance(r)
	img := image.NewAlpha(image.Rect(0, 0, GlyphSize, GlyphSize))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: o.face,
		Dot: fixed.Point26_6{
			X: (fixed.I(GlyphSize) - advance) / 2,
			Y: fixed.I(baseline(o.face.Metrics())),
		},
	}
	d.DrawString(string(r))

	return bitmapFromAlpha(img), nil
}
