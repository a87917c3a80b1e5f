// Package imageutil provides the pixel-level side of ASCII conversion:
// an immutable RGB pixel buffer, power-of-two padding, square tiling,
// perceptual brightness scoring and image file loading.
package imageutil

import (
	"fmt"
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// White is the fill color used for padding.
var White = RGB{R: 255, G: 255, B: 255}

// ToColor converts RGB to color.RGBA for use with standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBFromColor converts a color.Color to RGB.
func RGBFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// PixelBuffer is an immutable width x height grid of RGB samples stored
// row-major. Transformations such as padding and splitting always return a
// new buffer.
type PixelBuffer struct {
	width  int
	height int
	pix    []RGB
}

// NewPixelBuffer creates a buffer from row-major pixel data. The slice is
// copied, so later changes to pix do not affect the buffer.
func NewPixelBuffer(width, height int, pix []RGB) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	// Division keeps huge dimensions from overflowing width*height.
	if len(pix)%width != 0 || len(pix)/width != height {
		return nil, fmt.Errorf("pixel data has %d samples, want %dx%d",
			len(pix), width, height)
	}
	buf := newBuffer(width, height)
	copy(buf.pix, pix)
	return buf, nil
}

// Fill creates a buffer of the given size where every pixel is c.
func Fill(width, height int, c RGB) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	buf := newBuffer(width, height)
	for i := range buf.pix {
		buf.pix[i] = c
	}
	return buf, nil
}

// FromImage converts any image.Image to a PixelBuffer. Bounds that do not
// start at (0, 0) are shifted so the top-left pixel is (0, 0).
func FromImage(img image.Image) (*PixelBuffer, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, bounds.Dx(), bounds.Dy())
	}
	buf := newBuffer(bounds.Dx(), bounds.Dy())

	// Fast path for the common decoded formats.
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < buf.height; y++ {
			for x := 0; x < buf.width; x++ {
				c := rgba.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
				buf.pix[y*buf.width+x] = RGB{R: c.R, G: c.G, B: c.B}
			}
		}
		return buf, nil
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buf.pix[(y-bounds.Min.Y)*buf.width+(x-bounds.Min.X)] = RGBFromColor(img.At(x, y))
		}
	}
	return buf, nil
}

// newBuffer allocates a zeroed buffer. Callers validate dimensions.
func newBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]RGB, width*height),
	}
}

// Width returns the buffer width.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the buffer height.
func (b *PixelBuffer) Height() int {
	return b.height
}

// PixelAt returns the pixel at (row, col). Row indexes the y axis and col
// the x axis.
func (b *PixelBuffer) PixelAt(row, col int) (RGB, error) {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return RGB{}, fmt.Errorf("%w: (%d, %d) outside %dx%d",
			ErrOutOfBounds, row, col, b.width, b.height)
	}
	return b.at(row, col), nil
}

func (b *PixelBuffer) at(row, col int) RGB {
	return b.pix[row*b.width+col]
}

// ToImage converts the buffer to an *image.RGBA.
func (b *PixelBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			img.SetRGBA(col, row, b.at(row, col).ToColor())
		}
	}
	return img
}

// Equal reports whether two buffers have the same size and pixels.
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}
