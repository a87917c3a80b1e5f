package imageutil

import (
	"fmt"
	"math/bits"
)

// maxPowerOfTwo is the largest power of two an int can hold.
const maxPowerOfTwo = 1 << (bits.UintSize - 2)

// NextPowerOfTwo returns the smallest power of two that is >= n. Values
// whose next power of two does not fit in an int are rejected.
func NextPowerOfTwo(n int) (int, error) {
	if n <= 0 || n > maxPowerOfTwo {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDimensions, n)
	}
	return 1 << bits.Len(uint(n-1)), nil
}

// Pad returns a copy of buf centered on a white canvas whose sides are the
// next powers of two. Offsets are floored, so odd margins put the extra
// column on the right and the extra row on the bottom.
func Pad(buf *PixelBuffer) (*PixelBuffer, error) {
	newWidth, err := NextPowerOfTwo(buf.width)
	if err != nil {
		return nil, err
	}
	newHeight, err := NextPowerOfTwo(buf.height)
	if err != nil {
		return nil, err
	}
	xOffset := (newWidth - buf.width) / 2
	yOffset := (newHeight - buf.height) / 2

	padded := newBuffer(newWidth, newHeight)
	for i := range padded.pix {
		padded.pix[i] = White
	}
	for row := 0; row < buf.height; row++ {
		dst := (row+yOffset)*newWidth + xOffset
		copy(padded.pix[dst:dst+buf.width], buf.pix[row*buf.width:(row+1)*buf.width])
	}
	return padded, nil
}

// Split cuts buf into a grid of square tiles, columns tiles wide. The tile
// side is width/columns and the number of rows is height/side. Tiles are
// returned row-major and each one owns its pixels.
func Split(buf *PixelBuffer, columns int) ([][]*PixelBuffer, error) {
	if columns <= 0 || columns > buf.width {
		return nil, fmt.Errorf("%w: %d columns for width %d",
			ErrInvalidResolution, columns, buf.width)
	}
	if buf.width%columns != 0 {
		return nil, fmt.Errorf("%w: %d columns do not divide width %d",
			ErrInvalidResolution, columns, buf.width)
	}
	side := buf.width / columns
	if buf.height%side != 0 {
		return nil, fmt.Errorf("%w: tile side %d does not divide height %d",
			ErrInvalidResolution, side, buf.height)
	}
	rows := buf.height / side

	tiles := make([][]*PixelBuffer, rows)
	for r := 0; r < rows; r++ {
		tiles[r] = make([]*PixelBuffer, columns)
		for c := 0; c < columns; c++ {
			tile := newBuffer(side, side)
			for y := 0; y < side; y++ {
				src := (r*side+y)*buf.width + c*side
				copy(tile.pix[y*side:(y+1)*side], buf.pix[src:src+side])
			}
			tiles[r][c] = tile
		}
	}
	return tiles, nil
}
