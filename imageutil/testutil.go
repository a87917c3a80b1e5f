package imageutil

// Synthetic buffers for tests and examples. Sizes must be positive.

// CreateGradientImage creates a horizontal black-to-white gradient.
func CreateGradientImage(width, height int) *PixelBuffer {
	buf := newBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(0)
			if width > 1 {
				v = uint8(255 * x / (width - 1))
			}
			buf.pix[y*width+x] = RGB{R: v, G: v, B: v}
		}
	}
	return buf
}

// CreateVerticalGradientImage creates a vertical black-to-white gradient.
func CreateVerticalGradientImage(width, height int) *PixelBuffer {
	buf := newBuffer(width, height)
	for y := 0; y < height; y++ {
		v := uint8(0)
		if height > 1 {
			v = uint8(255 * y / (height - 1))
		}
		for x := 0; x < width; x++ {
			buf.pix[y*width+x] = RGB{R: v, G: v, B: v}
		}
	}
	return buf
}

// CreateCheckerboardImage creates a black and white checkerboard with a
// white top-left square.
func CreateCheckerboardImage(width, height, squareSize int) *PixelBuffer {
	buf := newBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				buf.pix[y*width+x] = White
			}
		}
	}
	return buf
}

// CreateSolidImage creates a solid color buffer.
func CreateSolidImage(width, height int, c RGB) *PixelBuffer {
	buf := newBuffer(width, height)
	for i := range buf.pix {
		buf.pix[i] = c
	}
	return buf
}

// CreateIndexedImage creates a buffer where every pixel is unique, which
// makes misplaced pixels easy to spot. The pixel at (row, col) encodes
// row in R, col in G and (row+col) in B.
func CreateIndexedImage(width, height int) *PixelBuffer {
	buf := newBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.pix[y*width+x] = RGB{R: uint8(y), G: uint8(x), B: uint8(x + y)}
		}
	}
	return buf
}

// CalculateMaxDiff returns the maximum per-channel difference between two
// buffers, or 256 if their sizes differ.
func CalculateMaxDiff(a, b *PixelBuffer) int {
	if a.width != b.width || a.height != b.height {
		return 256
	}
	maxDiff := 0
	for i := range a.pix {
		c1, c2 := a.pix[i], b.pix[i]
		maxDiff = max(maxDiff,
			abs(int(c1.R)-int(c2.R)),
			abs(int(c1.G)-int(c2.G)),
			abs(int(c1.B)-int(c2.B)))
	}
	return maxDiff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
