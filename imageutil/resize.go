package imageutil

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize returns buf scaled to width x height.
func Resize(buf *PixelBuffer, width, height int, interp Interpolation) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	src := buf.ToImage()
	interp.scaler().Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromImage(dst)
}

// ResizeToWidth scales buf down to at most width pixels wide, keeping the
// aspect ratio. Buffers that already fit are returned unchanged.
func ResizeToWidth(buf *PixelBuffer, width int, interp Interpolation) (*PixelBuffer, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width %d", ErrInvalidDimensions, width)
	}
	if buf.width <= width {
		return buf, nil
	}
	height := max(1, buf.height*width/buf.width)
	return Resize(buf, width, height, interp)
}
