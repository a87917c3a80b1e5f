package imageutil

import (
	"image"

	"github.com/disintegration/imaging"
)

// Adjustments are optional tone corrections applied before tiling. The
// zero value leaves the image untouched.
type Adjustments struct {
	Gamma      float64 // 1.0 or 0 = unchanged, <1 darkens, >1 lightens
	Contrast   float64 // percent in [-100, 100]
	Brightness float64 // percent in [-100, 100]
	Sharpen    float64 // gaussian sigma, 0 = off
	Invert     bool
}

// IsZero reports whether a leaves images unchanged.
func (a Adjustments) IsZero() bool {
	return (a.Gamma == 0 || a.Gamma == 1) &&
		a.Contrast == 0 && a.Brightness == 0 && a.Sharpen == 0 && !a.Invert
}

// Apply returns a new buffer with the adjustments applied in a fixed order:
// gamma, brightness, contrast, sharpen, invert.
func (a Adjustments) Apply(buf *PixelBuffer) (*PixelBuffer, error) {
	if a.IsZero() {
		return buf, nil
	}
	var img image.Image = buf.ToImage()
	if a.Gamma != 0 && a.Gamma != 1 {
		img = imaging.AdjustGamma(img, a.Gamma)
	}
	if a.Brightness != 0 {
		img = imaging.AdjustBrightness(img, a.Brightness)
	}
	if a.Contrast != 0 {
		img = imaging.AdjustContrast(img, a.Contrast)
	}
	if a.Sharpen > 0 {
		img = imaging.Sharpen(img, a.Sharpen)
	}
	if a.Invert {
		img = imaging.Invert(img)
	}
	return FromImage(img)
}
