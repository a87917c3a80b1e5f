//go:build gocv

package imageutil

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

func init() {
	decodeFile = openWithGoCV
}

// openWithGoCV reads an image through OpenCV, which handles a few formats
// (e.g. some TIFF and PNM variants) that the Go decoders do not.
func openWithGoCV(path string) (image.Image, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return nil, fmt.Errorf("could not read image from %s", path)
	}
	defer img.Close()

	out, err := img.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert mat: %w", err)
	}
	return out, nil
}
