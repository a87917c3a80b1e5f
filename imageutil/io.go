package imageutil

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// decodeFile reads and decodes an image file. Builds with the gocv tag
// replace it with an OpenCV reader.
var decodeFile = openWithImaging

func openWithImaging(path string) (image.Image, error) {
	return imaging.Open(path, imaging.AutoOrientation(true))
}

// LoadImage loads an image file into a PixelBuffer. PNG, JPEG, GIF, BMP,
// TIFF and WebP are supported; JPEG EXIF orientation is applied. Open and
// decode errors are returned wrapped.
func LoadImage(path string) (*PixelBuffer, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return FromImage(img)
}

// SaveImage saves a buffer to the specified path. The format is determined
// by the file extension (png, jpg/jpeg, gif, tif/tiff, bmp).
func SaveImage(buf *PixelBuffer, path string) error {
	if err := imaging.Save(buf.ToImage(), path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}
