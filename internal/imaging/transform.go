package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/doccrop-mcp/internal/geometry"
)

// CopyImage returns an independent NRGBA copy of img.
func CopyImage(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// ScaleImage resizes img by factor using Lanczos resampling. A factor that
// leaves the size unchanged returns a plain copy so pixel values are kept
// exactly.
func ScaleImage(img image.Image, factor float64) (*image.NRGBA, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: scale factor %g", geometry.ErrInvalidArgument, factor)
	}

	b := img.Bounds()
	w := int(math.Round(float64(b.Dx()) * factor))
	h := int(math.Round(float64(b.Dy()) * factor))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == b.Dx() && h == b.Dy() {
		return imaging.Clone(img), nil
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}

// ConvertToGrayScale returns the luminance of img. The result keeps an RGBA
// layout with equal channels so it can feed any detector.
func ConvertToGrayScale(img image.Image) *image.RGBA {
	return effect.Grayscale(img)
}
