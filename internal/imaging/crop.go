package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/doccrop-mcp/internal/geometry"
)

// CropResult is a cropped image encoded for the MCP surface.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as base64 PNG.
func EncodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// NewCropResult encodes img into a CropResult.
func NewCropResult(img image.Image) (*CropResult, error) {
	encoded, err := EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}
	return &CropResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// Crop extracts the axis aligned region (x1,y1)-(x2,y2) and optionally
// rescales it.
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2))
	if scale != 1.0 && scale > 0 {
		w := int(float64(cropped.Bounds().Dx()) * scale)
		h := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
	}
	return cropped, nil
}

// CropRotated cuts a width x height region centered on center and rotated by
// rotation degrees (clockwise) out of img, and returns it deskewed. Parts of
// the region that fall outside img are filled with bg.
func CropRotated(img image.Image, center geometry.Point, width, height, rotation float64, bg color.Color) (*image.NRGBA, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid crop size %gx%g", width, height)
	}

	src := imaging.Clone(img)
	rotated := imaging.Rotate(src, rotation, bg)

	sb, rb := src.Bounds(), rotated.Bounds()
	dx := center.X - (float64(sb.Dx())/2 - 0.5)
	dy := center.Y - (float64(sb.Dy())/2 - 0.5)
	sin, cos := math.Sincos(rotation * math.Pi / 180)
	cx := dx*cos + dy*sin + float64(rb.Dx())/2 - 0.5
	cy := -dx*sin + dy*cos + float64(rb.Dy())/2 - 0.5

	w, h := int(math.Round(width)), int(math.Round(height))
	x0 := int(math.Floor(cx - float64(w)/2 + 0.5))
	y0 := int(math.Floor(cy - float64(h)/2 + 0.5))

	out := imaging.New(w, h, bg)
	return imaging.Paste(out, rotated, image.Pt(-x0, -y0)), nil
}
