package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// Sensitivity is the coarse edge detector setting the identifier escalates
// when a located document looks too small.
type Sensitivity int

const (
	SensitivityLow Sensitivity = iota
	SensitivityMedium
	SensitivityHigh
)

func (s Sensitivity) String() string {
	switch s {
	case SensitivityLow:
		return "low"
	case SensitivityMedium:
		return "medium"
	case SensitivityHigh:
		return "high"
	}
	return fmt.Sprintf("Sensitivity(%d)", int(s))
}

// Thresholds returns the hysteresis thresholds (0-255) used for s. Higher
// sensitivity keeps fainter gradients.
func (s Sensitivity) Thresholds() (low, high int) {
	switch s {
	case SensitivityLow:
		return 100, 200
	case SensitivityMedium:
		return 50, 150
	default:
		return 20, 80
	}
}

// ErrNoSource is returned by Process when no source image was set.
var ErrNoSource = errors.New("edge detector has no source image")

// CannyDetector is a Canny edge detector with adjustable sensitivity. It
// keeps the last source and result so the identifier can drive it step by
// step. A CannyDetector is not safe for concurrent use.
type CannyDetector struct {
	sensitivity Sensitivity
	src         image.Image
	edges       *image.Gray
}

// NewCannyDetector returns a detector starting at s.
func NewCannyDetector(s Sensitivity) *CannyDetector {
	return &CannyDetector{sensitivity: s}
}

func (d *CannyDetector) Sensitivity() Sensitivity     { return d.sensitivity }
func (d *CannyDetector) SetSensitivity(s Sensitivity) { d.sensitivity = s }

// SetSourceImage sets the image the next Process call works on and drops the
// previous result.
func (d *CannyDetector) SetSourceImage(img image.Image) {
	d.src = img
	d.edges = nil
}

// Process runs edge detection on the source image.
func (d *CannyDetector) Process() error {
	if d.src == nil {
		return ErrNoSource
	}
	low, high := d.sensitivity.Thresholds()
	d.edges = Canny(d.src, low, high)
	return nil
}

// EdgesImage returns the last result, or nil before Process succeeded.
func (d *CannyDetector) EdgesImage() image.Image {
	if d.edges == nil {
		return nil
	}
	return d.edges
}

// EdgeDetectResult is an edge image encoded for the MCP surface.
type EdgeDetectResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// ImageBase64 is a grayscale PNG with edges in white.
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EdgeDetect runs Canny with explicit thresholds and encodes the result.
func EdgeDetect(img image.Image, thresholdLow, thresholdHigh int) (*EdgeDetectResult, error) {
	edges := Canny(img, thresholdLow, thresholdHigh)
	encoded, err := EncodePNG(edges)
	if err != nil {
		return nil, fmt.Errorf("failed to encode edge image: %w", err)
	}
	return &EdgeDetectResult{
		Width:       edges.Bounds().Dx(),
		Height:      edges.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// Canny returns a binary edge map of img: 255 on edges, 0 elsewhere. The
// result has its origin at (0,0) whatever the bounds of img.
//
// # Algorithm
//
//  1. Luminance with BT.601 weights.
//  2. 5x5 Gaussian blur.
//  3. Sobel gradients, magnitude and direction.
//  4. Non-maximum suppression along the gradient direction.
//  5. Hysteresis: pixels above thresholdHigh are kept, pixels between the two
//     thresholds only when next to a strong pixel.
//
// Thresholds are on the 0-255 scale.
func Canny(img image.Image, thresholdLow, thresholdHigh int) *image.Gray {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	result := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return result
	}

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			gray[y][x] = (0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)) / 255.0
		}
	}

	magnitude, direction := sobel(gaussianBlur(gray, width, height), width, height)
	suppressed := nonMaxSuppression(magnitude, direction, width, height)

	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val >= highThresh || (val >= lowThresh && hasStrongNeighbor(suppressed, x, y, width, height, highThresh)) {
				result.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return result
}

func sobel(blurred [][]float64, width, height int) (magnitude, direction [][]float64) {
	sobelX := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	magnitude = make([][]float64, height)
	direction = make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := blurred[clamp(y+ky, 0, height-1)][clamp(x+kx, 0, width-1)]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// nonMaxSuppression keeps a pixel only when it is a local maximum along its
// gradient direction, quantised to four orientations. Border pixels are
// dropped.
func nonMaxSuppression(magnitude, direction [][]float64, width, height int) [][]float64 {
	out := make([][]float64, height)
	for y := 0; y < height; y++ {
		out[y] = make([]float64, width)
		if y == 0 || y == height-1 {
			continue
		}
		for x := 1; x < width-1; x++ {
			angle := direction[y][x]
			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude[y][x-1], magnitude[y][x+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude[y-1][x+1], magnitude[y+1][x-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude[y-1][x], magnitude[y+1][x]
			default:
				n1, n2 = magnitude[y-1][x-1], magnitude[y+1][x+1]
			}
			if mag := magnitude[y][x]; mag >= n1 && mag >= n2 {
				out[y][x] = mag
			}
		}
	}
	return out
}

func hasStrongNeighbor(suppressed [][]float64, x, y, width, height int, high float64) bool {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			if suppressed[clamp(y+ky, 0, height-1)][clamp(x+kx, 0, width-1)] >= high {
				return true
			}
		}
	}
	return false
}

// gaussianBlur applies the 5x5 kernel below (sigma about 1.4, sum 273) with
// replicated borders.
//
//	1  4  7  4  1
//	4 16 26 16  4
//	7 26 41 26  7
//	4 16 26 16  4
//	1  4  7  4  1
func gaussianBlur(img [][]float64, width, height int) [][]float64 {
	kernel := [5][5]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	const kernelSum = 273.0

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					sum += img[clamp(y+ky, 0, height-1)][clamp(x+kx, 0, width-1)] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / kernelSum
		}
	}
	return result
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
