package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

// createEdgeTestImage returns a white image with a black rectangle covering
// the middle half.
func createEdgeTestImage(width, height int) *image.RGBA {
	img := solidImage(width, height, color.White)
	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func countEdges(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r > 0 {
				n++
			}
		}
	}
	return n
}

func TestEdgeDetect(t *testing.T) {
	result, err := EdgeDetect(createEdgeTestImage(100, 100), 50, 150)
	if err != nil {
		t.Fatalf("EdgeDetect failed: %v", err)
	}
	if result.Width != 100 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	edgeImg, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if countEdges(edgeImg) == 0 {
		t.Error("no edges found around the rectangle")
	}
}

func TestCanny_UniformImage(t *testing.T) {
	edges := Canny(solidImage(30, 30, color.Gray{Y: 128}), 50, 150)
	if n := countEdges(edges); n != 0 {
		t.Errorf("uniform image: got %d edge pixels, want 0", n)
	}
}

func TestCanny_StrongEdge(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	edges := Canny(img, 50, 150)
	found := false
	for x := 48; x <= 52; x++ {
		if edges.GrayAt(x, 50).Y > 0 {
			found = true
			break
		}
	}
	if !found {
		t.Error("strong vertical edge was not detected")
	}
}

func TestCanny_OffsetBounds(t *testing.T) {
	img := createEdgeTestImage(40, 40).SubImage(image.Rect(10, 10, 30, 30))
	edges := Canny(img, 50, 150)
	if edges.Bounds() != image.Rect(0, 0, 20, 20) {
		t.Errorf("bounds: got %v, want (0,0)-(20,20)", edges.Bounds())
	}
}

func TestCannyDetector_Sensitivity(t *testing.T) {
	img := createEdgeTestImage(60, 60)
	d := NewCannyDetector(SensitivityLow)

	if err := d.Process(); err != ErrNoSource {
		t.Errorf("Process without source: got %v, want ErrNoSource", err)
	}
	if d.EdgesImage() != nil {
		t.Error("EdgesImage before Process should be nil")
	}

	d.SetSourceImage(img)
	if err := d.Process(); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	lowCount := countEdges(d.EdgesImage())

	d.SetSensitivity(SensitivityHigh)
	if d.Sensitivity() != SensitivityHigh {
		t.Fatalf("Sensitivity: got %v, want high", d.Sensitivity())
	}
	if err := d.Process(); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if highCount := countEdges(d.EdgesImage()); highCount < lowCount {
		t.Errorf("high sensitivity found fewer edges (%d) than low (%d)", highCount, lowCount)
	}
}

func TestSensitivity_Thresholds(t *testing.T) {
	prevLow, prevHigh := 256, 256
	for _, s := range []Sensitivity{SensitivityLow, SensitivityMedium, SensitivityHigh} {
		low, high := s.Thresholds()
		if low >= high {
			t.Errorf("%v: low %d must be below high %d", s, low, high)
		}
		if low >= prevLow || high >= prevHigh {
			t.Errorf("%v: thresholds must decrease with sensitivity", s)
		}
		prevLow, prevHigh = low, high
	}
}

func TestGaussianBlur(t *testing.T) {
	width, height := 11, 11
	img := make([][]float64, height)
	for y := range img {
		img[y] = make([]float64, width)
	}
	img[5][5] = 1.0

	blurred := gaussianBlur(img, width, height)
	if blurred[5][5] >= 1.0 {
		t.Error("bright spot should be reduced after blur")
	}
	if blurred[5][4] == 0 || blurred[5][6] == 0 || blurred[4][5] == 0 || blurred[6][5] == 0 {
		t.Error("neighbors should receive some brightness from blur")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}
