package imaging

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// borderStrip is the thickness in pixels of the strips sampled along each
// image side by BorderColor.
const borderStrip = 3

// RGBColor is an 8-bit RGB triple.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ColorResult reports a color as hex and as components.
type ColorResult struct {
	Hex string   `json:"hex"`
	RGB RGBColor `json:"rgb"`
}

// NewColorResult describes c.
func NewColorResult(c color.Color) *ColorResult {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	cf, _ := colorful.MakeColor(color.RGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: 255})
	return &ColorResult{
		Hex: cf.Hex(),
		RGB: RGBColor{R: rgba.R, G: rgba.G, B: rgba.B},
	}
}

// ParseColor parses a "#RRGGBB" color. An optional alpha byte
// ("#RRGGBBAA") is honoured.
func ParseColor(hex string) (color.NRGBA, error) {
	if len(hex) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(hex[7:], "%02x", &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
		}
		c, err := ParseColor(hex[:7])
		if err != nil {
			return color.NRGBA{}, err
		}
		c.A = a
		return c, nil
	}

	cf, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := cf.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// BorderColor estimates the background color around a scanned document.
//
// A strip of three pixels is averaged along each side of the image; the
// result is the per channel median of the four side averages, so a single
// side covered by the document does not skew the estimate.
func BorderColor(img image.Image) color.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	sw := min(borderStrip, w)
	sh := min(borderStrip, h)

	sides := []image.Rectangle{
		image.Rect(0, 0, w, sh),   // top
		image.Rect(0, h-sh, w, h), // bottom
		image.Rect(0, 0, sw, h),   // left
		image.Rect(w-sw, 0, w, h), // right
	}

	var rs, gs, bs []int
	for _, side := range sides {
		m := meanColor(img, side.Add(b.Min))
		rs = append(rs, int(m.R))
		gs = append(gs, int(m.G))
		bs = append(bs, int(m.B))
	}

	return color.RGBA{
		R: uint8(MedianInt(rs)),
		G: uint8(MedianInt(gs)),
		B: uint8(MedianInt(bs)),
		A: 255,
	}
}

func meanColor(img image.Image, r image.Rectangle) color.RGBA {
	var sr, sg, sb, n uint64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			sr += uint64(cr >> 8)
			sg += uint64(cg >> 8)
			sb += uint64(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: 255}
}

// MedianInt returns the element at index len/2 of the sorted values, the
// upper median for even lengths. values is not modified. An empty slice
// yields 0.
func MedianInt(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}
