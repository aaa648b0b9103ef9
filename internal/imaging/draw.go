package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/doccrop-mcp/internal/geometry"
)

// MarkPolygon returns a copy of img with the polygon filled by fill, blended
// according to the alpha of fill, and outlined in outline.
func MarkPolygon(img image.Image, polygon []geometry.Point, fill, outline color.Color) *image.NRGBA {
	out := CopyImage(img)
	if len(polygon) < 2 {
		return out
	}

	fillColor, _ := colorful.MakeColor(opaque(fill))
	_, _, _, fa := fill.RGBA()
	amount := float64(fa) / 0xffff

	b := out.Bounds()
	if amount > 0 {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if !insidePolygon(polygon, float64(x), float64(y)) {
					continue
				}
				cur, ok := colorful.MakeColor(opaque(out.At(x, y)))
				if !ok {
					continue
				}
				r, g, bl := cur.BlendRgb(fillColor, amount).Clamped().RGB255()
				out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: bl, A: 255})
			}
		}
	}

	for i := range polygon {
		a, c := polygon[i], polygon[(i+1)%len(polygon)]
		drawLine(out, a, c, outline)
	}
	return out
}

func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	return n
}

// insidePolygon is the even-odd ray casting test.
func insidePolygon(polygon []geometry.Point, x, y float64) bool {
	inside := false
	j := len(polygon) - 1
	for i := range polygon {
		pi, pj := polygon[i], polygon[j]
		if (pi.Y > y) != (pj.Y > y) && x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// drawLine plots a straight line with unit steps along its major axis.
func drawLine(img *image.NRGBA, a, b geometry.Point, c color.Color) {
	steps := int(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)))
	if steps == 0 {
		img.Set(int(math.Round(a.X)), int(math.Round(a.Y)), c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		img.Set(int(math.Round(a.X+t*(b.X-a.X))), int(math.Round(a.Y+t*(b.Y-a.Y))), c)
	}
}

// MinGridSpacing is the smallest grid spacing DrawGrid accepts, in pixels
// of the drawn image.
const MinGridSpacing = 10

var (
	labelForeground = color.NRGBA{255, 255, 255, 255}
	labelBackground = color.NRGBA{0, 0, 0, 180}
)

// DrawGrid draws a labelled coordinate grid on img. Lines are spacing
// source pixels apart; scale maps source pixels onto img, so a marked
// working image still shows source coordinates.
func DrawGrid(img *image.NRGBA, spacing int, scale float64, c color.Color) error {
	if scale <= 0 {
		return fmt.Errorf("grid scale must be positive, got %g", scale)
	}
	step := float64(spacing) * scale
	if step < MinGridSpacing {
		return fmt.Errorf("grid spacing %d too small at scale %.3f", spacing, scale)
	}

	b := img.Bounds()
	for k := 1; ; k++ {
		x := b.Min.X + int(math.Round(float64(k)*step))
		if x >= b.Max.X {
			break
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			img.Set(x, y, c)
		}
	}
	for k := 1; ; k++ {
		y := b.Min.Y + int(math.Round(float64(k)*step))
		if y >= b.Max.Y {
			break
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, c)
		}
	}

	for j := 1; ; j++ {
		y := b.Min.Y + int(math.Round(float64(j)*step))
		if y >= b.Max.Y {
			break
		}
		for k := 1; ; k++ {
			x := b.Min.X + int(math.Round(float64(k)*step))
			if x >= b.Max.X {
				break
			}
			DrawLabel(img, image.Pt(x+2, y+2), fmt.Sprintf("%d,%d", k*spacing, j*spacing), labelForeground, labelBackground)
		}
	}
	return nil
}

// DrawLabel writes text on a filled box whose top left corner is p.
func DrawLabel(img *image.NRGBA, p image.Point, text string, fg, bg color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}
	width := d.MeasureString(text).Ceil()

	box := image.Rect(p.X-1, p.Y-1, p.X+width+1, p.Y+face.Height).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Over)

	d.Dot = fixed.P(p.X, p.Y+face.Ascent)
	d.DrawString(text)
}
