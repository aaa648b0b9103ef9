package document

import (
	"fmt"
	"math"

	"github.com/ironsheep/doccrop-mcp/internal/geometry"
)

// ErrInvalidArgument is returned for negative coordinates or sizes and for
// out of range batch parameters.
var ErrInvalidArgument = geometry.ErrInvalidArgument

// Document is an oriented rectangle located on a source image.
type Document struct {
	// X and Y are the center in source image pixels.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Rotation in degrees, clockwise from the x-axis.
	Rotation float64 `json:"rotation"`

	// ID is usually the path of the image the document was found on.
	ID string `json:"id,omitempty"`
}

// New returns an unrotated Document centered on center.
func New(center geometry.Point, width, height float64) (*Document, error) {
	return NewRotated(center, width, height, 0)
}

// NewRotated returns a Document centered on center and rotated by rotation
// degrees. Negative coordinates or sizes yield ErrInvalidArgument.
func NewRotated(center geometry.Point, width, height, rotation float64) (*Document, error) {
	if center.X < 0 || center.Y < 0 {
		return nil, fmt.Errorf("%w: center %v has negative coordinates", ErrInvalidArgument, center)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: size %gx%g is negative", ErrInvalidArgument, width, height)
	}
	if math.IsNaN(rotation) || rotation < -90 || rotation > 90 {
		return nil, fmt.Errorf("%w: rotation %g outside [-90,90]", ErrInvalidArgument, rotation)
	}
	return &Document{
		X:        center.X,
		Y:        center.Y,
		Width:    width,
		Height:   height,
		Rotation: rotation,
	}, nil
}

// FromCorners builds a Document from four consecutive corners. The edge a-b
// gives the height, the edge b-c gives the width and its slope the rotation
// (90 degrees when b-c is vertical). The center is the midpoint of the
// diagonal a-c.
func FromCorners(a, b, c, d geometry.Point) (*Document, error) {
	for _, p := range []geometry.Point{a, b, c, d} {
		if p.X < 0 || p.Y < 0 {
			return nil, fmt.Errorf("%w: corner %v has negative coordinates", ErrInvalidArgument, p)
		}
	}

	rotation := 90.0
	if dx := c.X - b.X; dx != 0 {
		rotation = math.Atan((c.Y-b.Y)/dx) * 180 / math.Pi
	}
	return NewRotated(a.Midpoint(c), b.Distance(c), a.Distance(b), rotation)
}

// Center returns the center point.
func (d *Document) Center() geometry.Point {
	return geometry.Pt(d.X, d.Y)
}

// Area returns width times height.
func (d *Document) Area() float64 {
	return d.Width * d.Height
}

// Corners returns the closed polygon of the document: four corners followed
// by the first corner again. The order matches what FromCorners expects.
func (d *Document) Corners() geometry.Rectangle {
	a := -d.Rotation * math.Pi / 180
	hw, hh := d.Width/2, d.Height/2

	wX := hw * math.Cos(a)
	hX := hh * math.Sin(a)
	wY := hw * math.Sin(a)
	hY := hh * math.Cos(a)

	p0 := geometry.Pt(d.X-wX-hX, d.Y+wY-hY)
	return geometry.Rectangle{
		p0,
		geometry.Pt(d.X-wX+hX, d.Y+wY+hY),
		geometry.Pt(d.X+wX+hX, d.Y-wY+hY),
		geometry.Pt(d.X+wX-hX, d.Y-wY-hY),
		p0,
	}
}

// Pad grows the document by the given amounts, never below zero size.
func (d *Document) Pad(width, height float64) {
	d.Width = math.Max(0, d.Width+width)
	d.Height = math.Max(0, d.Height+height)
}

func (d *Document) String() string {
	return fmt.Sprintf("Document[%s center=(%.1f,%.1f) size=%.1fx%.1f rotation=%.2f]",
		d.ID, d.X, d.Y, d.Width, d.Height, d.Rotation)
}
