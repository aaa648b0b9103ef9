package identify

import (
	"errors"
	"image"
	"image/color"

	"github.com/ironsheep/doccrop-mcp/internal/geometry"
	"github.com/ironsheep/doccrop-mcp/internal/imaging"
)

// ErrNoResult is returned by Mark before an identification completed.
var ErrNoResult = errors.New("no identification result")

// DefaultMarkColor is a translucent red.
var DefaultMarkColor = color.NRGBA{R: 255, A: 96}

// Mark returns the working image with the last document drawn on it. The
// fill is blended by its alpha and the outline is drawn opaque.
func (id *Identifier) Mark(fill color.Color) (*image.NRGBA, error) {
	if id.last == nil || id.working == nil {
		return nil, ErrNoResult
	}
	corners := id.last.Document.Corners().Corners()
	poly := make([]geometry.Point, len(corners))
	for i, c := range corners {
		poly[i] = c.Scale(id.scaleFactor)
	}
	return imaging.MarkPolygon(id.working, poly, fill, fill), nil
}
