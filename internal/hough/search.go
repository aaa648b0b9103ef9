package hough

import (
	"context"
	"fmt"
	"image"

	"github.com/ironsheep/doccrop-mcp/internal/geometry"
)

// ErrInvalidArgument is returned for out of range search parameters.
var ErrInvalidArgument = geometry.ErrInvalidArgument

// minCorners is the number of intersections, and of lines taking part in at
// least two intersections, that make a step acceptable.
const minCorners = 4

// Result is the outcome of a threshold search.
type Result struct {
	Lines         []Line         `json:"lines"`
	Intersections []Intersection `json:"intersections"`

	// Threshold is the vote threshold of the returned step.
	Threshold int `json:"threshold"`

	// Peak is the highest vote in the accumulator.
	Peak int `json:"peak"`

	// Steps is the number of thresholds evaluated.
	Steps int `json:"steps"`

	// Accepted is false when no step met the corner criteria and the last
	// step is returned.
	Accepted bool `json:"accepted"`
}

// Accept reports whether a set of intersections describes at least a
// quadrilateral: four intersections built from four lines that each take part
// in two of them.
func Accept(inters []Intersection) bool {
	return len(inters) >= minCorners && DistinctLines(inters) >= minCorners
}

// RunIterations searches the edge image for document lines.
//
// The accumulator is built once. Thresholds go linearly from high*peak down
// to low*peak in iterations steps (a single iteration only tries high*peak).
// The first step whose intersections pass Accept is returned; otherwise the
// last step is. ctx is checked before every step.
//
// iterations must be at least 1 and 0 <= low <= high <= 1.
func RunIterations(ctx context.Context, edges image.Image, iterations int, high, low float64) (*Result, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("%w: iterations %d < 1", ErrInvalidArgument, iterations)
	}
	if low <= 0 || high > 1 || low > high {
		return nil, fmt.Errorf("%w: thresholds high=%g low=%g", ErrInvalidArgument, high, low)
	}

	b := edges.Bounds()
	t := NewTransform(b.Dx(), b.Dy())
	t.AddImage(edges)
	peak := t.Peak()

	hiThresh := high * float64(peak)
	loThresh := low * float64(peak)
	var step float64
	if iterations > 1 {
		step = (hiThresh - loThresh) / float64(iterations-1)
	}

	res := &Result{Peak: peak}
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		threshold := int(hiThresh - float64(i)*step)
		lines := t.Lines(threshold)
		inters := Intersections(b.Dx(), b.Dy(), lines, DefaultAngleThreshold)

		res.Lines = lines
		res.Intersections = inters
		res.Threshold = threshold
		res.Steps = i + 1
		if Accept(inters) {
			res.Accepted = true
			break
		}
	}
	return res, nil
}
