package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Metric selects what MinimalEnclosingRectangle minimises.
type Metric int

const (
	MetricArea Metric = iota
	MetricPerimeter
)

func (m Metric) String() string {
	if m == MetricPerimeter {
		return "perimeter"
	}
	return "area"
}

// Rectangle is a closed four sided polygon: the fifth point repeats the first.
//
// Rectangles built by MinimalEnclosingRectangle list their corners as
// top-left, bottom-left, bottom-right, top-right in the frame aligned with the
// rectangle, so the first edge is a height and the second edge a width.
type Rectangle [5]Point

// Corners returns the four distinct corners.
func (r Rectangle) Corners() [4]Point {
	return [4]Point{r[0], r[1], r[2], r[3]}
}

// Points returns all five points as a slice.
func (r Rectangle) Points() []Point {
	return append([]Point(nil), r[:]...)
}

// MinimalEnclosingRectangle returns the rectangle of smallest area (or
// perimeter) that encloses all points.
//
// Degenerate inputs are handled without error: a single point yields a
// rectangle whose five corners are that point, and two points yield a zero
// width rectangle along the segment. ok is false only for an empty input.
//
// # Algorithm
//
// The optimal rectangle has one side collinear with a hull edge, so only the
// hull edge orientations (modulo 90 degrees, closing edge included) are
// candidates. For each one the hull is rotated into that frame with a 2x2
// rotation matrix, the axis aligned bounds are measured, and the best box is
// rotated back.
func MinimalEnclosingRectangle(points []Point, metric Metric) (Rectangle, bool) {
	hull := ConvexHull(points)

	switch len(hull) {
	case 0:
		return Rectangle{}, false
	case 1:
		p := hull[0]
		return Rectangle{p, p, p, p, p}, true
	case 2:
		a, b := hull[0], hull[1]
		return Rectangle{a, b, b, a, a}, true
	}

	xy := mat.NewDense(len(hull), 2, nil)
	for i, p := range hull {
		xy.Set(i, 0, p.X)
		xy.Set(i, 1, p.Y)
	}

	var (
		best      Rectangle
		bestValue = math.Inf(1)
		rotated   mat.Dense
	)
	for _, angle := range edgeAngles(hull) {
		rot := rotation(angle)
		rotated.Mul(xy, rot)

		xs := mat.Col(nil, 0, &rotated)
		ys := mat.Col(nil, 1, &rotated)
		minX, maxX := floats.Min(xs), floats.Max(xs)
		minY, maxY := floats.Min(ys), floats.Max(ys)

		w := maxX - minX
		h := maxY - minY
		value := w * h
		if metric == MetricPerimeter {
			value = 2 * (w + h)
		}
		if value >= bestValue {
			continue
		}
		bestValue = value

		box := mat.NewDense(5, 2, []float64{
			minX, minY,
			minX, maxY,
			maxX, maxY,
			maxX, minY,
			minX, minY,
		})
		var back mat.Dense
		back.Mul(box, rot.T())
		for i := range best {
			best[i] = Point{X: back.At(i, 0), Y: back.At(i, 1)}
		}
	}
	return best, true
}

// edgeAngles returns the distinct orientations of the hull edges reduced
// modulo 90 degrees, closing edge included.
func edgeAngles(hull []Point) []float64 {
	seen := make(map[float64]bool, len(hull))
	angles := make([]float64, 0, len(hull))
	for i := range hull {
		next := hull[(i+1)%len(hull)]
		a := math.Mod(math.Atan2(next.Y-hull[i].Y, next.X-hull[i].X), math.Pi/2)
		if a == 0 {
			a = 0 // folds -0 into 0
		}
		if seen[a] {
			continue
		}
		seen[a] = true
		angles = append(angles, a)
	}
	return angles
}

// rotation returns the matrix that, applied to row vectors, rotates them by
// -theta so that an edge at angle theta becomes horizontal.
func rotation(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(2, 2, []float64{
		c, -s,
		s, c,
	})
}
