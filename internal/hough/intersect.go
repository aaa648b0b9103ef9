package hough

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/doccrop-mcp/internal/geometry"
)

// DefaultAngleThreshold is how far, in degrees, two lines may deviate from
// perpendicular and still be intersected.
const DefaultAngleThreshold = 2.0

// Intersection is the crossing point of two accumulator lines.
type Intersection struct {
	Point geometry.Point `json:"point"`

	// LineOne and LineTwo index the line slice the intersection came from.
	LineOne int `json:"line_one"`
	LineTwo int `json:"line_two"`

	// AngleOne and AngleTwo are the normal angles of the two lines in radians.
	AngleOne float64 `json:"angle_one"`
	AngleTwo float64 `json:"angle_two"`
}

// Intersections returns the crossing points of every unordered pair of lines
// whose angles differ by 90 +/- thresholdDeg degrees. Points are rounded to
// whole pixels and translated to image coordinates for a width x height
// image; they may lie outside the image. Pairs whose system cannot be solved
// are skipped.
func Intersections(width, height int, lines []Line, thresholdDeg float64) []Intersection {
	center := geometry.Pt(float64(width/2), float64(height/2))
	minDiff := (90 - thresholdDeg) * math.Pi / 180
	maxDiff := (90 + thresholdDeg) * math.Pi / 180

	var out []Intersection
	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			li, lj := lines[i], lines[j]
			diff := math.Abs(li.Theta - lj.Theta)
			if diff < minDiff || diff > maxDiff {
				continue
			}

			p, ok := solve(li, lj)
			if !ok {
				continue
			}
			out = append(out, Intersection{
				Point:    p.Round().Add(center),
				LineOne:  i,
				LineTwo:  j,
				AngleOne: li.Theta,
				AngleTwo: lj.Theta,
			})
		}
	}
	return out
}

// solve intersects two lines given in center relative coordinates.
//
// Each line is written as a point on it plus a multiple of its direction,
// and the 2x2 system  t*dirA - u*dirB = pointB - pointA  is solved for t.
func solve(a, b Line) (geometry.Point, bool) {
	pa, da := parametric(a)
	pb, db := parametric(b)

	A := mat.NewDense(2, 2, []float64{
		da.X, db.X,
		da.Y, db.Y,
	})
	rhs := mat.NewVecDense(2, []float64{pb.X - pa.X, pb.Y - pa.Y})

	var sol mat.VecDense
	if err := sol.SolveVec(A, rhs); err != nil {
		return geometry.Point{}, false
	}
	t := sol.AtVec(0)
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return geometry.Point{}, false
	}
	return pa.Add(da.Scale(t)), true
}

// parametric returns the foot of the normal from the center onto l and the
// direction of l.
func parametric(l Line) (point, dir geometry.Point) {
	s, c := math.Sincos(l.Theta)
	return geometry.Pt(l.Rho*c, l.Rho*s), geometry.Pt(-s, c)
}

// DistinctLines counts the lines that take part in at least two
// intersections.
func DistinctLines(inters []Intersection) int {
	count := make(map[int]int)
	for _, in := range inters {
		count[in.LineOne]++
		count[in.LineTwo]++
	}
	n := 0
	for _, c := range count {
		if c >= 2 {
			n++
		}
	}
	return n
}
