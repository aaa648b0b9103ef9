package geometry

// Collinear reports whether a, b and c lie on one line. When they do, mid is
// the index (0 for a, 1 for b, 2 for c) of the point that does not belong to
// the pair with the largest squared distance, i.e. the point in the middle.
func Collinear(a, b, c Point) (mid int, ok bool) {
	if cross(a, b, c) != 0 {
		return 0, false
	}
	ab := a.DistanceSq(b)
	ac := a.DistanceSq(c)
	bc := b.DistanceSq(c)
	switch {
	case ab >= ac && ab >= bc:
		return 2, true
	case ac >= ab && ac >= bc:
		return 1, true
	default:
		return 0, true
	}
}

// RemoveCollinear returns a copy of points in which no three points are
// collinear. For every collinear triple the middle point is removed and the
// scan resumes from the adjusted indices instead of starting over.
func RemoveCollinear(points []Point) []Point {
	pts := append([]Point(nil), points...)

	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for k := j + 1; k < len(pts); k++ {
				mid, ok := Collinear(pts[i], pts[j], pts[k])
				if !ok {
					continue
				}
				switch mid {
				case 0:
					pts = removeAt(pts, i)
					j = i + 1
					k = j
				case 1:
					pts = removeAt(pts, j)
					k = j
				case 2:
					pts = removeAt(pts, k)
					k--
				}
			}
		}
	}
	return pts
}

func removeAt(pts []Point, i int) []Point {
	return append(pts[:i], pts[i+1:]...)
}

// isOnRight reports whether p lies on the right of the directed segment
// start->end, or on its supporting line. A p equal to either endpoint is
// never on the right.
func isOnRight(start, end, p Point) bool {
	if p == start || p == end {
		return false
	}
	dir := (end.X-start.X)*(start.Y-p.Y) - (start.Y-end.Y)*(p.X-start.X)
	return dir >= 0
}

// ConvexHull returns the convex hull of points using a Jarvis march that
// starts at the leftmost point. Collinear points are removed beforehand so
// the hull holds only true corners. The hull is open (the first point is not
// repeated) and clockwise in image coordinates. An empty input yields nil.
func ConvexHull(points []Point) []Point {
	pts := RemoveCollinear(points)
	if len(pts) == 0 {
		return nil
	}

	start := 0
	for i := 1; i < len(pts); i++ {
		if pts[i].X < pts[start].X {
			start = i
		}
	}

	hull := make([]Point, 0, len(pts))
	current := pts[start]
	for len(hull) < len(pts) {
		hull = append(hull, current)
		end := pts[0]
		for j := 1; j < len(pts); j++ {
			if isOnRight(current, end, pts[j]) {
				end = pts[j]
			}
		}
		current = end
		if current == hull[0] {
			break
		}
	}
	return hull
}
