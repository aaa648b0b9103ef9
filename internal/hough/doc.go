// Package hough finds candidate document corners in an edge image.
//
// Edge pixels vote into a (rho, theta) accumulator (Transform). Peaks become
// lines, pairs of nearly perpendicular lines become intersections, and
// intersections surrounded entirely by non-background pixels are filtered
// out. RunIterations lowers the vote threshold step by step until a
// quadrilateral-like set of intersections appears.
//
// # Coordinates
//
// Lines are expressed relative to the image center: a line with angle theta
// and distance rho contains the points p with
//
//	(p.X-cx)*cos(theta) + (p.Y-cy)*sin(theta) == rho
//
// where (cx, cy) is the integer image center. Intersections are returned in
// plain image coordinates.
package hough
