// Package geometry implements the planar point algorithms used to turn a set
// of candidate document corners into an oriented rectangle.
//
// All functions work in image coordinates: X grows to the right and Y grows
// downward. Under that convention a polygon whose shoelace area is positive
// is traversed clockwise on screen.
//
// # Algorithms
//
//   - RemoveCollinear drops the middle point of every exactly collinear triple.
//   - ConvexHull is a gift-wrapping (Jarvis march) hull starting at the
//     leftmost point.
//   - MinimalEnclosingRectangle evaluates one candidate orientation per hull
//     edge (rotating calipers) and keeps the one with the smallest area or
//     perimeter.
//
// Inputs are never modified; every function returns fresh slices.
package geometry
