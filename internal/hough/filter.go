package hough

import (
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/doccrop-mcp/internal/imaging"
)

// crossSize is the starting length in pixels of each probe ray.
const crossSize = 20

// minBackgroundRays is the number of probe rays that must look like
// background for an intersection to be kept as a corner.
const minBackgroundRays = 1

// FilterIntersections drops intersections that do not look like a document
// corner.
//
// Around each intersection four rays are cast along both lines, in both
// directions. Rays start crossSize pixels long and shrink until all four fit
// in the image; an intersection whose rays cannot fit at length 1 is dropped.
// A ray matches the background when the per channel median of its pixels is
// within colorThreshold of the image border color on every channel. An
// intersection is kept when at least minBackgroundRays rays match, so a
// point with all four rays inside the document is dropped. Corners of a
// rotated document keep their rays along the edges, which mostly sample
// background.
func FilterIntersections(img image.Image, inters []Intersection, colorThreshold int) []Intersection {
	bg := imaging.BorderColor(img)
	b := img.Bounds()

	var kept []Intersection
	for _, in := range inters {
		rays, ok := probeRays(in, b.Dx(), b.Dy())
		if !ok {
			continue
		}

		matches := 0
		for _, ray := range rays {
			if matchesColor(rayMedian(img, b.Min, ray), bg, colorThreshold) {
				matches++
			}
		}
		if matches >= minBackgroundRays {
			kept = append(kept, in)
		}
	}
	return kept
}

type ray struct {
	start  image.Point
	dx, dy float64
	length int
}

func (r ray) at(i int) image.Point {
	return image.Pt(
		int(float64(r.start.X)+float64(i)*r.dx),
		int(float64(r.start.Y)+float64(i)*r.dy),
	)
}

// probeRays returns the four rays of the cross centered on the intersection,
// shrunk to fit a width x height image.
func probeRays(in Intersection, width, height int) ([4]ray, bool) {
	start := image.Pt(int(in.Point.X), int(in.Point.Y))
	s1, c1 := math.Sincos(math.Abs(in.AngleOne))
	s2, c2 := math.Sincos(math.Abs(in.AngleTwo))

	rays := [4]ray{
		{start: start, dx: c1, dy: s1},
		{start: start, dx: -c1, dy: -s1},
		{start: start, dx: c2, dy: s2},
		{start: start, dx: -c2, dy: -s2},
	}
	inside := func(p image.Point) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height
	}

	for size := crossSize; size >= 1; size-- {
		fits := true
		for i := range rays {
			rays[i].length = size
			if !inside(rays[i].at(size - 1)) {
				fits = false
			}
		}
		if fits && inside(start) {
			return rays, true
		}
	}
	return rays, false
}

func rayMedian(img image.Image, origin image.Point, r ray) color.RGBA {
	rs := make([]int, r.length)
	gs := make([]int, r.length)
	bs := make([]int, r.length)
	for i := 0; i < r.length; i++ {
		p := r.at(i).Add(origin)
		cr, cg, cb, _ := img.At(p.X, p.Y).RGBA()
		rs[i], gs[i], bs[i] = int(cr>>8), int(cg>>8), int(cb>>8)
	}
	return color.RGBA{
		R: uint8(imaging.MedianInt(rs)),
		G: uint8(imaging.MedianInt(gs)),
		B: uint8(imaging.MedianInt(bs)),
		A: 255,
	}
}

func matchesColor(c, bg color.RGBA, threshold int) bool {
	return absInt(int(c.R)-int(bg.R)) <= threshold &&
		absInt(int(c.G)-int(bg.G)) <= threshold &&
		absInt(int(c.B)-int(bg.B)) <= threshold
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
