package hough

import (
	"image"
	"image/color"
	"math"
	"sort"
)

const (
	// thetaBins is the angular resolution of the accumulator over [0, pi).
	thetaBins = 180

	// peakNeighbourhood is the half size of the window a peak must dominate.
	peakNeighbourhood = 4
)

// Line is an accumulator peak.
type Line struct {
	// Rho is the signed distance from the image center in pixels.
	Rho float64 `json:"rho"`

	// Theta is the normal angle in radians, in [0, pi).
	Theta float64 `json:"theta"`

	Votes int `json:"votes"`
}

// Transform is a Hough accumulator sized for one image.
type Transform struct {
	width, height int
	centerX       int
	centerY       int

	// houghHeight is the offset added to rho so that negative distances
	// index the accumulator.
	houghHeight  int
	doubleHeight int

	acc      []int // doubleHeight rows per theta bin
	sinTable [thetaBins]float64
	cosTable [thetaBins]float64
}

// NewTransform returns an empty accumulator for a width x height image.
func NewTransform(width, height int) *Transform {
	hh := int(math.Sqrt2*float64(max(width, height))) / 2
	t := &Transform{
		width:        width,
		height:       height,
		centerX:      width / 2,
		centerY:      height / 2,
		houghHeight:  hh,
		doubleHeight: 2 * hh,
		acc:          make([]int, 2*hh*thetaBins),
	}
	step := math.Pi / thetaBins
	for i := 0; i < thetaBins; i++ {
		t.sinTable[i] = math.Sin(float64(i) * step)
		t.cosTable[i] = math.Cos(float64(i) * step)
	}
	return t
}

// AddImage votes every non-black pixel of img.
func (t *Transform) AddImage(img image.Image) {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			row := g.Pix[y*g.Stride : y*g.Stride+b.Dx()]
			for x, v := range row {
				if v != 0 {
					t.AddPoint(x, y)
				}
			}
		}
		return
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if color.GrayModel.Convert(img.At(x+b.Min.X, y+b.Min.Y)).(color.Gray).Y != 0 {
				t.AddPoint(x, y)
			}
		}
	}
}

// AddPoint votes for every line through (x, y).
func (t *Transform) AddPoint(x, y int) {
	dx := float64(x - t.centerX)
	dy := float64(y - t.centerY)
	for i := 0; i < thetaBins; i++ {
		r := int(math.Round(dx*t.cosTable[i]+dy*t.sinTable[i])) + t.houghHeight
		if r < 0 || r >= t.doubleHeight {
			continue
		}
		t.acc[i*t.doubleHeight+r]++
	}
}

func (t *Transform) votes(theta, r int) int {
	return t.acc[theta*t.doubleHeight+r]
}

// Peak returns the highest vote count.
func (t *Transform) Peak() int {
	peak := 0
	for _, v := range t.acc {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// HoughHeight is the rho offset of the accumulator.
func (t *Transform) HoughHeight() int {
	return t.houghHeight
}

// Lines returns the local maxima with at least threshold votes (and at least
// one), strongest first. A maximum must not be exceeded by any cell of the
// 9x9 window around it; theta wraps around.
func (t *Transform) Lines(threshold int) []Line {
	if threshold < 1 {
		threshold = 1
	}

	var lines []Line
	step := math.Pi / thetaBins
	for theta := 0; theta < thetaBins; theta++ {
		for r := peakNeighbourhood; r < t.doubleHeight-peakNeighbourhood; r++ {
			v := t.votes(theta, r)
			if v < threshold || !t.isLocalMax(theta, r, v) {
				continue
			}
			lines = append(lines, Line{
				Rho:   float64(r - t.houghHeight),
				Theta: float64(theta) * step,
				Votes: v,
			})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Votes > lines[j].Votes
	})
	return lines
}

func (t *Transform) isLocalMax(theta, r, v int) bool {
	for dt := -peakNeighbourhood; dt <= peakNeighbourhood; dt++ {
		nt := (theta + dt + thetaBins) % thetaBins
		for dr := -peakNeighbourhood; dr <= peakNeighbourhood; dr++ {
			if (dt != 0 || dr != 0) && t.votes(nt, r+dr) > v {
				return false
			}
		}
	}
	return true
}
