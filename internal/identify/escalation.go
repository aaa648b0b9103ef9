package identify

import (
	"context"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/doccrop-mcp/internal/document"
	"github.com/ironsheep/doccrop-mcp/internal/geometry"
	"github.com/ironsheep/doccrop-mcp/internal/hough"
	"github.com/ironsheep/doccrop-mcp/internal/imaging"
	"github.com/ironsheep/doccrop-mcp/internal/metrics"
)

const (
	// minCorners is the number of filtered intersections that stops the
	// threshold descent.
	minCorners = 4

	// maxIntersections also stops the descent; lowering the threshold
	// further only adds noise.
	maxIntersections = 50

	thresholdStep    = 0.1
	minHighThreshold = 0.25

	// Shape size caps, as divisors of the shorter working side.
	noiseShapeDivisor   = 50
	outsideShapeDivisor = 25
)

// attempt is the mutable state of one IdentifyResult call.
type attempt struct {
	morph  Morphology
	high   float64
	tries  int
	runs   int
	reruns int

	scale        float64
	srcW, srcH   int
	workW, workH int
}

func (a *attempt) shorterSide() int { return min(a.workW, a.workH) }

// outcome is what one attempt produced.
type outcome struct {
	doc      *document.Document
	corners  [4]geometry.Point
	lines    int
	inters   int
	filtered int
}

func (id *Identifier) runAttempt(ctx context.Context, working, gray image.Image, run *attempt) (*outcome, error) {
	run.runs++
	id.metrics.IncrementAttempts()
	log := id.log.WithFields(logrus.Fields{
		"id":         id.id,
		"attempt":    run.runs,
		"morphology": fmt.Sprint(run.morph),
	})
	log.Debug("starting attempt")

	morphed := run.morph.Execute(gray)
	id.state = StateMorphed
	id.emit(Event{Type: EventImageMorphed, Image: morphed})
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	id.detector.SetSourceImage(morphed)
	if err := id.detector.Process(); err != nil {
		return nil, fmt.Errorf("edge detection failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}
	edges := id.detector.EdgesImage()
	if edges == nil {
		return nil, fmt.Errorf("edge detector returned no image")
	}
	id.state = StateEdgeDetected
	id.emit(Event{Type: EventImageEdgeDetected, Image: edges})

	var (
		search   *hough.Result
		filtered []hough.Intersection
		err      error
	)
	low := id.settings.LineThresholdLow
	for {
		search, err = hough.RunIterations(ctx, edges, id.settings.LineIterations, run.high, low)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, cancelled(ctxErr)
			}
			return nil, err
		}
		id.state = StateHoughSearched
		id.emit(Event{Type: EventHoughTransformed, Intersections: search.Intersections})

		filtered = hough.FilterIntersections(working, search.Intersections, id.settings.ColorThreshold)
		id.state = StateFiltered
		id.emit(Event{Type: EventIntersectionsFiltered, Intersections: filtered})

		if len(filtered) >= minCorners || len(search.Intersections) >= maxIntersections ||
			run.high <= minHighThreshold || run.high-thresholdStep < low {
			break
		}
		run.high -= thresholdStep
		log.WithField("threshold", run.high).Debug("too few corners, lowering line threshold")
	}

	points := make([]geometry.Point, len(filtered))
	for i, in := range filtered {
		points[i] = in.Point
	}
	// No corners give the zero rectangle; one or two give a point or a
	// segment.
	rect, _ := geometry.MinimalEnclosingRectangle(points, geometry.MetricArea)
	id.state = StateRectangleComputed

	out := &outcome{
		lines:    len(search.Lines),
		inters:   len(search.Intersections),
		filtered: len(filtered),
	}
	for i, c := range rect.Corners() {
		out.corners[i] = c.Scale(1 / run.scale).Round()
	}
	clamped := out.corners
	for i := range clamped {
		clamped[i] = geometry.Pt(max(0, clamped[i].X), max(0, clamped[i].Y))
	}
	out.doc, err = document.FromCorners(clamped[0], clamped[1], clamped[2], clamped[3])
	if err != nil {
		return nil, err
	}
	out.doc.ID = id.id
	out.doc.Pad(float64(id.settings.PaddingWidth), float64(id.settings.PaddingHeight))

	log.WithFields(logrus.Fields{
		"lines":         out.lines,
		"intersections": out.inters,
		"filtered":      out.filtered,
		"document":      out.doc.String(),
	}).Debug("attempt finished")
	return out, nil
}

// evaluate applies the escalation policy to out. It returns true when the
// result is accepted and otherwise updates run for the next attempt.
func (id *Identifier) evaluate(out *outcome, run *attempt) bool {
	id.state = StateEvaluated
	log := id.log.WithFields(logrus.Fields{"id": id.id, "attempt": run.runs})

	if id.isNoisy(out.lines, out.inters) {
		id.metrics.IncrementEscalation(metrics.EscalationNoise)
		next, changed := noiseMorphology(run.morph, run.shorterSide()/noiseShapeDivisor)
		log.WithFields(logrus.Fields{
			"lines":         out.lines,
			"intersections": out.inters,
			"morphology":    fmt.Sprint(next),
		}).Debug("edge map is noisy")
		if changed {
			run.morph = next
			run.reruns++
			return false
		}
		run.tries++
		return false
	}

	if outside(out.corners, run.srcW, run.srcH) {
		id.metrics.IncrementEscalation(metrics.EscalationOutside)
		if out.filtered > minCorners {
			run.morph = outsideMorphology(run.morph, run.shorterSide()/outsideShapeDivisor)
		}
		log.WithField("morphology", fmt.Sprint(run.morph)).Debug("document exceeds the image")
		run.tries++
		return false
	}

	minimalArea := float64(run.workW*run.workH) / 4
	if out.doc.Area() <= minimalArea/run.scale {
		adj, ok := id.detector.(AdjustableDetector)
		if !ok {
			return true
		}
		level := adj.Sensitivity()
		switch level {
		case imaging.SensitivityLow, imaging.SensitivityMedium:
			level++
			adj.SetSensitivity(level)
			id.metrics.IncrementEscalation(metrics.EscalationSensitivity)
		default:
			run.morph = imaging.NewNone()
			id.metrics.IncrementEscalation(metrics.EscalationMorphology)
		}
		log.WithFields(logrus.Fields{
			"area":        out.doc.Area(),
			"sensitivity": level.String(),
			"morphology":  fmt.Sprint(run.morph),
		}).Debug("document is small")
		run.tries++
		return false
	}

	return true
}

// isNoisy reports whether an edge map produced too many lines, or too few
// intersections per line.
func (id *Identifier) isNoisy(lines, inters int) bool {
	if lines > id.settings.NoisyLines {
		return true
	}
	return lines > 0 && float64(inters)/float64(lines) < id.settings.MinIntersectionRatio
}

// noiseMorphology moves opening, closing and no operator to an erosion of
// the same size, and grows dilations and erosions while they are smaller
// than limit. changed is false when the operator stays the same.
func noiseMorphology(m Morphology, limit int) (next Morphology, changed bool) {
	size := m.ShapeSize()
	switch m.Kind() {
	case imaging.MorphOpening, imaging.MorphClosing, imaging.MorphNone:
		return imaging.NewErosion(imaging.ShapeSquare, size), true
	case imaging.MorphDilation:
		if size < limit {
			return imaging.NewDilation(imaging.ShapeSquare, size+1), true
		}
	case imaging.MorphErosion:
		if size < limit {
			return imaging.NewErosion(imaging.ShapeSquare, size+1), true
		}
	}
	return m, false
}

// outsideMorphology grows a dilation up to limit. Other operators are kept.
func outsideMorphology(m Morphology, limit int) Morphology {
	if m.Kind() == imaging.MorphDilation && m.ShapeSize() <= limit {
		return imaging.NewDilation(imaging.ShapeSquare, m.ShapeSize()+1)
	}
	return m
}

// outside reports whether a corner lies off the pixel grid of a width x
// height image.
func outside(corners [4]geometry.Point, width, height int) bool {
	for _, c := range corners {
		if c.X < 0 || c.Y < 0 || c.X >= float64(width) || c.Y >= float64(height) {
			return true
		}
	}
	return false
}
