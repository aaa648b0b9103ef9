package identify

import (
	"image"

	"github.com/ironsheep/doccrop-mcp/internal/hough"
)

// State is the stage an identification has reached.
type State int

const (
	StateIdle State = iota
	StateLoaded
	StateScaled
	StateGrayscaled
	StateMorphed
	StateEdgeDetected
	StateHoughSearched
	StateFiltered
	StateRectangleComputed
	StateEvaluated
	StateAccepted
	StateExhausted
)

var stateNames = [...]string{
	"idle", "loaded", "scaled", "grayscaled", "morphed", "edge_detected",
	"hough_searched", "filtered", "rectangle_computed", "evaluated",
	"accepted", "exhausted",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EventType names a lifecycle event.
type EventType string

const (
	EventImageRead             EventType = "image_read"
	EventImageScaled           EventType = "image_scaled"
	EventImageGrayscaled       EventType = "image_grayscaled"
	EventImageMorphed          EventType = "image_morphed"
	EventImageEdgeDetected     EventType = "image_edge_detected"
	EventHoughTransformed      EventType = "image_hough_transformed"
	EventIntersectionsFiltered EventType = "intersections_filtered"
)

// Event carries the artifact produced at one stage. Image is set for image
// events, Intersections for the Hough and filter events.
type Event struct {
	Type          EventType
	ID            string
	Image         image.Image
	Intersections []hough.Intersection
}

// Observer receives lifecycle events.
type Observer func(Event)
