package identify

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_identify.go -package=mocks

import (
	"image"

	"github.com/ironsheep/doccrop-mcp/internal/imaging"
)

// EdgeDetector turns a gray image into an edge map. Implementations keep
// state between SetSourceImage, Process and EdgesImage.
type EdgeDetector interface {
	SetSourceImage(img image.Image)
	Process() error
	EdgesImage() image.Image
}

// AdjustableDetector is an EdgeDetector with sensitivity levels the
// identifier may raise between attempts.
type AdjustableDetector interface {
	EdgeDetector
	Sensitivity() imaging.Sensitivity
	SetSensitivity(s imaging.Sensitivity)
}

// Morphology is a morphological operator applied before edge detection.
// Kind drives the escalation policy.
type Morphology interface {
	Execute(img image.Image) image.Image
	ShapeSize() int
	Kind() imaging.MorphKind
}
