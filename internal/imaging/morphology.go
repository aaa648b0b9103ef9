package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// MorphKind tags the morphological operators the identifier can swap
// between while it retries.
type MorphKind int

const (
	MorphNone MorphKind = iota
	MorphOpening
	MorphClosing
	MorphDilation
	MorphErosion
)

var morphNames = map[MorphKind]string{
	MorphNone:     "none",
	MorphOpening:  "opening",
	MorphClosing:  "closing",
	MorphDilation: "dilation",
	MorphErosion:  "erosion",
}

func (k MorphKind) String() string {
	if name, ok := morphNames[k]; ok {
		return name
	}
	return fmt.Sprintf("MorphKind(%d)", int(k))
}

// ParseMorphKind is the inverse of MorphKind.String.
func ParseMorphKind(s string) (MorphKind, error) {
	for k, name := range morphNames {
		if name == s {
			return k, nil
		}
	}
	return MorphNone, fmt.Errorf("unknown morphology %q", s)
}

// Shape is the structuring element of a morphological operator.
type Shape int

const (
	// ShapeSquare is a (2*size+1) square window.
	ShapeSquare Shape = iota
)

func (s Shape) String() string {
	return "square"
}

// Morphology is a morphological operator with a square structuring element
// whose radius is its shape size. Values are immutable.
type Morphology struct {
	kind  MorphKind
	shape Shape
	size  int
}

// NewMorphology returns an operator of the given kind. Negative sizes are
// treated as zero, which makes every kind an identity.
func NewMorphology(kind MorphKind, shape Shape, size int) Morphology {
	if size < 0 {
		size = 0
	}
	if kind == MorphNone {
		size = 0
	}
	return Morphology{kind: kind, shape: shape, size: size}
}

func NewNone() Morphology { return NewMorphology(MorphNone, ShapeSquare, 0) }

func NewOpening(shape Shape, size int) Morphology {
	return NewMorphology(MorphOpening, shape, size)
}

func NewClosing(shape Shape, size int) Morphology {
	return NewMorphology(MorphClosing, shape, size)
}

func NewDilation(shape Shape, size int) Morphology {
	return NewMorphology(MorphDilation, shape, size)
}

func NewErosion(shape Shape, size int) Morphology {
	return NewMorphology(MorphErosion, shape, size)
}

func (m Morphology) Kind() MorphKind { return m.kind }
func (m Morphology) Shape() Shape    { return m.shape }
func (m Morphology) ShapeSize() int  { return m.size }

func (m Morphology) String() string {
	if m.kind == MorphNone {
		return m.kind.String()
	}
	return fmt.Sprintf("%s(%s,%d)", m.kind, m.shape, m.size)
}

// Execute applies the operator to img and returns a new image.
func (m Morphology) Execute(img image.Image) image.Image {
	r := float64(m.size)
	switch m.kind {
	case MorphDilation:
		return effect.Dilate(img, r)
	case MorphErosion:
		return effect.Erode(img, r)
	case MorphOpening:
		return effect.Dilate(effect.Erode(img, r), r)
	case MorphClosing:
		return effect.Erode(effect.Dilate(img, r), r)
	}
	return CopyImage(img)
}
