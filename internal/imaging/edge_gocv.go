//go:build gocv

package imaging

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// GoCVDetector runs OpenCV's Canny. It is only built with the gocv tag since
// it needs the OpenCV libraries at link time.
type GoCVDetector struct {
	sensitivity Sensitivity
	src         image.Image
	edges       image.Image
}

func NewGoCVDetector(s Sensitivity) *GoCVDetector {
	return &GoCVDetector{sensitivity: s}
}

func (d *GoCVDetector) Sensitivity() Sensitivity     { return d.sensitivity }
func (d *GoCVDetector) SetSensitivity(s Sensitivity) { d.sensitivity = s }

func (d *GoCVDetector) SetSourceImage(img image.Image) {
	d.src = img
	d.edges = nil
}

func (d *GoCVDetector) EdgesImage() image.Image { return d.edges }

func (d *GoCVDetector) Process() error {
	if d.src == nil {
		return ErrNoSource
	}

	rgba := ConvertToGrayScale(d.src)
	b := rgba.Bounds()
	mat, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return fmt.Errorf("failed to convert image for OpenCV: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBAToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	low, high := d.sensitivity.Thresholds()
	gocv.Canny(gray, &edges, float32(low), float32(high))

	img, err := edges.ToImage()
	if err != nil {
		return fmt.Errorf("failed to convert edges from OpenCV: %w", err)
	}
	d.edges = img
	return nil
}
