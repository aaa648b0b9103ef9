// Package imaging provides the image operations behind document location:
// loading and caching scans, scaling and grayscale conversion, morphology,
// edge detection, border color sampling, rotated crops and overlays.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Rotations are in
// radians, clockwise on screen.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use; concurrent loads of the same path
// share a single read. The remaining functions never modify their input
// and return new images, except DrawGrid and DrawLabel which draw in place.
//
// # Edge Detection
//
// CannyDetector is the pure Go detector. Builds with the gocv tag add
// GoCVDetector, backed by OpenCV.
//
// # Supported Formats
//
// PNG, JPEG, GIF, BMP, TIFF and WebP are decoded. Results are encoded as
// PNG.
package imaging
