// Package document holds the oriented rectangle that the identifier
// produces for a scanned page, plus the batch post-processing applied to a
// run of such rectangles.
//
// A Document is described by its center, width, height and a rotation in
// degrees in [-90, 90], measured clockwise from the x-axis in image
// coordinates (Y pointing down). Corners and FromCorners convert between that
// description and the four corner points.
//
// CorrectBatch smooths a sequence of Documents taken from consecutive scans of
// similar pages: sizes are replaced by a quantile of the batch and positions
// by a running median.
package document
