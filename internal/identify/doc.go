// Package identify locates a single document on a scanned image.
//
// An Identifier scales the image to a working size, converts it to gray and
// then runs attempts until one is accepted or the retry budget is spent. An
// attempt applies a morphological operator, runs the edge detector, searches
// the edge image for lines and corner-like intersections (package hough),
// and fits the minimal area rectangle around the surviving corners (package
// geometry). The rectangle is scaled back to source pixels and turned into a
// document.Document.
//
// # Escalation
//
// After each attempt the result is checked in this order:
//
//  1. Noise: too many lines, or too few intersections per line. The
//     morphology moves towards erosion and grows, and the attempt is re-run.
//     A re-run does not use up a retry while the operator still changes.
//  2. Outside: a corner falls outside the source image. A dilation operator
//     may grow when there are spare corners. This uses up a retry.
//  3. Small: the document covers at most a quarter of the working image. An
//     adjustable edge detector is made more sensitive (low, medium, high,
//     then the morphology is switched off) and a retry is used up. A
//     detector without sensitivity levels accepts the result.
//  4. Otherwise the result is accepted.
//
// When the retries run out the last document is returned with
// Result.Exhausted set; exhaustion is not an error.
//
// # Cancellation
//
// IdentifyResult checks its context after loading, after scaling, after the
// gray conversion, around the edge detector and before every Hough step. A
// cancelled run returns ErrCancelled and leaves the identifier's operator
// and last result unchanged.
//
// # Observers
//
// Observers receive an Event with the intermediate image or intersections at
// every stage. They run synchronously and must not modify what they receive.
package identify
