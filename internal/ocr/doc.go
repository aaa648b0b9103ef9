// Package ocr reads the text of a located document with Tesseract through
// gosseract. Tesseract and its language data must be installed; tests skip
// when they are not.
package ocr
