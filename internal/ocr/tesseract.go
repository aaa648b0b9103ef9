package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/doccrop-mcp/internal/document"
	"github.com/ironsheep/doccrop-mcp/internal/imaging"
)

// DefaultLanguage is used when no language is given.
const DefaultLanguage = "eng"

// Bounds is a rectangle in pixel coordinates of the image passed to OCR.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// TextRegion is one recognized word.
type TextRegion struct {
	Text string `json:"text"`

	// Confidence is between 0 and 1.
	Confidence float64 `json:"confidence"`
	Bounds     Bounds  `json:"bounds"`
}

// Result is the text found on an image.
type Result struct {
	FullText string       `json:"full_text"`
	Regions  []TextRegion `json:"regions"`
	Language string       `json:"language"`
}

// ExtractText runs Tesseract on img. Word regions are best effort: when
// Tesseract cannot report them the text is still returned.
func ExtractText(img image.Image, language string) (*Result, error) {
	if language == "" {
		language = DefaultLanguage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	res := &Result{FullText: text, Regions: []TextRegion{}, Language: language}
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil {
		res.Regions = regions(boxes)
	}
	return res, nil
}

// ExtractDocumentText cuts doc out of img, deskews it and runs ExtractText
// on the result. Region bounds refer to the deskewed crop.
func ExtractDocumentText(img image.Image, doc *document.Document, language string) (*Result, error) {
	cropped, err := imaging.CropRotated(img, doc.Center(), doc.Width, doc.Height, doc.Rotation, color.White)
	if err != nil {
		return nil, fmt.Errorf("failed to crop document: %w", err)
	}
	return ExtractText(cropped, language)
}

func regions(boxes []gosseract.BoundingBox) []TextRegion {
	out := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		out = append(out, TextRegion{
			Text:       word,
			Confidence: box.Confidence / 100,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}
	return out
}

// Available reports whether Tesseract has data for language.
func Available(language string) bool {
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return false
	}
	for _, l := range langs {
		if l == language {
			return true
		}
	}
	return false
}

// Version returns the version of the linked Tesseract library.
func Version() string {
	return gosseract.Version()
}
