package ocr

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/otiai10/gosseract/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/doccrop-mcp/internal/document"
	"github.com/ironsheep/doccrop-mcp/internal/geometry"
)

func requireTesseract(t *testing.T) {
	t.Helper()
	if !Available(DefaultLanguage) {
		t.Skip("Tesseract with English data not available")
	}
}

// textImage renders text in black on white with basicfont, enlarged by
// scale so Tesseract can read it.
func textImage(text string, scale int) *image.RGBA {
	small := image.NewRGBA(image.Rect(0, 0, len(text)*7+20, 30))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(10), Y: fixed.I(20)},
	}
	d.DrawString(text)

	b := small.Bounds()
	big := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(big, big.Bounds(), small, b, draw.Src, nil)
	return big
}

func TestExtractText(t *testing.T) {
	requireTesseract(t)

	res, err := ExtractText(textImage("HELLO", 4), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguage, res.Language)
	assert.Contains(t, strings.ToUpper(res.FullText), "HELLO")
	require.NotEmpty(t, res.Regions)
	for _, r := range res.Regions {
		assert.NotEmpty(t, r.Text)
		assert.GreaterOrEqual(t, r.Confidence, 0.0)
		assert.LessOrEqual(t, r.Confidence, 1.0)
	}
}

func TestExtractText_InvalidLanguage(t *testing.T) {
	requireTesseract(t)

	_, err := ExtractText(textImage("HELLO", 2), "not-a-language")
	assert.Error(t, err)
}

func TestExtractDocumentText(t *testing.T) {
	requireTesseract(t)

	text := textImage("DOC", 4)
	page := image.NewRGBA(image.Rect(0, 0, text.Bounds().Dx()+200, text.Bounds().Dy()+200))
	draw.Draw(page, page.Bounds(), image.NewUniform(color.Gray{Y: 40}), image.Point{}, draw.Src)
	draw.Draw(page, text.Bounds().Add(image.Pt(100, 100)), text, image.Point{}, draw.Src)

	center := geometry.Pt(100+float64(text.Bounds().Dx())/2, 100+float64(text.Bounds().Dy())/2)
	doc, err := document.New(center, float64(text.Bounds().Dx()), float64(text.Bounds().Dy()))
	require.NoError(t, err)

	res, err := ExtractDocumentText(page, doc, DefaultLanguage)
	require.NoError(t, err)
	assert.Contains(t, strings.ToUpper(res.FullText), "DOC")
}

func TestExtractDocumentText_Empty(t *testing.T) {
	doc := &document.Document{X: 10, Y: 10}
	_, err := ExtractDocumentText(image.NewRGBA(image.Rect(0, 0, 20, 20)), doc, DefaultLanguage)
	assert.Error(t, err)
}

func TestRegions(t *testing.T) {
	boxes := []gosseract.BoundingBox{
		{Box: image.Rect(1, 2, 30, 12), Word: "Invoice", Confidence: 91.5},
		{Box: image.Rect(0, 0, 1, 1), Word: "  ", Confidence: 10},
		{Box: image.Rect(40, 2, 60, 12), Word: " 2011", Confidence: 50},
	}

	got := regions(boxes)
	require.Len(t, got, 2)
	assert.Equal(t, TextRegion{Text: "Invoice", Confidence: 0.915, Bounds: Bounds{1, 2, 30, 12}}, got[0])
	assert.Equal(t, "2011", got[1].Text)
	assert.InDelta(t, 0.5, got[1].Confidence, 1e-9)
}
