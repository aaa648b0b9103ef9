package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dotImage returns a black image with a single white pixel at (x, y).
func dotImage(width, height, x, y int) *image.RGBA {
	img := solidImage(width, height, color.Black)
	img.Set(x, y, color.White)
	return img
}

func whiteCount(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r>>8 > 128 {
				n++
			}
		}
	}
	return n
}

func TestMorphology_Execute(t *testing.T) {
	src := dotImage(20, 20, 10, 10)

	tests := []struct {
		name  string
		morph Morphology
		want  int
	}{
		{"none", NewNone(), 1},
		{"dilation 1", NewDilation(ShapeSquare, 1), 9},
		{"dilation 2", NewDilation(ShapeSquare, 2), 25},
		{"erosion removes dot", NewErosion(ShapeSquare, 1), 0},
		{"opening removes dot", NewOpening(ShapeSquare, 1), 0},
		{"closing keeps dot", NewClosing(ShapeSquare, 1), 1},
		{"zero size is identity", NewErosion(ShapeSquare, 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.morph.Execute(src)
			require.Equal(t, src.Bounds(), out.Bounds())
			assert.Equal(t, tt.want, whiteCount(out))
		})
	}

	assert.Equal(t, 1, whiteCount(src), "source must stay untouched")
}

func TestMorphology_Accessors(t *testing.T) {
	m := NewClosing(ShapeSquare, 3)
	assert.Equal(t, MorphClosing, m.Kind())
	assert.Equal(t, 3, m.ShapeSize())
	assert.Equal(t, "closing(square,3)", m.String())

	assert.Equal(t, 0, NewMorphology(MorphNone, ShapeSquare, 5).ShapeSize())
	assert.Equal(t, 0, NewDilation(ShapeSquare, -2).ShapeSize())
	assert.Equal(t, "none", NewNone().String())
}

func TestParseMorphKind(t *testing.T) {
	for k, name := range morphNames {
		got, err := ParseMorphKind(name)
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseMorphKind("blur")
	assert.Error(t, err)
}
