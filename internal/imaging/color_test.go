package imaging

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorderColor(t *testing.T) {
	t.Run("solid", func(t *testing.T) {
		got := BorderColor(solidImage(40, 30, color.RGBA{10, 20, 30, 255}))
		assert.Equal(t, color.RGBA{10, 20, 30, 255}, got)
	})

	t.Run("one side covered", func(t *testing.T) {
		img := solidImage(60, 60, color.Gray{Y: 20})
		for y := 0; y < 60; y++ {
			for x := 0; x < 3; x++ {
				img.Set(x, y, color.White)
			}
		}
		got := BorderColor(img)
		// The left strip is white, top and bottom are mostly dark, right is dark.
		assert.Less(t, int(got.R), 40)
	})

	t.Run("document in the middle", func(t *testing.T) {
		img := createEdgeTestImage(80, 80)
		assert.Equal(t, color.RGBA{255, 255, 255, 255}, BorderColor(img))
	})
}

func TestMedianInt(t *testing.T) {
	tests := []struct {
		in   []int
		want int
	}{
		{nil, 0},
		{[]int{5}, 5},
		{[]int{3, 1, 2}, 2},
		{[]int{4, 1, 3, 2}, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MedianInt(tt.in), "%v", tt.in)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 128, 0, 255}, c)

	c, err = ParseColor("#00ff0080")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0, 255, 0, 128}, c)

	_, err = ParseColor("red")
	assert.Error(t, err)
}

func TestNewColorResult(t *testing.T) {
	res := NewColorResult(color.RGBA{255, 0, 128, 255})
	assert.Equal(t, "#ff0080", res.Hex)
	assert.Equal(t, RGBColor{R: 255, G: 0, B: 128}, res.RGB)
}
