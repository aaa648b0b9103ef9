package document

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/doccrop-mcp/internal/geometry"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		center geometry.Point
		w, h   float64
		rot    float64
	}{
		{"negative x", geometry.Pt(-1, 5), 10, 10, 0},
		{"negative y", geometry.Pt(5, -1), 10, 10, 0},
		{"negative width", geometry.Pt(5, 5), -1, 10, 0},
		{"negative height", geometry.Pt(5, 5), 10, -1, 0},
		{"rotation too large", geometry.Pt(5, 5), 10, 10, 91},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRotated(tt.center, tt.w, tt.h, tt.rot)
			assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
		})
	}

	d, err := New(geometry.Pt(0, 0), 0, 0)
	require.NoError(t, err)
	assert.Zero(t, d.Area())
}

func TestCorners_RoundTrip(t *testing.T) {
	for _, rot := range []float64{0, 45, -30, 12.5} {
		d, err := NewRotated(geometry.Pt(200, 200), 100, 150, rot)
		require.NoError(t, err)

		c := d.Corners()
		assert.Equal(t, c[0], c[4])

		back, err := FromCorners(c[0], c[1], c[2], c[3])
		require.NoError(t, err)
		assert.InDelta(t, 200, back.X, 1e-9)
		assert.InDelta(t, 200, back.Y, 1e-9)
		assert.InDelta(t, 100, back.Width, 1e-9)
		assert.InDelta(t, 150, back.Height, 1e-9)
		assert.InDelta(t, rot, back.Rotation, 1e-9)
	}
}

func TestCorners_AxisAligned(t *testing.T) {
	d, err := New(geometry.Pt(200, 100), 200, 100)
	require.NoError(t, err)

	want := geometry.Rectangle{
		geometry.Pt(100, 50), geometry.Pt(100, 150), geometry.Pt(300, 150),
		geometry.Pt(300, 50), geometry.Pt(100, 50),
	}
	got := d.Corners()
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, 1e-9)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-9)
	}
	assert.InDelta(t, 20000, d.Area(), 1e-9)
}

func TestFromCorners(t *testing.T) {
	t.Run("vertical edge gives 90 degrees", func(t *testing.T) {
		d, err := FromCorners(geometry.Pt(0, 0), geometry.Pt(10, 0), geometry.Pt(10, 20), geometry.Pt(0, 20))
		require.NoError(t, err)
		assert.Equal(t, 90.0, d.Rotation)
		assert.InDelta(t, 10, d.Height, 1e-9)
		assert.InDelta(t, 20, d.Width, 1e-9)
	})

	t.Run("negative corner", func(t *testing.T) {
		_, err := FromCorners(geometry.Pt(0, 0), geometry.Pt(-1, 0), geometry.Pt(10, 20), geometry.Pt(0, 20))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestPad(t *testing.T) {
	d := &Document{Width: 10, Height: 10}
	d.Pad(5, -20)
	assert.Equal(t, 15.0, d.Width)
	assert.Equal(t, 0.0, d.Height)
}

func TestWriteAll(t *testing.T) {
	docs := []*Document{
		{X: 10, Y: 20, Width: 30, Height: 40, Rotation: 1.5, ID: "a.png"},
		{X: 1, Y: 2, Width: 3, Height: 4, ID: "b.png"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteAll(&buf, docs, SimplePrinter{}))
	assert.Equal(t, "a.png\t10\t20\t30\t40\t1.50\nb.png\t1\t2\t3\t4\t0.00\n", buf.String())
}
