package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollinear(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c Point
		wantMid int
		wantOK  bool
	}{
		{"b in the middle", Pt(0, 0), Pt(1, 1), Pt(2, 2), 1, true},
		{"a in the middle", Pt(1, 0), Pt(0, 0), Pt(2, 0), 0, true},
		{"c in the middle", Pt(0, 0), Pt(0, 4), Pt(0, 2), 2, true},
		{"not collinear", Pt(0, 0), Pt(1, 0), Pt(0, 1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mid, ok := Collinear(tt.a, tt.b, tt.c)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantMid, mid)
			}
		})
	}
}

func TestRemoveCollinear(t *testing.T) {
	t.Run("line of three", func(t *testing.T) {
		got := RemoveCollinear([]Point{Pt(0, 0), Pt(1, 1), Pt(2, 2)})
		assert.ElementsMatch(t, []Point{Pt(0, 0), Pt(2, 2)}, got)
	})

	t.Run("square with edge midpoints", func(t *testing.T) {
		in := []Point{
			Pt(0, 0), Pt(5, 0), Pt(10, 0),
			Pt(10, 5), Pt(10, 10), Pt(5, 10),
			Pt(0, 10), Pt(0, 5),
		}
		got := RemoveCollinear(in)
		assert.ElementsMatch(t, []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}, got)
	})

	t.Run("input untouched", func(t *testing.T) {
		in := []Point{Pt(0, 0), Pt(1, 1), Pt(2, 2)}
		_ = RemoveCollinear(in)
		assert.Equal(t, []Point{Pt(0, 0), Pt(1, 1), Pt(2, 2)}, in)
	})

	t.Run("no triple left collinear", func(t *testing.T) {
		in := []Point{
			Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0),
			Pt(0, 1), Pt(0, 2), Pt(3, 3), Pt(1, 1),
		}
		got := RemoveCollinear(in)
		for i := 0; i < len(got); i++ {
			for j := i + 1; j < len(got); j++ {
				for k := j + 1; k < len(got); k++ {
					_, ok := Collinear(got[i], got[j], got[k])
					assert.Falsef(t, ok, "collinear triple %v %v %v", got[i], got[j], got[k])
				}
			}
		}
	})
}

func TestConvexHull(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ConvexHull(nil))
	})

	t.Run("square with interior points", func(t *testing.T) {
		in := []Point{
			Pt(10, 10), Pt(3, 4), Pt(0, 0), Pt(5, 5),
			Pt(10, 0), Pt(7, 2), Pt(0, 10), Pt(5, 0),
		}
		hull := ConvexHull(in)
		require.Len(t, hull, 4)

		// Subset of the input.
		for _, p := range hull {
			assert.Contains(t, in, p)
		}

		// Clockwise with Y down.
		assert.Greater(t, PolygonArea(hull), 0.0)

		// Every input point is inside or on the hull.
		for i := range hull {
			a, b := hull[i], hull[(i+1)%len(hull)]
			for _, p := range in {
				assert.GreaterOrEqualf(t, cross(a, b, p), 0.0, "point %v outside edge %v->%v", p, a, b)
			}
		}
	})

	t.Run("starts at leftmost point", func(t *testing.T) {
		hull := ConvexHull([]Point{Pt(5, 0), Pt(9, 6), Pt(1, 5), Pt(4, 9)})
		require.NotEmpty(t, hull)
		assert.Equal(t, Pt(1, 5), hull[0])
	})

	t.Run("single point", func(t *testing.T) {
		assert.Equal(t, []Point{Pt(2, 3)}, ConvexHull([]Point{Pt(2, 3)}))
	})
}

func TestPolygonArea(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)}
	assert.InDelta(t, 16.0, PolygonArea(square), 1e-9)
	closed := append(append([]Point(nil), square...), square[0])
	assert.InDelta(t, 16.0, PolygonArea(closed), 1e-9)
	assert.Zero(t, PolygonArea(square[:2]))
}

func TestBoundingBox(t *testing.T) {
	min, max, ok := BoundingBox([]Point{Pt(3, 7), Pt(-1, 2), Pt(5, 4)})
	require.True(t, ok)
	assert.Equal(t, Pt(-1, 2), min)
	assert.Equal(t, Pt(5, 7), max)

	_, _, ok = BoundingBox(nil)
	assert.False(t, ok)
}
