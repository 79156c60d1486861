package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square is a 100px axis-aligned square traversed clockwise on screen.
func square() Polygon {
	return Polygon{
		NewPoint(0, 0),
		NewPoint(100, 0),
		NewPoint(100, 100),
		NewPoint(0, 100),
	}
}

// lShape is a concave hexagon with a single reflex corner at (100,100).
func lShape() Polygon {
	return Polygon{
		NewPoint(0, 0),
		NewPoint(200, 0),
		NewPoint(200, 100),
		NewPoint(100, 100),
		NewPoint(100, 200),
		NewPoint(0, 200),
	}
}

func reversed(pg Polygon) Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[len(pg)-1-i] = p
	}
	return out
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   Polygon
	}{
		{
			name:   "no duplicates",
			points: []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
			want:   Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		},
		{
			name:   "double click in the middle",
			points: []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
			want:   Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		},
		{
			name:   "explicitly closed ring",
			points: []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 0}},
			want:   Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		},
		{
			name:   "all points identical",
			points: []Point{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}},
			want:   Polygon{{X: 5, Y: 5}},
		},
		{
			name:   "empty input",
			points: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dedupe(tt.points))
		})
	}
}

func TestSignedAreaAndWinding(t *testing.T) {
	sq := square()
	assert.InDelta(t, 10000.0, sq.SignedArea(), 1e-9)
	assert.Equal(t, 1, sq.Winding())

	rev := reversed(sq)
	assert.InDelta(t, -10000.0, rev.SignedArea(), 1e-9)
	assert.Equal(t, -1, rev.Winding())
	assert.InDelta(t, sq.Area(), rev.Area(), 1e-9, "area must not depend on traversal direction")

	collinear := Polygon{NewPoint(0, 0), NewPoint(50, 50), NewPoint(100, 100)}
	assert.Zero(t, collinear.Winding())
}

func TestAreaInvariantUnderStartingVertex(t *testing.T) {
	pg := lShape()
	want := pg.Area()

	for shift := 1; shift < len(pg); shift++ {
		rotated := append(Polygon{}, pg[shift:]...)
		rotated = append(rotated, pg[:shift]...)
		assert.InDelta(t, want, rotated.Area(), 1e-9, "shift %d", shift)
	}
}

func TestCentroid(t *testing.T) {
	c := square().Centroid()
	assert.InDelta(t, 50.0, c.X, 1e-12)
	assert.InDelta(t, 50.0, c.Y, 1e-12)

	assert.Equal(t, Point{}, Polygon{}.Centroid())
}

func TestPerimeter(t *testing.T) {
	assert.InDelta(t, 400.0, square().Perimeter(), 1e-9)
	assert.InDelta(t, 800.0, lShape().Perimeter(), 1e-9)
	assert.Zero(t, Polygon{NewPoint(1, 1)}.Perimeter())
}

func TestReflexVertices(t *testing.T) {
	t.Run("convex polygon has none", func(t *testing.T) {
		for _, flag := range square().ReflexVertices() {
			assert.False(t, flag)
		}
	})

	t.Run("l-shape has exactly one", func(t *testing.T) {
		flags := lShape().ReflexVertices()
		require.Len(t, flags, 6)
		assert.Equal(t, []bool{false, false, false, true, false, false}, flags)
	})

	t.Run("independent of traversal direction", func(t *testing.T) {
		forward := lShape().ReflexVertices()
		backward := reversed(lShape()).ReflexVertices()
		for i := range forward {
			assert.Equal(t, forward[i], backward[len(backward)-1-i], "vertex %d", i)
		}
	})

	t.Run("degenerate ring reports none", func(t *testing.T) {
		collinear := Polygon{NewPoint(0, 0), NewPoint(1, 1), NewPoint(2, 2)}
		assert.Equal(t, []bool{false, false, false}, collinear.ReflexVertices())
	})
}

func TestSelfIntersects(t *testing.T) {
	tests := []struct {
		name string
		pg   Polygon
		want bool
	}{
		{name: "square", pg: square(), want: false},
		{name: "l-shape", pg: lShape(), want: false},
		{name: "triangle", pg: Polygon{NewPoint(0, 0), NewPoint(10, 0), NewPoint(5, 8)}, want: false},
		{
			name: "bowtie",
			pg:   Polygon{NewPoint(0, 0), NewPoint(100, 100), NewPoint(100, 0), NewPoint(0, 100)},
			want: true,
		},
		{
			name: "five point star",
			pg: Polygon{
				NewPoint(50, 0),
				NewPoint(79, 90),
				NewPoint(2, 35),
				NewPoint(98, 35),
				NewPoint(21, 90),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pg.SelfIntersects())
		})
	}
}
