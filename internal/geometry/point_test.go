package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name string
		a    Point
		b    Point
		want float64
	}{
		{name: "horizontal", a: NewPoint(0, 0), b: NewPoint(100, 0), want: 100},
		{name: "vertical", a: NewPoint(3, 10), b: NewPoint(3, 6), want: 4},
		{name: "pythagorean triple", a: NewPoint(0, 0), b: NewPoint(3, 4), want: 5},
		{name: "coincident", a: NewPoint(7, 7), b: NewPoint(7, 7), want: 0},
		{name: "negative coordinates", a: NewPoint(-3, -4), b: NewPoint(0, 0), want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.Distance(tt.b), 1e-12)
			assert.InDelta(t, tt.want, tt.b.Distance(tt.a), 1e-12, "distance must be symmetric")
		})
	}
}

func TestMidpoint(t *testing.T) {
	tests := []struct {
		name string
		a    Point
		b    Point
		want Point
	}{
		{name: "axis aligned", a: NewPoint(0, 0), b: NewPoint(100, 0), want: NewPoint(50, 0)},
		{name: "diagonal", a: NewPoint(10, 20), b: NewPoint(30, 60), want: NewPoint(20, 40)},
		{name: "coincident", a: NewPoint(5, 5), b: NewPoint(5, 5), want: NewPoint(5, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Midpoint(tt.a, tt.b)
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
		})
	}
}

func TestCross(t *testing.T) {
	o := NewPoint(0, 0)
	a := NewPoint(1, 0)
	b := NewPoint(1, 1)

	// In image coordinates a turn toward larger y is positive.
	assert.Positive(t, Cross(o, a, b))
	assert.Negative(t, Cross(o, b, a), "swapping operands must flip the sign")
	assert.Zero(t, Cross(o, a, NewPoint(2, 0)), "collinear points have zero cross product")
}

func TestSub(t *testing.T) {
	v := NewPoint(10, 4).Sub(NewPoint(3, 1))
	assert.Equal(t, NewPoint(7, 3), v)
}
