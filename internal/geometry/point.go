// Package geometry provides the planar primitives the measurement engine
// is built on. All coordinates are image-space pixels: x grows right,
// y grows down.
package geometry

import "math"

// Eps bounds how close to zero a distance or area may get before it is
// treated as degenerate.
const Eps = 1e-9

// Point is a 2D point in pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint creates a new Point.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Sub returns the vector from other to p.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Cross returns the z-component of the cross product of vectors OA and OB.
// In image coordinates its sign flips relative to the usual mathematical
// convention because y grows downward.
func Cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
