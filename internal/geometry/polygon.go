package geometry

import "math"

// Polygon is an ordered ring of vertices in click order. The ring is
// implicitly closed: the last vertex connects back to the first.
type Polygon []Point

// Dedupe removes consecutive duplicate points, including any trailing
// points that close the ring back onto the first vertex. Comparison is
// exact; nearly-coincident clicks are legitimate short edges.
func Dedupe(points []Point) Polygon {
	if len(points) == 0 {
		return nil
	}
	out := make(Polygon, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

// SignedArea returns the shoelace area of the ring. The sign encodes the
// traversal direction; callers that need the enclosed area should take
// the absolute value.
func (pg Polygon) SignedArea() float64 {
	if len(pg) < 3 {
		return 0
	}
	var sum float64
	for i, p := range pg {
		q := pg[(i+1)%len(pg)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Area returns the enclosed area of the ring in square pixels.
func (pg Polygon) Area() float64 {
	return math.Abs(pg.SignedArea())
}

// Winding returns the sign of the signed area: +1 or -1, or 0 for a
// degenerate ring. Per-vertex orientation tests compare against this
// sign, which makes them independent of click direction.
func (pg Polygon) Winding() int {
	area := pg.SignedArea()
	switch {
	case area > 0:
		return 1
	case area < 0:
		return -1
	default:
		return 0
	}
}

// Centroid returns the vertex mean of the ring. Edge classification
// splits near-horizontal edges on this point's y-coordinate, matching
// how the outline reads visually rather than weighting by area.
func (pg Polygon) Centroid() Point {
	if len(pg) == 0 {
		return Point{}
	}
	var sumX, sumY float64
	for _, p := range pg {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(pg))
	return Point{X: sumX / n, Y: sumY / n}
}

// Perimeter returns the total boundary length of the ring in pixels.
func (pg Polygon) Perimeter() float64 {
	if len(pg) < 2 {
		return 0
	}
	var sum float64
	for i, p := range pg {
		sum += p.Distance(pg[(i+1)%len(pg)])
	}
	return sum
}

// ReflexVertices flags every vertex whose interior angle exceeds 180
// degrees. A vertex is reflex when the cross product of its incoming and
// outgoing edge vectors opposes the ring's winding; collinear vertices
// count as convex.
func (pg Polygon) ReflexVertices() []bool {
	n := len(pg)
	flags := make([]bool, n)
	if n < 3 {
		return flags
	}
	winding := float64(pg.Winding())
	if winding == 0 {
		return flags
	}
	for i, v := range pg {
		prev := pg[(i+n-1)%n]
		next := pg[(i+1)%n]
		flags[i] = Cross(prev, v, next)*winding < 0
	}
	return flags
}

// SelfIntersects reports whether any two non-adjacent edges of the ring
// properly cross. Shared endpoints and collinear overlaps do not count;
// overlaps collapse to zero area and are caught by the area check.
func (pg Polygon) SelfIntersects() bool {
	n := len(pg)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a1, a2 := pg[i], pg[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if segmentsCross(a1, a2, pg[j], pg[(j+1)%n]) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports a proper crossing: each segment's endpoints lie
// strictly on opposite sides of the other segment's line.
func segmentsCross(a1, a2, b1, b2 Point) bool {
	d1 := Cross(a1, a2, b1)
	d2 := Cross(a1, a2, b2)
	d3 := Cross(b1, b2, a1)
	d4 := Cross(b1, b2, a2)
	return d1*d2 < 0 && d3*d4 < 0
}
