// Package model defines the domain types shared by the measurement
// pipeline and its callers.
package model

import "github.com/Veraticus/gable/internal/geometry"

// EdgeKind labels a polygon edge with the roof element it represents.
type EdgeKind string

// Edge kind constants.
const (
	KindRidge  EdgeKind = "ridge"
	KindEave   EdgeKind = "eave"
	KindRake   EdgeKind = "rake"
	KindValley EdgeKind = "valley"
)

// Edge is one classified side of the roof outline. Lengths keep full
// floating precision; rounding happens at serialization.
type Edge struct {
	Kind        EdgeKind
	Start       geometry.Point
	End         geometry.Point
	Midpoint    geometry.Point
	PixelLength float64
	RealLength  float64
	ID          int
}

// Buckets partitions classified edges by kind. Each bucket holds its
// edges in polygon traversal order with ids assigned 1, 2, 3 within
// the bucket.
type Buckets struct {
	Ridges  []Edge
	Eaves   []Edge
	Rakes   []Edge
	Valleys []Edge
}

// Add appends an edge to the bucket matching its kind and assigns its
// 1-based id within that bucket.
func (b *Buckets) Add(e Edge) {
	switch e.Kind {
	case KindRidge:
		e.ID = len(b.Ridges) + 1
		b.Ridges = append(b.Ridges, e)
	case KindEave:
		e.ID = len(b.Eaves) + 1
		b.Eaves = append(b.Eaves, e)
	case KindRake:
		e.ID = len(b.Rakes) + 1
		b.Rakes = append(b.Rakes, e)
	case KindValley:
		e.ID = len(b.Valleys) + 1
		b.Valleys = append(b.Valleys, e)
	}
}

// All returns every classified edge, ridges first, then eaves, rakes,
// and valleys.
func (b Buckets) All() []Edge {
	out := make([]Edge, 0, b.Len())
	out = append(out, b.Ridges...)
	out = append(out, b.Eaves...)
	out = append(out, b.Rakes...)
	out = append(out, b.Valleys...)
	return out
}

// Len returns the total number of classified edges.
func (b Buckets) Len() int {
	return len(b.Ridges) + len(b.Eaves) + len(b.Rakes) + len(b.Valleys)
}
