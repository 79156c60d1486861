package model

import "github.com/Veraticus/gable/internal/geometry"

// ReferenceSegment is a user-picked pair of pixels a known real-world
// distance apart. It is the only source of scale in a calculation.
type ReferenceSegment struct {
	A          geometry.Point
	B          geometry.Point
	RealLength float64
}

// MeasurementRequest is the complete input for one calculation: the
// digitized outline, the scale reference, and the roof pitch.
type MeasurementRequest struct {
	Points       []geometry.Point
	Reference    ReferenceSegment
	AngleDegrees float64
}

// AreaResult carries the projected (top-down) and pitch-corrected roof
// areas in square meters.
type AreaResult struct {
	Projected float64
	True      float64
}

// Params echoes the inputs a result was computed from.
type Params struct {
	AngleDegrees float64
	Scale        float64
	VertexCount  int
}

// MeasurementResult is the aggregate outcome of one calculation. It is
// built fresh per request and owns no shared state.
type MeasurementResult struct {
	Edges  Buckets
	Areas  AreaResult
	Params Params
}
