package roof

import (
	"testing"

	"github.com/Veraticus/gable/internal/common"
	"github.com/Veraticus/gable/internal/geometry"
	"github.com/Veraticus/gable/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tenMeterReference spans 100 pixels, resolving to 0.1 m/px.
func tenMeterReference() model.ReferenceSegment {
	return model.ReferenceSegment{
		A:          geometry.NewPoint(0, 0),
		B:          geometry.NewPoint(100, 0),
		RealLength: 10,
	}
}

func squareRequest() model.MeasurementRequest {
	return model.MeasurementRequest{
		Points: []geometry.Point{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
		},
		Reference:    tenMeterReference(),
		AngleDegrees: 0,
	}
}

func lShapeRequest() model.MeasurementRequest {
	return model.MeasurementRequest{
		Points: []geometry.Point{
			{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 100},
			{X: 100, Y: 100}, {X: 100, Y: 200}, {X: 0, Y: 200},
		},
		Reference:    tenMeterReference(),
		AngleDegrees: 35,
	}
}

func TestAnalyzer_Measure_Square(t *testing.T) {
	result, err := New().Measure(squareRequest())
	require.NoError(t, err)

	assert.Len(t, result.Edges.Ridges, 1)
	assert.Len(t, result.Edges.Eaves, 1)
	assert.Len(t, result.Edges.Rakes, 2)
	assert.Empty(t, result.Edges.Valleys)

	for _, e := range result.Edges.All() {
		assert.InDelta(t, 100.0, e.PixelLength, 1e-9)
		assert.InDelta(t, 10.0, e.RealLength, 1e-9, "each 100px side at 0.1 m/px is 10 m")
	}

	assert.InDelta(t, 100.0, result.Areas.Projected, 1e-9)
	assert.InDelta(t, result.Areas.Projected, result.Areas.True, 1e-12)

	assert.InDelta(t, 0.1, result.Params.Scale, 1e-12)
	assert.Zero(t, result.Params.AngleDegrees)
	assert.Equal(t, 4, result.Params.VertexCount)
}

func TestAnalyzer_Measure_LShape(t *testing.T) {
	result, err := New().Measure(lShapeRequest())
	require.NoError(t, err)

	assert.Len(t, result.Edges.Ridges, 1)
	assert.Len(t, result.Edges.Eaves, 1)
	assert.Len(t, result.Edges.Rakes, 2)
	require.Len(t, result.Edges.Valleys, 2, "both edges at the inner corner drain into valleys")

	// Valleys are the two edges touching the reflex vertex (100,100),
	// numbered in traversal order within their bucket.
	corner := geometry.NewPoint(100, 100)
	for i, v := range result.Edges.Valleys {
		assert.Equal(t, i+1, v.ID)
		touches := v.Start == corner || v.End == corner
		assert.True(t, touches, "valley %d should touch the reflex corner", i+1)
	}
}

func TestAnalyzer_Measure_ConvexNeverHasValleys(t *testing.T) {
	tests := []struct {
		name   string
		points []geometry.Point
	}{
		{
			name:   "triangle",
			points: []geometry.Point{{X: 0, Y: 80}, {X: 120, Y: 0}, {X: 240, Y: 80}},
		},
		{
			name:   "square",
			points: squareRequest().Points,
		},
		{
			name: "hip end trapezoid",
			points: []geometry.Point{
				{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 250, Y: 100}, {X: 50, Y: 100},
			},
		},
		{
			name: "hexagon",
			points: []geometry.Point{
				{X: 50, Y: 0}, {X: 150, Y: 0}, {X: 200, Y: 87},
				{X: 150, Y: 174}, {X: 50, Y: 174}, {X: 0, Y: 87},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New().Measure(model.MeasurementRequest{
				Points:       tt.points,
				Reference:    tenMeterReference(),
				AngleDegrees: 40,
			})
			require.NoError(t, err)
			assert.Empty(t, result.Edges.Valleys)
		})
	}
}

func TestAnalyzer_Measure_EdgeLengthsSumToPerimeter(t *testing.T) {
	requests := map[string]model.MeasurementRequest{
		"square":  squareRequest(),
		"l-shape": lShapeRequest(),
		"irregular": {
			Points: []geometry.Point{
				{X: 12, Y: 7}, {X: 180, Y: 22}, {X: 230, Y: 140},
				{X: 160, Y: 130}, {X: 95, Y: 210}, {X: 5, Y: 160},
			},
			Reference:    tenMeterReference(),
			AngleDegrees: 25,
		},
	}

	for name, req := range requests {
		t.Run(name, func(t *testing.T) {
			result, err := New().Measure(req)
			require.NoError(t, err)

			var sum float64
			for _, e := range result.Edges.All() {
				sum += e.RealLength
			}

			want := geometry.Polygon(req.Points).Perimeter() * result.Params.Scale
			assert.InDelta(t, want, sum, 1e-9, "classified lengths must add up to the scaled perimeter")
		})
	}
}

func TestAnalyzer_Measure_IndependentOfClickDirection(t *testing.T) {
	forward := lShapeRequest()

	backward := lShapeRequest()
	for i, j := 0, len(backward.Points)-1; i < j; i, j = i+1, j-1 {
		backward.Points[i], backward.Points[j] = backward.Points[j], backward.Points[i]
	}

	a, err := New().Measure(forward)
	require.NoError(t, err)
	b, err := New().Measure(backward)
	require.NoError(t, err)

	assert.Equal(t, len(a.Edges.Ridges), len(b.Edges.Ridges))
	assert.Equal(t, len(a.Edges.Eaves), len(b.Edges.Eaves))
	assert.Equal(t, len(a.Edges.Rakes), len(b.Edges.Rakes))
	assert.Equal(t, len(a.Edges.Valleys), len(b.Edges.Valleys))
	assert.InDelta(t, a.Areas.Projected, b.Areas.Projected, 1e-9)
	assert.InDelta(t, a.Areas.True, b.Areas.True, 1e-9)
}

func TestAnalyzer_Measure_SixtyDegreePitchDoublesArea(t *testing.T) {
	req := squareRequest()
	req.AngleDegrees = 60

	result, err := New().Measure(req)
	require.NoError(t, err)
	assert.InDelta(t, result.Areas.Projected*2, result.Areas.True, 1e-9)
}

func TestAnalyzer_Measure_Errors(t *testing.T) {
	tests := []struct {
		mutate  func(*model.MeasurementRequest)
		wantErr error
		name    string
	}{
		{
			name: "degenerate polygon",
			mutate: func(req *model.MeasurementRequest) {
				req.Points = req.Points[:2]
			},
			wantErr: common.ErrDegeneratePolygon,
		},
		{
			name: "coincident reference",
			mutate: func(req *model.MeasurementRequest) {
				req.Reference.B = req.Reference.A
			},
			wantErr: common.ErrInvalidReference,
		},
		{
			name: "non-positive reference length",
			mutate: func(req *model.MeasurementRequest) {
				req.Reference.RealLength = -2
			},
			wantErr: common.ErrInvalidReference,
		},
		{
			name: "vertical pitch",
			mutate: func(req *model.MeasurementRequest) {
				req.AngleDegrees = 90
			},
			wantErr: common.ErrInvalidAngle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := squareRequest()
			tt.mutate(&req)

			result, err := New().Measure(req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result, "no partial result on pipeline failure")
		})
	}
}

// rakeOnlyClassifier stands in for an alternative heuristic.
type rakeOnlyClassifier struct{}

func (rakeOnlyClassifier) ClassifyEdge(_ geometry.Polygon, _ int) model.EdgeKind {
	return model.KindRake
}

func TestAnalyzer_CustomClassifierKeepsValleys(t *testing.T) {
	result, err := NewWithClassifier(rakeOnlyClassifier{}).Measure(lShapeRequest())
	require.NoError(t, err)

	assert.Len(t, result.Edges.Valleys, 2, "valley detection must not depend on the classifier strategy")
	assert.Len(t, result.Edges.Rakes, 4)
	assert.Empty(t, result.Edges.Ridges)
	assert.Empty(t, result.Edges.Eaves)
}
