package roof

import (
	"testing"

	"github.com/Veraticus/gable/internal/geometry"
	"github.com/Veraticus/gable/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestOrientationClassifier_ClassifyEdge(t *testing.T) {
	classifier := OrientationClassifier{HorizontalThresholdDeg: DefaultHorizontalThreshold}

	// 200x100 rectangle: the top edge reads as the ridge line, the
	// bottom as the eave, verticals as rakes.
	rect := geometry.Polygon{
		{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 100}, {X: 0, Y: 100},
	}

	want := []model.EdgeKind{model.KindRidge, model.KindRake, model.KindEave, model.KindRake}
	for i, kind := range want {
		assert.Equal(t, kind, classifier.ClassifyEdge(rect, i), "edge %d", i)
	}
}

func TestOrientationClassifier_Threshold(t *testing.T) {
	// Parallelogram whose top and bottom edges rise at 25 degrees.
	pg := geometry.Polygon{
		{X: 0, Y: 0}, {X: 200, Y: 93.26}, {X: 200, Y: 193.26}, {X: 0, Y: 100},
	}

	strict := OrientationClassifier{HorizontalThresholdDeg: DefaultHorizontalThreshold}
	assert.Equal(t, model.KindRake, strict.ClassifyEdge(pg, 0))
	assert.Equal(t, model.KindRake, strict.ClassifyEdge(pg, 2))

	relaxed := OrientationClassifier{HorizontalThresholdDeg: 30}
	assert.Equal(t, model.KindRidge, relaxed.ClassifyEdge(pg, 0), "upper 25° edge counts as ridge at a 30° cutoff")
	assert.Equal(t, model.KindEave, relaxed.ClassifyEdge(pg, 2), "lower 25° edge counts as eave at a 30° cutoff")
}

func TestOrientationClassifier_SteepEdgesAreRakes(t *testing.T) {
	classifier := OrientationClassifier{HorizontalThresholdDeg: DefaultHorizontalThreshold}

	pg := geometry.Polygon{
		{X: 0, Y: 40}, {X: 50, Y: 0}, {X: 100, Y: 40}, {X: 100, Y: 120}, {X: 0, Y: 120},
	}

	// Both gable slopes rise at about 39 degrees.
	assert.Equal(t, model.KindRake, classifier.ClassifyEdge(pg, 0))
	assert.Equal(t, model.KindRake, classifier.ClassifyEdge(pg, 1))
	// The base is horizontal and sits below the centroid.
	assert.Equal(t, model.KindEave, classifier.ClassifyEdge(pg, 3))
}
