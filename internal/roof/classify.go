package roof

import (
	"math"

	"github.com/Veraticus/gable/internal/geometry"
	"github.com/Veraticus/gable/internal/model"
)

// DefaultHorizontalThreshold is the maximum deviation from horizontal,
// in degrees, for an edge to be treated as a ridge or eave candidate.
const DefaultHorizontalThreshold = 20.0

// OrientationClassifier is the default ridge/eave/rake heuristic:
// near-horizontal edges split into ridge or eave on the outline's
// vertical middle, everything steeper is a rake. Ridges sit above the
// centroid in image space, eaves at or below it. Real roofs can violate
// the "ridge is uppermost" reading for unusual outlines, which is why
// the threshold stays tunable and the whole heuristic sits behind the
// Classifier interface.
type OrientationClassifier struct {
	// HorizontalThresholdDeg is the near-horizontal cutoff in degrees.
	HorizontalThresholdDeg float64
}

// ClassifyEdge implements Classifier.
func (c OrientationClassifier) ClassifyEdge(pg geometry.Polygon, i int) model.EdgeKind {
	start := pg[i]
	end := pg[(i+1)%len(pg)]

	theta := math.Atan2(math.Abs(end.Y-start.Y), math.Abs(end.X-start.X)) * 180 / math.Pi
	if theta >= c.HorizontalThresholdDeg {
		return model.KindRake
	}

	if geometry.Midpoint(start, end).Y < pg.Centroid().Y {
		return model.KindRidge
	}
	return model.KindEave
}
