package roof

import (
	"github.com/Veraticus/gable/internal/geometry"
	"github.com/Veraticus/gable/internal/model"
)

// Classifier decides among ridge, eave, and rake for a single polygon
// edge. Valley edges are detected upstream from vertex concavity and
// never reach the classifier, so swapping in an alternative heuristic
// cannot break valley detection.
type Classifier interface {
	// ClassifyEdge returns the kind of the edge running from vertex i to
	// vertex i+1 (wrapping around to the first vertex).
	ClassifyEdge(pg geometry.Polygon, i int) model.EdgeKind
}
