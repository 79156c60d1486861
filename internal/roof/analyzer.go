// Package roof implements the measurement pipeline that turns a
// digitized roof outline into classified, scaled dimensions and areas.
// The pipeline is pure and synchronous: validate, resolve scale,
// analyze concavity, classify edges, measure, compute areas, assemble.
// Any stage failure aborts the run and no partial result is returned.
package roof

import (
	"log/slog"

	"github.com/Veraticus/gable/internal/model"
)

// Analyzer orchestrates the measurement pipeline. It holds no mutable
// state, so a single instance may serve any number of concurrent
// requests.
type Analyzer struct {
	classifier Classifier
}

// Config holds configuration options for the analyzer.
type Config struct {
	HorizontalThresholdDeg float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		HorizontalThresholdDeg: DefaultHorizontalThreshold,
	}
}

// New creates an analyzer with the default classification heuristic.
func New() *Analyzer {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an analyzer with custom configuration.
func NewWithConfig(config Config) *Analyzer {
	return &Analyzer{
		classifier: OrientationClassifier{
			HorizontalThresholdDeg: config.HorizontalThresholdDeg,
		},
	}
}

// NewWithClassifier creates an analyzer with a custom ridge/eave/rake
// strategy. Valley detection is not part of the strategy and stays the
// same for every classifier.
func NewWithClassifier(classifier Classifier) *Analyzer {
	return &Analyzer{classifier: classifier}
}

// Measure runs the full pipeline on one request. All returned errors
// unwrap to one of the validation sentinels in the common package.
func (a *Analyzer) Measure(req model.MeasurementRequest) (*model.MeasurementResult, error) {
	pg, winding, err := ValidatePolygon(req.Points)
	if err != nil {
		return nil, err
	}

	scale, err := ResolveScale(req.Reference)
	if err != nil {
		return nil, err
	}

	slog.Debug("Polygon accepted",
		"vertices", len(pg),
		"winding", winding,
		"scale_m_per_px", scale)

	reflex := pg.ReflexVertices()
	kinds := make([]model.EdgeKind, len(pg))
	for i := range pg {
		// An edge touching a reflex corner is a drainage valley no
		// matter its orientation.
		if reflex[i] || reflex[(i+1)%len(pg)] {
			kinds[i] = model.KindValley
			continue
		}
		kinds[i] = a.classifier.ClassifyEdge(pg, i)
	}

	buckets := MeasureEdges(pg, kinds, scale)

	areas, err := Areas(pg, scale, req.AngleDegrees)
	if err != nil {
		return nil, err
	}

	return &model.MeasurementResult{
		Edges: buckets,
		Areas: areas,
		Params: model.Params{
			AngleDegrees: req.AngleDegrees,
			Scale:        scale,
			VertexCount:  len(pg),
		},
	}, nil
}
