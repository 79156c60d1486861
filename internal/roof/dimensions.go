package roof

import (
	"github.com/Veraticus/gable/internal/geometry"
	"github.com/Veraticus/gable/internal/model"
)

// MeasureEdges builds the classified, scaled edge set. kinds[i] labels
// the edge from vertex i to vertex i+1; real lengths multiply the pixel
// length by the resolved scale and keep full floating precision.
func MeasureEdges(pg geometry.Polygon, kinds []model.EdgeKind, scale float64) model.Buckets {
	var buckets model.Buckets
	for i, start := range pg {
		end := pg[(i+1)%len(pg)]
		pixels := start.Distance(end)
		buckets.Add(model.Edge{
			Kind:        kinds[i],
			Start:       start,
			End:         end,
			Midpoint:    geometry.Midpoint(start, end),
			PixelLength: pixels,
			RealLength:  pixels * scale,
		})
	}
	return buckets
}
