package roof

import (
	"github.com/Veraticus/gable/internal/common"
	"github.com/Veraticus/gable/internal/geometry"
)

// ValidatePolygon cleans a digitized outline and rejects degenerate
// input. It returns the deduplicated ring together with its winding
// sign; every later orientation test is relative to that sign.
func ValidatePolygon(points []geometry.Point) (geometry.Polygon, int, error) {
	pg := geometry.Dedupe(points)
	if len(pg) < 3 {
		return nil, 0, common.NewUserError("at least 3 distinct roof points required", common.ErrDegeneratePolygon)
	}
	if pg.Area() < geometry.Eps {
		return nil, 0, common.NewUserError("roof outline encloses no area", common.ErrDegeneratePolygon)
	}
	if pg.SelfIntersects() {
		return nil, 0, common.NewUserError("roof outline must not cross itself", common.ErrDegeneratePolygon)
	}
	return pg, pg.Winding(), nil
}
