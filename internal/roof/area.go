package roof

import (
	"math"

	"github.com/Veraticus/gable/internal/common"
	"github.com/Veraticus/gable/internal/geometry"
	"github.com/Veraticus/gable/internal/model"
)

// Areas computes the projected (top-down) area and the pitch-corrected
// true area of the outline in square meters. The angle is validated
// here even though callers should already reject values outside
// [0, 90): a value that rounds to 90 would otherwise divide the
// projected area by a cosine of zero.
func Areas(pg geometry.Polygon, scale, angleDeg float64) (model.AreaResult, error) {
	if angleDeg < 0 || angleDeg >= 90 {
		return model.AreaResult{}, common.NewUserError("angle must be between 0° and 90°, exclusive", common.ErrInvalidAngle)
	}

	cos := math.Cos(angleDeg * math.Pi / 180)
	if cos < geometry.Eps {
		return model.AreaResult{}, common.NewUserError("angle must be between 0° and 90°, exclusive", common.ErrInvalidAngle)
	}

	projected := pg.Area() * scale * scale
	return model.AreaResult{
		Projected: projected,
		True:      projected / cos,
	}, nil
}
