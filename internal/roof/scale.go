package roof

import (
	"github.com/Veraticus/gable/internal/common"
	"github.com/Veraticus/gable/internal/geometry"
	"github.com/Veraticus/gable/internal/model"
)

// ResolveScale derives the meters-per-pixel scale from a reference
// segment of known real length.
func ResolveScale(ref model.ReferenceSegment) (float64, error) {
	if ref.RealLength <= 0 {
		return 0, common.NewUserError("reference length must be greater than zero", common.ErrInvalidReference)
	}

	pixels := ref.A.Distance(ref.B)
	if pixels < geometry.Eps {
		return 0, common.NewUserError("reference points must not coincide", common.ErrInvalidReference)
	}

	return ref.RealLength / pixels, nil
}
