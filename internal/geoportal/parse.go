package geoportal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/gable/internal/common"
)

// ParseCoordinates reads a "lat,lon" pair out of free text. Comma and
// whitespace separators are both accepted, latitude comes first.
func ParseCoordinates(text string) (lat, lon float64, err error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", " ")
	parts := strings.Fields(cleaned)
	if len(parts) != 2 {
		return 0, 0, common.NewUserError(
			"coordinates must be two numbers, latitude first",
			fmt.Errorf("%w: expected \"lat,lon\", got %q", common.ErrBadCoordinates, text),
		)
	}

	lat, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, common.NewUserError(
			"latitude is not a number",
			fmt.Errorf("%w: bad latitude %q", common.ErrBadCoordinates, parts[0]),
		)
	}
	lon, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, common.NewUserError(
			"longitude is not a number",
			fmt.Errorf("%w: bad longitude %q", common.ErrBadCoordinates, parts[1]),
		)
	}

	if lat < -90 || lat > 90 {
		return 0, 0, common.NewUserError(
			"latitude must be between -90 and 90",
			fmt.Errorf("%w: latitude %v out of range", common.ErrBadCoordinates, lat),
		)
	}
	if lon < -180 || lon > 180 {
		return 0, 0, common.NewUserError(
			"longitude must be between -180 and 180",
			fmt.Errorf("%w: longitude %v out of range", common.ErrBadCoordinates, lon),
		)
	}
	return lat, lon, nil
}
