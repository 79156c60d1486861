package geoportal

import (
	"fmt"
	"math"

	"github.com/Veraticus/gable/internal/common"
)

// GeoportalWMTSURL is the national orthophoto WMTS endpoint.
const GeoportalWMTSURL = "https://mapy.geoportal.gov.pl/wss/service/PZGIK/ORTO/WMTS/StandardResolution"

const (
	// TileSize is the pixel edge of one WMTS tile.
	TileSize = 256

	// Origin of the EPSG:2180 tile matrix set, from the service
	// capabilities document. Columns count east from originX, rows
	// count south from originY.
	originX = -5713134.0
	originY = 8693134.0
)

// MinZoom and MaxZoom bound the tile matrix levels the service offers
// for the orthophoto layer.
const (
	MinZoom = 10
	MaxZoom = 18
)

// resolutions maps zoom level to ground resolution in meters per pixel.
var resolutions = map[int]float64{
	10: 1587.50317,
	11: 793.75158,
	12: 529.16772,
	13: 264.58386,
	14: 132.29193,
	15: 66.14596,
	16: 26.45839,
	17: 13.22919,
	18: 6.61460,
}

// Resolution returns the meters-per-pixel resolution at a zoom level.
func Resolution(zoom int) (float64, error) {
	res, ok := resolutions[zoom]
	if !ok {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", common.ErrZoomRange, zoom, MinZoom, MaxZoom)
	}
	return res, nil
}

// TileAddress locates one tile in the matrix along with the position of
// a projected point inside that tile.
type TileAddress struct {
	Col    int
	Row    int
	PixelX int
	PixelY int
}

// LocateTile converts EPSG:2180 coordinates to the tile containing
// them at the given zoom level.
func LocateTile(x, y float64, zoom int) (TileAddress, error) {
	res, err := Resolution(zoom)
	if err != nil {
		return TileAddress{}, err
	}
	px, py := globalPixel(x, y, res)
	ipx, ipy := int(math.Floor(px)), int(math.Floor(py))
	col, row := floorDiv(ipx, TileSize), floorDiv(ipy, TileSize)
	return TileAddress{
		Col:    col,
		Row:    row,
		PixelX: ipx - col*TileSize,
		PixelY: ipy - row*TileSize,
	}, nil
}

// globalPixel returns the point's position in the zoom level's
// continuous pixel grid. Pixel y grows southward.
func globalPixel(x, y, res float64) (px, py float64) {
	return (x - originX) / res, (originY - y) / res
}

// floorDiv divides rounding toward negative infinity, so pixel offsets
// west or north of the origin still land in the right tile.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
