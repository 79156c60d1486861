package geoportal

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// Proj4 definitions for the two reference systems in play. EPSG:2180
// (PUWG 1992) is the planar system the national tile matrix is defined
// in; EPSG:4326 is plain GPS longitude and latitude.
const (
	proj4WGS84    = "+proj=longlat +datum=WGS84 +no_defs"
	proj4EPSG2180 = "+proj=tmerc +lat_0=0 +lon_0=19 +k=0.9993 +x_0=500000 +y_0=-5300000 +ellps=GRS80 +towgs84=0,0,0 +units=m +no_defs"
)

// Projector converts between WGS84 coordinates and the EPSG:2180 grid.
// Transformers are built once and reused; they are safe for concurrent
// use.
type Projector struct {
	forward proj.Transformer
	inverse proj.Transformer
}

// NewProjector parses the spatial reference definitions and prepares
// the transformers for both directions.
func NewProjector() (*Projector, error) {
	wgs84, err := proj.Parse(proj4WGS84)
	if err != nil {
		return nil, fmt.Errorf("failed to parse WGS84 definition: %w", err)
	}
	puwg92, err := proj.Parse(proj4EPSG2180)
	if err != nil {
		return nil, fmt.Errorf("failed to parse EPSG:2180 definition: %w", err)
	}

	forward, err := wgs84.NewTransform(puwg92)
	if err != nil {
		return nil, fmt.Errorf("failed to build WGS84 to EPSG:2180 transform: %w", err)
	}
	inverse, err := puwg92.NewTransform(wgs84)
	if err != nil {
		return nil, fmt.Errorf("failed to build EPSG:2180 to WGS84 transform: %w", err)
	}

	return &Projector{forward: forward, inverse: inverse}, nil
}

// ToEPSG2180 projects GPS coordinates onto the planar grid, returning
// easting and northing in meters.
func (p *Projector) ToEPSG2180(lon, lat float64) (x, y float64, err error) {
	g, err := geom.Point{X: lon, Y: lat}.Transform(p.forward)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to project to EPSG:2180: %w", err)
	}
	pt := g.(geom.Point)
	return pt.X, pt.Y, nil
}

// ToWGS84 projects planar coordinates back to GPS longitude and
// latitude.
func (p *Projector) ToWGS84(x, y float64) (lon, lat float64, err error) {
	g, err := geom.Point{X: x, Y: y}.Transform(p.inverse)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to project to WGS84: %w", err)
	}
	pt := g.(geom.Point)
	return pt.X, pt.Y, nil
}
