package server

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/Veraticus/gable/internal/common"
	"github.com/Veraticus/gable/internal/geometry"
	"github.com/Veraticus/gable/internal/model"
)

// WirePoint serializes a point as the [x, y] pair the HTTP API speaks.
type WirePoint geometry.Point

// MarshalJSON renders the point as a two element array.
func (p WirePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON reads a two element array, rejecting anything else.
func (p *WirePoint) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("point must be a [x, y] array: %w", err)
	}
	if len(arr) != 2 {
		return fmt.Errorf("point must have exactly 2 coordinates, got %d", len(arr))
	}
	p.X, p.Y = arr[0], arr[1]
	return nil
}

// CalculateRequest is the payload the calculate endpoint accepts. The
// measure command reads the same document from disk.
type CalculateRequest struct {
	RoofPoints []WirePoint `json:"punkty_dachu"`
	PointA     *WirePoint  `json:"punkt_a"`
	PointB     *WirePoint  `json:"punkt_b"`
	RealLength float64     `json:"rzeczywista_dlugosc"`
	Angle      float64     `json:"kat_nachylenia"`
}

// MeasurementRequest converts the wire payload to engine input.
func (r CalculateRequest) MeasurementRequest() (model.MeasurementRequest, error) {
	if r.PointA == nil || r.PointB == nil {
		return model.MeasurementRequest{}, common.NewUserError(
			"reference points A and B are required",
			common.ErrInvalidReference,
		)
	}

	points := make([]geometry.Point, len(r.RoofPoints))
	for i, p := range r.RoofPoints {
		points[i] = geometry.Point(p)
	}
	return model.MeasurementRequest{
		Points: points,
		Reference: model.ReferenceSegment{
			A:          geometry.Point(*r.PointA),
			B:          geometry.Point(*r.PointB),
			RealLength: r.RealLength,
		},
		AngleDegrees: r.Angle,
	}, nil
}

type calculateResponse struct {
	Success bool                `json:"success"`
	Results *MeasurementPayload `json:"wyniki,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type getMapRequest struct {
	Coordinates  string `json:"wspolrzedne"`
	Width        int    `json:"szerokosc"`
	Height       int    `json:"wysokosc"`
	Demo         bool   `json:"demo"`
	MapSource    string `json:"map_source"`
	GoogleAPIKey string `json:"google_api_key"`
}

type getMapResponse struct {
	Success     bool    `json:"success"`
	Image       string  `json:"image"`
	Lon         float64 `json:"lon"`
	Lat         float64 `json:"lat"`
	Width       int     `json:"szerokosc"`
	Height      int     `json:"wysokosc"`
	Demo        bool    `json:"demo"`
	Notice      string  `json:"notice,omitempty"`
	NoticeLevel string  `json:"notice_level,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// EdgePayload is one measured roof edge on the wire.
type EdgePayload struct {
	ID       int          `json:"id"`
	Points   [2]WirePoint `json:"punkty"`
	Midpoint WirePoint    `json:"srodek"`
	Length   float64      `json:"dlugosc"`
}

// DimensionsPayload groups measured edges by their roof role.
type DimensionsPayload struct {
	Ridges  []EdgePayload `json:"kalenice"`
	Eaves   []EdgePayload `json:"okapy"`
	Rakes   []EdgePayload `json:"skosy"`
	Valleys []EdgePayload `json:"kosze"`
}

// AreasPayload carries both roof areas in square meters.
type AreasPayload struct {
	Projected float64 `json:"pole_rzutu"`
	True      float64 `json:"pole_rzeczywiste"`
}

// ParamsPayload echoes the calculation inputs.
type ParamsPayload struct {
	Angle      float64 `json:"kat_nachylenia"`
	Scale      float64 `json:"skala"`
	PointCount int     `json:"liczba_punktow"`
}

// MeasurementPayload is the full result document for one calculation.
type MeasurementPayload struct {
	Dimensions DimensionsPayload `json:"wymiary"`
	Areas      AreasPayload      `json:"powierzchnie"`
	Parameters ParamsPayload     `json:"parametry"`
}

// NewMeasurementPayload converts an engine result to its wire shape.
// Lengths and areas are rounded to centimeter precision here, at the
// serialization boundary; the engine itself keeps full precision.
func NewMeasurementPayload(result *model.MeasurementResult) *MeasurementPayload {
	dims := DimensionsPayload{
		Ridges:  make([]EdgePayload, 0, len(result.Edges.Ridges)),
		Eaves:   make([]EdgePayload, 0, len(result.Edges.Eaves)),
		Rakes:   make([]EdgePayload, 0, len(result.Edges.Rakes)),
		Valleys: make([]EdgePayload, 0, len(result.Edges.Valleys)),
	}
	for _, e := range result.Edges.Ridges {
		dims.Ridges = append(dims.Ridges, newEdgePayload(e))
	}
	for _, e := range result.Edges.Eaves {
		dims.Eaves = append(dims.Eaves, newEdgePayload(e))
	}
	for _, e := range result.Edges.Rakes {
		dims.Rakes = append(dims.Rakes, newEdgePayload(e))
	}
	for _, e := range result.Edges.Valleys {
		dims.Valleys = append(dims.Valleys, newEdgePayload(e))
	}

	return &MeasurementPayload{
		Dimensions: dims,
		Areas: AreasPayload{
			Projected: round2(result.Areas.Projected),
			True:      round2(result.Areas.True),
		},
		Parameters: ParamsPayload{
			Angle:      result.Params.AngleDegrees,
			Scale:      round4(result.Params.Scale),
			PointCount: result.Params.VertexCount,
		},
	}
}

func newEdgePayload(e model.Edge) EdgePayload {
	return EdgePayload{
		ID:       e.ID,
		Points:   [2]WirePoint{WirePoint(e.Start), WirePoint(e.End)},
		Midpoint: WirePoint(e.Midpoint),
		Length:   round2(e.RealLength),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
