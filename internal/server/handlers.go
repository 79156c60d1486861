package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Veraticus/gable/internal/common"
	"github.com/Veraticus/gable/internal/geoportal"
)

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mreq, err := req.MeasurementRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, common.UserMessage(err))
		return
	}

	result, err := s.analyzer.Measure(mreq)
	if err != nil {
		if common.IsValidation(err) {
			writeError(w, http.StatusBadRequest, common.UserMessage(err))
			return
		}
		common.LogError(err, "Calculation failed", common.Fields{"path": r.URL.Path})
		writeError(w, http.StatusInternalServerError, common.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, calculateResponse{
		Success: true,
		Results: NewMeasurementPayload(result),
	})
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	var req getMapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Coordinates) == "" {
		writeError(w, http.StatusBadRequest, "coordinates are required")
		return
	}

	var (
		m           *geoportal.MapImage
		notice      string
		noticeLevel string
	)
	if req.Demo || isDemoKeyword(req.Coordinates) {
		m = s.maps.DemoMap(req.Width, req.Height)
		notice = "demo map loaded (DEMO mode)"
		noticeLevel = "info"
	} else {
		fetched, err := s.maps.FetchMap(r.Context(), geoportal.MapRequest{
			Location:     req.Coordinates,
			Width:        req.Width,
			Height:       req.Height,
			Source:       geoportal.Source(req.MapSource),
			GoogleAPIKey: req.GoogleAPIKey,
		})
		if err != nil {
			// A broken tile service or bad coordinates should never
			// strand the user on a blank screen.
			slog.Warn("Map fetch failed, serving demo image", "error", err)
			m = s.maps.DemoMap(req.Width, req.Height)
			notice = common.UserMessage(err)
			noticeLevel = "warning"
		} else {
			m = fetched
		}
	}

	encoded, err := encodePNG(m)
	if err != nil {
		slog.Error("Failed to encode map image", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to encode map image")
		return
	}

	writeJSON(w, http.StatusOK, getMapResponse{
		Success:     true,
		Image:       encoded,
		Lon:         m.Lon,
		Lat:         m.Lat,
		Width:       m.Image.Bounds().Dx(),
		Height:      m.Image.Bounds().Dy(),
		Demo:        m.Demo,
		Notice:      notice,
		NoticeLevel: noticeLevel,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "roof measurement service is running",
	})
}

func isDemoKeyword(coords string) bool {
	switch strings.ToLower(strings.TrimSpace(coords)) {
	case "demo", "test":
		return true
	}
	return false
}

func encodePNG(m *geoportal.MapImage) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, m.Image); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}
