package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/geo"
)

// CoverageHandler answers the interactive intake question: does this
// residence fall inside the serviceable area, and how far is it from
// the area's center.
type CoverageHandler struct {
	Polygon []domain.Coordinates
	Logger  *zap.Logger
}

func (h *CoverageHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req dto.CoverageCheckRequest
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, h.Logger, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	result := geo.CheckCoverage(domain.Coordinates{Lat: req.Lat, Lon: req.Lon}, h.Polygon)

	writeJSON(w, r, h.Logger, http.StatusOK, dto.CoverageCheckResponse{
		Inside:             result.Inside,
		DistanceToCenterKm: result.DistanceToCenterKm,
	})
}
