package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// PatientSearchHandler backs the route editor's add-patient picker:
// bounded, case-insensitive lookup over routable patients, excluding
// ids already on the working route.
type PatientSearchHandler struct {
	Patients ports.PatientDirectory
	Logger   *zap.Logger
}

func (h *PatientSearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	exclude := map[uuid.UUID]bool{}
	if raw := r.URL.Query().Get("exclude"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				writeError(w, r, h.Logger, http.StatusBadRequest, "exclude must be a comma-separated UUID list")
				return
			}
			exclude[id] = true
		}
	}

	patients, err := h.Patients.ListPatients(r.Context())
	if err != nil {
		h.Logger.Error("list patients failed", zap.Error(err))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}

	matches := services.SearchPatients(term, patients, exclude, services.DefaultSearchLimit)

	res := dto.PatientSearchResponse{
		Patients: make([]dto.PatientSearchResult, 0, len(matches)),
	}
	for _, p := range matches {
		res.Patients = append(res.Patients, dto.PatientSearchResult{
			PatientID:   p.ID.String(),
			PatientName: p.Name,
		})
	}

	writeJSON(w, r, h.Logger, http.StatusOK, res)
}
