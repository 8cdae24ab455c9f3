package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/obs"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// ScheduleHandler serves the day agenda: every patient with an upcoming
// visit on or after the requested date. Cache is optional; when present,
// computed agendas are stored per day and served on subsequent hits.
type ScheduleHandler struct {
	Patients ports.PatientDirectory
	Cache    ports.ScheduleCache
	CacheTTL time.Duration
	Programs map[string]domain.ProgramRule
	Logger   *zap.Logger
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	ctx := r.Context()

	if h.Cache != nil {
		payload, hit, err := h.Cache.GetDay(ctx, date)
		if err != nil {
			// A broken cache degrades to recomputation.
			h.Logger.Warn("schedule cache read failed", zap.Error(err))
		} else if hit {
			obs.SchedulesComputed.WithLabelValues("cache").Inc()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(payload)
			return
		}
	}

	var opErr error
	done := obs.Time(ctx, h.Logger, "schedule.compute")
	patients, opErr := h.Patients.ListPatients(ctx)
	done(&opErr)
	if opErr != nil {
		h.Logger.Error("list patients failed", zap.Error(opErr))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}

	visits := services.ComputeSchedule(date, patients, h.Programs)
	obs.SchedulesComputed.WithLabelValues("fresh").Inc()

	res := dto.ScheduleResponse{
		Date:   date.Format(dateLayout),
		Visits: make([]dto.ScheduleEntryResponse, 0, len(visits)),
	}
	for _, v := range visits {
		res.Visits = append(res.Visits, dto.ScheduleEntryResponse{
			PatientID:   v.Patient.ID.String(),
			PatientName: v.Patient.Name,
			VisitType:   string(v.Type),
			Priority:    string(v.Priority),
			DueDate:     v.DueDate.Format(dateLayout),
		})
	}

	if h.Cache != nil {
		if payload, err := json.Marshal(res); err == nil {
			if err := h.Cache.PutDay(ctx, date, payload, h.CacheTTL); err != nil {
				h.Logger.Warn("schedule cache write failed", zap.Error(err))
			}
		}
	}

	writeJSON(w, r, h.Logger, http.StatusOK, res)
}
