package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/obs"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// RouteHandler exposes the calculated route for one (staff, date) pair
// and the commit operation that persists a planner-edited route.
type RouteHandler struct {
	Patients ports.PatientDirectory
	Staff    ports.StaffDirectory
	Notes    ports.NoteProvider
	Store    ports.AssignmentStore
	Cache    ports.ScheduleCache
	CacheTTL time.Duration
	Programs map[string]domain.ProgramRule
	Table    services.CapabilityTable
	Logger   *zap.Logger
}

// Get computes and returns the calculated route plus workload estimate.
func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	staff, date, ok := h.resolve(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	patients, err := h.Patients.ListPatients(ctx)
	if err != nil {
		h.Logger.Error("list patients failed", zap.Error(err))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}

	route := services.BuildRoute(staff, date, patients, h.Programs, h.Table)
	obs.RoutesBuilt.Inc()

	workload := services.EstimateLoad(staff, len(route))

	res := dto.RouteResponse{
		StaffID:   staff.ID.String(),
		StaffName: staff.Name,
		Date:      date.Format(dateLayout),
		Stops:     make([]dto.RouteStopResponse, 0, len(route)),
		Workload: dto.WorkloadResponse{
			AvailableMinutes: workload.AvailableMinutes,
			EstimatedMinutes: workload.EstimatedMinutes,
			LoadPercent:      workload.LoadPercent,
		},
		OverCapacity: services.OverCapacity(len(route), staff),
	}

	for _, p := range route {
		stop := dto.RouteStopResponse{
			PatientID:        p.ID.String(),
			PatientName:      p.Name,
			Lat:              p.Coords.Lat,
			Lon:              p.Coords.Lon,
			AntibioticActive: p.AntibioticActiveOn(date),
		}
		if h.Notes != nil {
			// Note summaries are presentation only; a failed lookup
			// leaves the stop without one rather than failing the route.
			note, err := h.Notes.LastNoteSummary(ctx, p.ID)
			if err != nil {
				h.Logger.Warn("last note lookup failed", zap.String("patient_id", p.ID.String()), zap.Error(err))
			} else {
				stop.LastNote = note
			}
		}
		res.Stops = append(res.Stops, stop)
	}

	writeJSON(w, r, h.Logger, http.StatusOK, res)
}

// Commit validates a planner-edited route against the engine rules and
// persists it. Rejections leave no partial state; the cached agenda for
// the day is invalidated on success.
func (h *RouteHandler) Commit(w http.ResponseWriter, r *http.Request) {
	staff, _, ok := h.resolve(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req dto.CommitRouteRequest
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

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	patients, err := h.Patients.ListPatients(ctx)
	if err != nil {
		h.Logger.Error("list patients failed", zap.Error(err))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}

	byID := make(map[uuid.UUID]*domain.Patient, len(patients))
	for _, p := range patients {
		byID[p.ID] = p
	}

	ordered := make([]*domain.Patient, 0, len(req.PatientIDs))
	for _, raw := range req.PatientIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, r, h.Logger, http.StatusBadRequest, "patient_ids must be UUIDs")
			return
		}
		p, found := byID[id]
		if !found {
			writeError(w, r, h.Logger, http.StatusBadRequest, "unknown patient "+raw)
			return
		}
		ordered = append(ordered, p)
	}

	calculated := services.BuildRoute(staff, date, patients, h.Programs, h.Table)
	editor := services.NewEditor(staff, date, calculated, req.CanEdit)

	if err := editor.SetOrder(ordered); err != nil {
		if ve, isValidation := domain.AsValidation(err); isValidation {
			obs.RouteCommits.WithLabelValues("rejected").Inc()
			writeRejection(w, r, h.Logger, ve)
			return
		}
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}

	var commitErr error
	done := obs.Time(ctx, h.Logger, "route.commit")
	commitErr = editor.Commit(ctx, h.Store)
	done(&commitErr)
	if commitErr != nil {
		if ve, isValidation := domain.AsValidation(commitErr); isValidation {
			obs.RouteCommits.WithLabelValues("rejected").Inc()
			writeRejection(w, r, h.Logger, ve)
			return
		}
		obs.RouteCommits.WithLabelValues("error").Inc()
		h.Logger.Error("commit failed", zap.Error(commitErr))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return
	}

	obs.RouteCommits.WithLabelValues("ok").Inc()

	if h.Cache != nil {
		if err := h.Cache.InvalidateDay(ctx, date); err != nil {
			h.Logger.Warn("schedule cache invalidation failed", zap.Error(err))
		}
	}

	writeJSON(w, r, h.Logger, http.StatusOK, dto.CommitRouteResponse{Committed: true})
}

// resolve reads the staff id path param and loads the staff member.
func (h *RouteHandler) resolve(w http.ResponseWriter, r *http.Request) (*domain.Staff, time.Time, bool) {
	staffID, err := uuid.Parse(chi.URLParam(r, "staffID"))
	if err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "staff id must be a UUID")
		return nil, time.Time{}, false
	}

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return nil, time.Time{}, false
	}

	members, err := h.Staff.ListStaff(r.Context())
	if err != nil {
		h.Logger.Error("list staff failed", zap.Error(err))
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal server error")
		return nil, time.Time{}, false
	}

	for _, s := range members {
		if s.ID == staffID {
			return s, date, true
		}
	}

	writeError(w, r, h.Logger, http.StatusNotFound, "staff member not found")
	return nil, time.Time{}, false
}
