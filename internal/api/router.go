package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"visit-route-service/internal/api/handlers"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// Dependencies collects everything the HTTP surface needs. Handlers
// stay unaware of concrete adapters.
type Dependencies struct {
	Patients ports.PatientDirectory
	Staff    ports.StaffDirectory
	Notes    ports.NoteProvider
	Store    ports.AssignmentStore
	Cache    ports.ScheduleCache
	CacheTTL time.Duration
	Polygon  []domain.Coordinates
	Programs map[string]domain.ProgramRule
	Table    services.CapabilityTable
	Logger   *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(deps.Logger))

	scheduleHandler := &handlers.ScheduleHandler{
		Patients: deps.Patients,
		Cache:    deps.Cache,
		CacheTTL: deps.CacheTTL,
		Programs: deps.Programs,
		Logger:   deps.Logger,
	}
	routeHandler := &handlers.RouteHandler{
		Patients: deps.Patients,
		Staff:    deps.Staff,
		Notes:    deps.Notes,
		Store:    deps.Store,
		Cache:    deps.Cache,
		CacheTTL: deps.CacheTTL,
		Programs: deps.Programs,
		Table:    deps.Table,
		Logger:   deps.Logger,
	}
	coverageHandler := &handlers.CoverageHandler{
		Polygon: deps.Polygon,
		Logger:  deps.Logger,
	}
	searchHandler := &handlers.PatientSearchHandler{
		Patients: deps.Patients,
		Logger:   deps.Logger,
	}

	r.Get("/health", handlers.Health(deps.Logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/schedule", scheduleHandler.Get)
	r.Get("/routes/{staffID}", routeHandler.Get)
	r.Post("/routes/{staffID}/commit", routeHandler.Commit)
	r.Post("/coverage/check", coverageHandler.Check)
	r.Get("/patients/search", searchHandler.Search)

	return r
}
