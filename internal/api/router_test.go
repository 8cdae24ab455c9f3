package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/services"
)

type fakePatientDir struct{ patients []*domain.Patient }

func (f *fakePatientDir) ListPatients(context.Context) ([]*domain.Patient, error) {
	return f.patients, nil
}

type fakeStaffDir struct{ staff []*domain.Staff }

func (f *fakeStaffDir) ListStaff(context.Context) ([]*domain.Staff, error) {
	return f.staff, nil
}

type fakeNotes struct{ notes map[uuid.UUID]string }

func (f *fakeNotes) LastNoteSummary(_ context.Context, id uuid.UUID) (string, error) {
	return f.notes[id], nil
}

type fakeStore struct {
	calls   int
	lastIDs []uuid.UUID
}

func (f *fakeStore) SaveAssignment(_ context.Context, _ uuid.UUID, _ time.Time, ids []uuid.UUID) error {
	f.calls++
	f.lastIDs = ids
	return nil
}

func strPtr(v string) *string { return &v }

var testPolygon = []domain.Coordinates{
	{Lat: 40.52, Lon: -3.83},
	{Lat: 40.53, Lon: -3.58},
	{Lat: 40.31, Lon: -3.56},
	{Lat: 40.31, Lon: -3.85},
}

func testFixture() (*fakePatientDir, *fakeStaffDir, *fakeStore, Dependencies) {
	admitted := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	birth := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)

	north := &domain.Patient{
		ID:               uuid.MustParse("5d2f37df-8a4b-4c17-9c2c-4f8f6cc6a001"),
		Name:             "North Patient",
		Coords:           &domain.Coordinates{Lat: 40.50, Lon: -3.70},
		Program:          "post-hospitalization",
		RequiredServices: map[string]bool{services.ServiceNursing: true},
		BirthDate:        &birth,
		AdmittedAt:       admitted,
		Status:           domain.StatusAccepted,
	}
	south := &domain.Patient{
		ID:               uuid.MustParse("5d2f37df-8a4b-4c17-9c2c-4f8f6cc6a002"),
		Name:             "South Patient",
		Coords:           &domain.Coordinates{Lat: 40.33, Lon: -3.70},
		Program:          "post-hospitalization",
		RequiredServices: map[string]bool{services.ServiceNursing: true},
		BirthDate:        &birth,
		AdmittedAt:       admitted,
		Status:           domain.StatusAccepted,
	}

	nurse := &domain.Staff{
		ID:          uuid.MustParse("a7c11b20-30f2-4d4a-8d6e-1be2a42cd101"),
		Name:        "Irene",
		Role:        "Nursing",
		ShiftStart:  strPtr("07:00"),
		ShiftEnd:    strPtr("13:00"),
		MaxCapacity: 2,
	}

	patients := &fakePatientDir{patients: []*domain.Patient{north, south}}
	staff := &fakeStaffDir{staff: []*domain.Staff{nurse}}
	store := &fakeStore{}

	deps := Dependencies{
		Patients: patients,
		Staff:    staff,
		Notes:    &fakeNotes{notes: map[uuid.UUID]string{north.ID: "wound improving"}},
		Store:    store,
		Polygon:  testPolygon,
		Programs: domain.DefaultPrograms,
		Table:    services.DefaultCapabilityTable(),
		Logger:   zap.NewNop(),
	}
	return patients, staff, store, deps
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	_, _, _, deps := testFixture()
	rec := doJSON(t, NewRouter(deps), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestScheduleEndpoint(t *testing.T) {
	_, _, _, deps := testFixture()
	rec := doJSON(t, NewRouter(deps), http.MethodGet, "/schedule?date=2026-05-04", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "2026-05-04", res.Date)
	require.Len(t, res.Visits, 2)
	assert.Equal(t, string(domain.VisitRoutine), res.Visits[0].VisitType)
	assert.Equal(t, "2026-05-04", res.Visits[0].DueDate)
}

func TestRouteEndpointOrderingAndWorkload(t *testing.T) {
	_, _, _, deps := testFixture()
	rec := doJSON(t, NewRouter(deps), http.MethodGet,
		"/routes/a7c11b20-30f2-4d4a-8d6e-1be2a42cd101?date=2026-05-04", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Stops, 2)
	assert.Equal(t, "North Patient", res.Stops[0].PatientName)
	assert.Equal(t, "wound improving", res.Stops[0].LastNote)
	assert.Equal(t, 360, res.Workload.AvailableMinutes)
	assert.Equal(t, 120, res.Workload.EstimatedMinutes)
	assert.False(t, res.OverCapacity)
}

func TestRouteEndpointUnknownStaff(t *testing.T) {
	_, _, _, deps := testFixture()
	rec := doJSON(t, NewRouter(deps), http.MethodGet,
		"/routes/"+uuid.NewString()+"?date=2026-05-04", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommitEndpointReorder(t *testing.T) {
	_, _, store, deps := testFixture()

	body := dto.CommitRouteRequest{
		Date: "2026-05-04",
		PatientIDs: []string{
			"5d2f37df-8a4b-4c17-9c2c-4f8f6cc6a002",
			"5d2f37df-8a4b-4c17-9c2c-4f8f6cc6a001",
		},
		CanEdit: true,
	}
	rec := doJSON(t, NewRouter(deps), http.MethodPost,
		"/routes/a7c11b20-30f2-4d4a-8d6e-1be2a42cd101/commit", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Equal(t, 1, store.calls)
	assert.Equal(t, "5d2f37df-8a4b-4c17-9c2c-4f8f6cc6a002", store.lastIDs[0].String())
}

func TestCommitEndpointForbiddenWithoutEditCapability(t *testing.T) {
	_, _, store, deps := testFixture()

	body := dto.CommitRouteRequest{
		Date: "2026-05-04",
		PatientIDs: []string{
			"5d2f37df-8a4b-4c17-9c2c-4f8f6cc6a002",
			"5d2f37df-8a4b-4c17-9c2c-4f8f6cc6a001",
		},
		CanEdit: false,
	}
	rec := doJSON(t, NewRouter(deps), http.MethodPost,
		"/routes/a7c11b20-30f2-4d4a-8d6e-1be2a42cd101/commit", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, store.calls)
}

func TestCommitEndpointCalculatedOrderNeedsNoCapability(t *testing.T) {
	_, _, store, deps := testFixture()

	body := dto.CommitRouteRequest{
		Date: "2026-05-04",
		PatientIDs: []string{
			"5d2f37df-8a4b-4c17-9c2c-4f8f6cc6a001",
			"5d2f37df-8a4b-4c17-9c2c-4f8f6cc6a002",
		},
		CanEdit: false,
	}
	rec := doJSON(t, NewRouter(deps), http.MethodPost,
		"/routes/a7c11b20-30f2-4d4a-8d6e-1be2a42cd101/commit", body)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, store.calls)
}

func TestCommitEndpointCapacityRejected(t *testing.T) {
	patients, _, store, deps := testFixture()

	// A third routable patient pushes past MaxCapacity=2.
	extra := &domain.Patient{
		ID:         uuid.New(),
		Name:       "Extra",
		Coords:     &domain.Coordinates{Lat: 40.40, Lon: -3.70},
		AdmittedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Status:     domain.StatusAccepted,
	}
	patients.patients = append(patients.patients, extra)

	body := dto.CommitRouteRequest{
		Date: "2026-05-04",
		PatientIDs: []string{
			"5d2f37df-8a4b-4c17-9c2c-4f8f6cc6a001",
			"5d2f37df-8a4b-4c17-9c2c-4f8f6cc6a002",
			extra.ID.String(),
		},
		CanEdit: true,
	}
	rec := doJSON(t, NewRouter(deps), http.MethodPost,
		"/routes/a7c11b20-30f2-4d4a-8d6e-1be2a42cd101/commit", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Zero(t, store.calls)
}

func TestCoverageEndpoint(t *testing.T) {
	_, _, _, deps := testFixture()
	router := NewRouter(deps)

	rec := doJSON(t, router, http.MethodPost, "/coverage/check",
		dto.CoverageCheckRequest{Lat: 40.42, Lon: -3.70})
	require.Equal(t, http.StatusOK, rec.Code)

	var inside dto.CoverageCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inside))
	assert.True(t, inside.Inside)

	rec = doJSON(t, router, http.MethodPost, "/coverage/check",
		dto.CoverageCheckRequest{Lat: 48.85, Lon: 2.35})
	var outside dto.CoverageCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outside))
	assert.False(t, outside.Inside)
	assert.Greater(t, outside.DistanceToCenterKm, 1000.0)
}

func TestPatientSearchEndpoint(t *testing.T) {
	_, _, _, deps := testFixture()
	router := NewRouter(deps)

	rec := doJSON(t, router, http.MethodGet, "/patients/search?q=north", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.PatientSearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Patients, 1)
	assert.Equal(t, "North Patient", res.Patients[0].PatientName)

	rec = doJSON(t, router, http.MethodGet,
		"/patients/search?q=patient&exclude=5d2f37df-8a4b-4c17-9c2c-4f8f6cc6a001", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Patients, 1)
	assert.Equal(t, "South Patient", res.Patients[0].PatientName)
}
