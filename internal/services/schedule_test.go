package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-route-service/internal/domain"
)

func TestComputeScheduleAgenda(t *testing.T) {
	date := day(2026, 5, 4)
	start := day(2026, 5, 1)
	end := day(2026, 5, 10)

	ivPatient := &domain.Patient{
		Name:       "iv",
		Status:     domain.StatusAccepted,
		BirthDate:  datePtr(day(1950, 1, 1)),
		AdmittedAt: day(2026, 4, 1),
		Antibiotic: &domain.AntibioticCourse{Drug: "ceftriaxone", Start: &start, End: &end},
	}
	routinePatient := &domain.Patient{
		Name:       "routine",
		Status:     domain.StatusAccepted,
		Program:    "chronic-care",
		BirthDate:  datePtr(day(1950, 1, 1)),
		AdmittedAt: day(2026, 5, 1), // next due day 7 -> 2026-05-08
	}
	unscheduled := &domain.Patient{
		Name:       "no program",
		Status:     domain.StatusAccepted,
		BirthDate:  datePtr(day(1950, 1, 1)),
		AdmittedAt: day(2026, 5, 1),
	}
	discharged := &domain.Patient{
		Name:       "discharged",
		Status:     domain.StatusDischarged,
		Program:    "chronic-care",
		BirthDate:  datePtr(day(1950, 1, 1)),
		AdmittedAt: day(2026, 5, 1),
	}

	visits := ComputeSchedule(date, []*domain.Patient{routinePatient, ivPatient, unscheduled, discharged}, domain.DefaultPrograms)

	require.Len(t, visits, 2)

	// Due-today antibiotic visit sorts before the later routine one.
	assert.Equal(t, "iv", visits[0].Patient.Name)
	assert.Equal(t, domain.VisitAntibiotic, visits[0].Type)
	assert.Equal(t, date, visits[0].DueDate)

	assert.Equal(t, "routine", visits[1].Patient.Name)
	assert.Equal(t, domain.VisitRoutine, visits[1].Type)
	assert.Equal(t, day(2026, 5, 8), visits[1].DueDate)
}

func TestComputeSchedulePureAndRepeatable(t *testing.T) {
	date := day(2026, 5, 4)
	patients := []*domain.Patient{
		{
			Name:       "a",
			Status:     domain.StatusAccepted,
			Program:    "post-hospitalization",
			BirthDate:  datePtr(day(1950, 1, 1)),
			AdmittedAt: day(2026, 5, 4),
		},
		{
			Name:       "b",
			Status:     domain.StatusAccepted,
			Program:    "post-hospitalization",
			BirthDate:  datePtr(day(1950, 1, 1)),
			AdmittedAt: day(2026, 5, 4),
		},
	}

	first := ComputeSchedule(date, patients, domain.DefaultPrograms)
	second := ComputeSchedule(date, patients, domain.DefaultPrograms)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Patient.Name, second[i].Patient.Name)
	}

	var prev time.Time
	for _, v := range first {
		require.False(t, v.DueDate.Before(prev))
		prev = v.DueDate
	}
}
