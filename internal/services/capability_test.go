package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"visit-route-service/internal/domain"
)

func TestServicesForFuzzyRoleMatch(t *testing.T) {
	table := DefaultCapabilityTable()

	cases := []struct {
		role string
		want string
	}{
		{"Nursing", ServiceNursing},
		{"nurse practitioner", ServiceWoundCare},
		{"Auxiliary nursing", ServiceNursing},
		{"Physiotherapist", ServicePhysiotherapy},
		{"Family Physician", ServiceMedicalReview},
		{"Social worker", ServiceSocialWork},
	}
	for _, tc := range cases {
		assert.True(t, table.ServicesFor(tc.role)[tc.want], "role %q should unlock %q", tc.role, tc.want)
	}

	assert.Empty(t, table.ServicesFor("Janitor"))
}

func TestExcludedAdministrativeRoles(t *testing.T) {
	table := DefaultCapabilityTable()

	assert.True(t, table.Excluded(&domain.Staff{Name: "Ana", Role: "Administrative clerk"}))
	assert.True(t, table.Excluded(&domain.Staff{Name: "Reception desk", Role: ""}))
	assert.False(t, table.Excluded(&domain.Staff{Name: "Irene", Role: "Nursing"}))
}

func TestMatchesRequiredServiceIntersection(t *testing.T) {
	table := DefaultCapabilityTable()
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	nurse := &domain.Staff{Name: "Irene", Role: "Nursing"}
	physio := &domain.Staff{Name: "Raúl", Role: "Physiotherapist"}

	woundPatient := &domain.Patient{
		Name:             "wound",
		RequiredServices: map[string]bool{ServiceWoundCare: true},
	}
	physioPatient := &domain.Patient{
		Name:             "rehab",
		RequiredServices: map[string]bool{ServicePhysiotherapy: true},
	}

	assert.True(t, table.Matches(nurse, woundPatient, date))
	assert.False(t, table.Matches(physio, woundPatient, date))
	assert.True(t, table.Matches(physio, physioPatient, date))
	assert.False(t, table.Matches(nurse, physioPatient, date))
}

func TestMatchesNoRequiredServicesExcluded(t *testing.T) {
	table := DefaultCapabilityTable()
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	nurse := &domain.Staff{Role: "Nursing"}
	p := &domain.Patient{
		Name:             "no needs",
		RequiredServices: map[string]bool{ServiceNursing: false},
	}

	assert.False(t, table.Matches(nurse, p, date))
}

func TestMatchesAntibioticOverridePath(t *testing.T) {
	table := DefaultCapabilityTable()
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	start := date.AddDate(0, 0, -2)
	end := date.AddDate(0, 0, 3)

	// No required-service flags at all, but an active course.
	p := &domain.Patient{
		Name:       "iv patient",
		Antibiotic: &domain.AntibioticCourse{Drug: "ceftriaxone", Start: &start, End: &end},
	}

	assert.True(t, table.Matches(&domain.Staff{Role: "Auxiliary nursing"}, p, date))
	assert.False(t, table.Matches(&domain.Staff{Role: "Physiotherapist"}, p, date))

	// Outside the window the override no longer applies.
	later := end.AddDate(0, 0, 1)
	assert.False(t, table.Matches(&domain.Staff{Role: "Nursing"}, p, later))
}

func TestMatchablePatients(t *testing.T) {
	table := DefaultCapabilityTable()
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	nurse := &domain.Staff{Role: "Nursing"}

	patients := []*domain.Patient{
		{Name: "a", RequiredServices: map[string]bool{ServiceNursing: true}},
		{Name: "b", RequiredServices: map[string]bool{ServicePhysiotherapy: true}},
		{Name: "c", RequiredServices: map[string]bool{ServiceWoundCare: true}},
	}

	got := table.MatchablePatients(nurse, patients, date)
	assert.Len(t, got, 2)
}
