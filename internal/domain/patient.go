package domain

import (
	"time"

	"github.com/google/uuid"
)

// Patient statuses as stored in the directory. Only accepted patients
// are eligible for scheduling.
const (
	StatusAccepted   = "accepted"
	StatusPending    = "pending"
	StatusDischarged = "discharged"
)

// AntibioticCourse is a time-bounded intravenous antibiotic treatment.
// A course with a missing start or end date is never considered active.
type AntibioticCourse struct {
	Drug      string
	Start     *time.Time
	End       *time.Time
	Dose      string
	Frequency string
}

// ActiveOn reports whether the course covers the given date (inclusive
// on both ends, compared at day granularity).
func (a *AntibioticCourse) ActiveOn(date time.Time) bool {
	if a == nil || a.Start == nil || a.End == nil {
		return false
	}
	d := truncateDay(date)
	return !d.Before(truncateDay(*a.Start)) && !d.After(truncateDay(*a.End))
}

// Represents a person receiving home care. A Patient is the subject of
// scheduled visits; it is loaded from the external directory and treated
// as a read-only snapshot during one planning computation.
type Patient struct {
	ID               uuid.UUID
	Name             string
	Coords           *Coordinates
	Program          string
	RequiredServices map[string]bool
	Antibiotic       *AntibioticCourse
	BirthDate        *time.Time
	AdmittedAt       time.Time
	Status           string
}

// Routable reports whether the patient may appear in a route at all:
// accepted status and a known residence location. Patients without
// coordinates are silently excluded, never an error.
func (p *Patient) Routable() bool {
	return p != nil && p.Status == StatusAccepted && p.Coords != nil
}

// AntibioticActiveOn reports whether the patient has an active
// antibiotic course on the given date.
func (p *Patient) AntibioticActiveOn(date time.Time) bool {
	if p == nil {
		return false
	}
	return p.Antibiotic.ActiveOn(date)
}

// AgeOn computes the patient's age in whole years on the given date.
// Returns -1 when the birth date is unknown.
func (p *Patient) AgeOn(date time.Time) int {
	if p == nil || p.BirthDate == nil {
		return -1
	}
	b := *p.BirthDate
	years := date.Year() - b.Year()
	// Not yet reached this year's birthday.
	if date.Month() < b.Month() || (date.Month() == b.Month() && date.Day() < b.Day()) {
		years--
	}
	return years
}

// NeedsAnyService reports whether at least one required-service flag is set.
func (p *Patient) NeedsAnyService() bool {
	for _, required := range p.RequiredServices {
		if required {
			return true
		}
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
