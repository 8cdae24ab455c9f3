package services

import (
	"time"

	"visit-route-service/internal/domain"
)

// Assessment is the outcome of evaluating one patient against one
// target date. IntervalDays == 0 means the patient never generates
// visits (no override and no mapped program); NextDue is zero in that
// case.
type Assessment struct {
	Due          bool
	Type         domain.VisitType
	Priority     domain.Priority
	IntervalDays int
	NextDue      time.Time
}

// Evaluate decides whether a visit is due for the patient on the target
// date and classifies it. Precedence: an active antibiotic course forces
// a daily visit, then pediatric age (< 5 years) forces a daily visit,
// then the enrolled program fixes the cadence.
//
// A patient admitted after the target date is due on the admission date
// itself (treated as day 0), not on a modulus-derived earlier date.
func Evaluate(p *domain.Patient, date time.Time, programs map[string]domain.ProgramRule) Assessment {
	if p == nil {
		return Assessment{}
	}
	date = dayStart(date)

	if p.AntibioticActiveOn(date) {
		return Assessment{
			Due:          true,
			Type:         domain.VisitAntibiotic,
			Priority:     domain.PriorityHigh,
			IntervalDays: 1,
			NextDue:      date,
		}
	}

	if age := p.AgeOn(date); age >= 0 && age < 5 {
		a := Assessment{
			Type:         domain.VisitPediatric,
			Priority:     domain.PriorityHigh,
			IntervalDays: 1,
		}
		a.Due, a.NextDue = dueOn(date, p.AdmittedAt, 1)
		return a
	}

	rule, ok := programs[p.Program]
	if !ok || rule.IntervalDays <= 0 {
		return Assessment{}
	}

	a := Assessment{
		Type:         domain.VisitRoutine,
		Priority:     rule.Priority,
		IntervalDays: rule.IntervalDays,
	}
	a.Due, a.NextDue = dueOn(date, p.AdmittedAt, rule.IntervalDays)
	return a
}

// IsDue reports whether the patient requires a visit on the target date.
func IsDue(p *domain.Patient, date time.Time, programs map[string]domain.ProgramRule) bool {
	return Evaluate(p, date, programs).Due
}

// dueOn applies the cycle arithmetic: a visit is due when the whole-day
// distance from admission is a non-negative multiple of the interval.
// For the agenda view it also yields the next due date on or after the
// target date.
func dueOn(date, admitted time.Time, intervalDays int) (due bool, nextDue time.Time) {
	admitted = dayStart(admitted)
	diffDays := int(date.Sub(admitted).Hours() / 24)

	if diffDays < 0 {
		// Future admission: the first visit falls on the admission day.
		return false, admitted
	}

	rem := diffDays % intervalDays
	daysUntilNext := (intervalDays - rem) % intervalDays
	return rem == 0, date.AddDate(0, 0, daysUntilNext)
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
