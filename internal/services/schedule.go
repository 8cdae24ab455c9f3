package services

import (
	"slices"
	"strings"
	"time"

	"visit-route-service/internal/domain"
)

// priorityRank orders priorities for agenda sorting, highest first.
var priorityRank = map[domain.Priority]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

// ComputeSchedule builds the forward-looking agenda for one day: every
// accepted patient with an upcoming visit, classified and dated with the
// next due date on or after the target date. Patients with no override
// and no mapped program never appear.
//
// The agenda is a pure function of its inputs; repeated invocations over
// the same snapshot yield the same result.
func ComputeSchedule(date time.Time, patients []*domain.Patient, programs map[string]domain.ProgramRule) []domain.Visit {
	visits := make([]domain.Visit, 0, len(patients))
	for _, p := range patients {
		if p == nil || p.Status != domain.StatusAccepted {
			continue
		}

		a := Evaluate(p, date, programs)
		if a.NextDue.IsZero() {
			continue
		}

		visits = append(visits, domain.Visit{
			Patient:  p,
			Type:     a.Type,
			Priority: a.Priority,
			DueDate:  a.NextDue,
		})
	}

	slices.SortFunc(visits, func(a, b domain.Visit) int {
		if !a.DueDate.Equal(b.DueDate) {
			if a.DueDate.Before(b.DueDate) {
				return -1
			}
			return 1
		}
		if ra, rb := priorityRank[a.Priority], priorityRank[b.Priority]; ra != rb {
			return ra - rb
		}
		return strings.Compare(a.Patient.Name, b.Patient.Name)
	})

	return visits
}
