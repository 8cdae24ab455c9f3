package services

import (
	"slices"
	"strings"
	"time"

	"visit-route-service/internal/domain"
)

// BuildRoute produces the calculated route for one (staff, date) pair:
// a fresh, deterministic ordered visit list with no manual state.
//
// Candidates must be due on the date, matchable by the staff member,
// accepted, and geolocated. Ordering: for antibiotic-capable roles,
// patients with an active antibiotic course come first; then descending
// latitude (a simple north-to-south traversal, not a distance-optimized
// tour); patient id breaks remaining ties so equal inputs always yield
// the same order.
func BuildRoute(
	staff *domain.Staff,
	date time.Time,
	patients []*domain.Patient,
	programs map[string]domain.ProgramRule,
	table CapabilityTable,
) []*domain.Patient {
	if staff == nil || table.Excluded(staff) {
		return []*domain.Patient{}
	}

	candidates := make([]*domain.Patient, 0, len(patients))
	for _, p := range patients {
		if !p.Routable() {
			continue
		}
		if !Evaluate(p, date, programs).Due {
			continue
		}
		if !table.Matches(staff, p, date) {
			continue
		}
		candidates = append(candidates, p)
	}

	antibioticFirst := table.AntibioticCapable(staff.Role)

	slices.SortFunc(candidates, func(a, b *domain.Patient) int {
		if antibioticFirst {
			aa, ba := a.AntibioticActiveOn(date), b.AntibioticActiveOn(date)
			if aa != ba {
				if aa {
					return -1
				}
				return 1
			}
		}
		if a.Coords.Lat != b.Coords.Lat {
			if a.Coords.Lat > b.Coords.Lat {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	return candidates
}
