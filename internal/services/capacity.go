package services

import "visit-route-service/internal/domain"

// Average per-visit cost in minutes, travel included. A single tunable
// constant rather than a per-patient derivation.
const VisitMinutes = 60

// Workload is the estimated time load of a candidate list against one
// staff member's shift. Independent of the headcount capacity check:
// a route can be within headcount but over time budget, or vice versa.
type Workload struct {
	AvailableMinutes int
	EstimatedMinutes int
	LoadPercent      float64
}

// ShiftMinutes derives the shift length in minutes. An end before the
// start means the shift crosses midnight. Returns 0 when no shift is
// configured, which downstream treats as "load unknown", not an error.
func ShiftMinutes(s *domain.Staff) int {
	startMin, endMin, ok := s.ShiftWindow()
	if !ok {
		return 0
	}

	dur := endMin - startMin
	if dur < 0 {
		dur += 24 * 60
	}
	return dur
}

// EstimateLoad converts a candidate count into a load percentage against
// the staff member's shift, clamped to 100. Load is 0 when the shift is
// unconfigured or empty.
func EstimateLoad(s *domain.Staff, candidateCount int) Workload {
	w := Workload{
		AvailableMinutes: ShiftMinutes(s),
		EstimatedMinutes: candidateCount * VisitMinutes,
	}
	if w.AvailableMinutes <= 0 {
		return w
	}

	pct := float64(w.EstimatedMinutes) / float64(w.AvailableMinutes) * 100
	if pct > 100 {
		pct = 100
	}
	w.LoadPercent = pct
	return w
}

// OverCapacity reports whether the route exceeds the staff member's
// visit headcount limit.
func OverCapacity(routeLen int, s *domain.Staff) bool {
	return routeLen > s.EffectiveCapacity()
}
