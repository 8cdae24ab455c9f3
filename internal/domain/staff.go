package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxCapacity is the visit headcount limit applied when a staff
// member has no explicit capacity configured.
const DefaultMaxCapacity = 6

// Staff member aggregate: a clinician who may be assigned a visit route.
// Shift times are local "HH:MM" strings; a shift whose end precedes its
// start crosses midnight.
type Staff struct {
	ID          uuid.UUID
	Name        string
	Role        string
	ShiftStart  *string
	ShiftEnd    *string
	MaxCapacity int
}

// EffectiveCapacity returns the configured capacity, defaulting when unset.
func (s *Staff) EffectiveCapacity() int {
	if s == nil || s.MaxCapacity <= 0 {
		return DefaultMaxCapacity
	}
	return s.MaxCapacity
}

// ShiftWindow returns the shift start and end as minutes since midnight.
// ok is false when either bound is missing or malformed; callers treat
// that as "no shift configured" rather than an error.
func (s *Staff) ShiftWindow() (startMin, endMin int, ok bool) {
	if s == nil || s.ShiftStart == nil || s.ShiftEnd == nil {
		return 0, 0, false
	}

	startMin, ok = parseClock(*s.ShiftStart)
	if !ok {
		return 0, 0, false
	}
	endMin, ok = parseClock(*s.ShiftEnd)
	if !ok {
		return 0, 0, false
	}
	return startMin, endMin, true
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(v string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(v), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
