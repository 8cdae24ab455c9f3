package domain

// Priority of a scheduled visit.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Classification of a scheduled visit.
type VisitType string

const (
	VisitAntibiotic VisitType = "antibiotic administration"
	VisitPediatric  VisitType = "pediatric priority control"
	VisitRoutine    VisitType = "routine program visit"
)

// ProgramRule fixes the routine visit cadence for one care program.
type ProgramRule struct {
	IntervalDays int
	Priority     Priority
}

// Baseline visit cadence per enrolled care program. A program absent
// from this table never generates a routine visit.
var DefaultPrograms = map[string]ProgramRule{
	"post-hospitalization": {IntervalDays: 3, Priority: PriorityHigh},
	"chronic-care":         {IntervalDays: 7, Priority: PriorityMedium},
	"preventive-follow-up": {IntervalDays: 90, Priority: PriorityLow},
}
