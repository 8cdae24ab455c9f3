package domain

import "time"

// Represents one planned home visit in an agenda or route.
// A Visit is derived planning data and is never persisted on its own.
type Visit struct {
	Patient  *Patient
	Type     VisitType
	Priority Priority
	DueDate  time.Time
}
