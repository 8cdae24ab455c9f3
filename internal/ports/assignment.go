package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Port: persistence boundary for committed routes. Saving is
// last-writer-wins at (staff, date) granularity; the engine imposes no
// stronger guarantee.
type AssignmentStore interface {
	// Persist the ordered visit list for one staff member and date.
	SaveAssignment(ctx context.Context, staffID uuid.UUID, date time.Time, patientIDs []uuid.UUID) error
}
